package tree

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/otiai10/copy"
	"github.com/projgen/projgen/cli/templates/engines"
	"github.com/projgen/projgen/cli/util"
)

const defaultDirPermissions = 0755

// Apply performs the planned operations. Existing files are overwritten. Parent
// directories are created if missing.
func Apply(ops []Op, engine engines.TemplateEngine, data any) error {
	for _, op := range ops {
		if op.Action == ActionMkdir {
			log.Debugf("Creating %s", op.Dst)
			if err := util.CreateDirectory(op.Dst, defaultDirPermissions); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", op.Dst, err)
			}
			continue
		}

		if err := util.CreateDirectory(filepath.Dir(op.Dst), defaultDirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", filepath.Dir(op.Dst), err)
		}
		switch op.Action {
		case ActionRender:
			log.Debugf("Rendering %s to %s", op.Src, op.Dst)
			if err := engine.RenderFile(op.Src, op.Dst, data); err != nil {
				return err
			}
		case ActionCopy:
			log.Debugf("Copying %s to %s", op.Src, op.Dst)
			if err := copy.Copy(op.Src, op.Dst, copy.Options{PreserveTimes: true}); err != nil {
				return fmt.Errorf("failed to copy %q: %w", op.Src, err)
			}
		default:
			return fmt.Errorf("unknown action %s for %q", op.Action, op.Src)
		}
	}
	return nil
}

// Render renders the project tree at root into dstDir: the output of one context.
func Render(root string, dstDir string, contextFile string, templateSuffix string,
	engine engines.TemplateEngine, data any,
) error {
	entries, err := Collect(root, contextFile)
	if err != nil {
		return err
	}
	ops, err := Plan(entries, dstDir, templateSuffix, engine, data)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(dstDir, defaultDirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dstDir, err)
	}
	return Apply(ops, engine, data)
}
