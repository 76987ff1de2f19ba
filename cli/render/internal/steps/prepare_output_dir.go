package steps

import (
	"fmt"
	"path/filepath"

	"github.com/apex/log"
	render_ctx "github.com/projgen/projgen/cli/render/context"
	"github.com/projgen/projgen/cli/util"
)

const defaultDirPermissions = 0755

// PrepareOutputDir represents output root cleaning step.
type PrepareOutputDir struct{}

// Run removes everything from the output root. This is destructive: any content of
// the output root is lost, the directory belongs to projgen.
func (PrepareOutputDir) Run(ctx *render_ctx.RenderCtx, renderState *RenderState) error {
	outputDir, err := filepath.Abs(ctx.OutputDir)
	if err != nil {
		return err
	}
	projectPath, err := filepath.Abs(ctx.ProjectPath)
	if err != nil {
		return err
	}

	if util.IsSubPath(outputDir, projectPath) {
		return fmt.Errorf("project %q is located in the output directory %q",
			projectPath, outputDir)
	}
	if util.IsSubPath(projectPath, outputDir) {
		return fmt.Errorf("output directory %q is located in the project %q",
			outputDir, projectPath)
	}

	log.Debugf("Cleaning output directory %s", outputDir)
	if err = util.ReplaceDirectory(outputDir, defaultDirPermissions); err != nil {
		return fmt.Errorf("failed to clean output directory: %w", err)
	}
	return nil
}
