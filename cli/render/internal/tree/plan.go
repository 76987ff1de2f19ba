package tree

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/projgen/projgen/cli/templates/engines"
	"github.com/projgen/projgen/cli/util"
)

// ErrInvalidPath is reported when a rendered path leaves the model directory.
var ErrInvalidPath = errors.New("invalid rendered path")

// wildcard is replaced with a dot in rendered file names.
const wildcard = "*"

// Action is a file system operation kind.
type Action int

const (
	// ActionMkdir creates a directory.
	ActionMkdir Action = iota
	// ActionRender renders a template file.
	ActionRender
	// ActionCopy copies a file as is.
	ActionCopy
)

// String returns the action name.
func (action Action) String() string {
	switch action {
	case ActionMkdir:
		return "mkdir"
	case ActionRender:
		return "render"
	case ActionCopy:
		return "copy"
	}
	return fmt.Sprintf("Action(%d)", int(action))
}

// isFileName reports whether the rendered segment can name a file.
func isFileName(segment string) bool {
	return segment != "" && segment != "." && segment != ".."
}

// Op is an operation producing one output entry.
type Op struct {
	Action Action
	// Src is the source entry path.
	Src string
	// Dst is the destination path.
	Dst string
	// depth is the number of Dst segments below the model directory.
	depth int
}

// Plan computes the operations producing the output of entries in dstDir. Each
// relative path segment is rendered on its own. In file names the wildcard is
// replaced with a dot, and the template suffix is stripped from template files.
// Operations are ordered so that parents come before children. ErrInvalidPath is
// returned for a destination outside dstDir, for a file name rendered to nothing
// and for a file rendered to the path of a directory.
func Plan(entries []Entry, dstDir string, templateSuffix string,
	engine engines.TemplateEngine, data any,
) ([]Op, error) {
	dstDir = filepath.Clean(dstDir)
	ops := make([]Op, 0, len(entries))
	destinations := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		segments := strings.Split(entry.RelPath, "/")
		for i, segment := range segments {
			rendered, err := engine.RenderText(segment, data)
			if err != nil {
				return nil, fmt.Errorf("failed to render path %q: %w", entry.RelPath, err)
			}
			segments[i] = rendered
		}

		op := Op{Src: entry.SrcPath, Action: ActionMkdir}
		if !entry.IsDir {
			last := len(segments) - 1
			segments[last] = strings.ReplaceAll(segments[last], wildcard, ".")
			op.Action = ActionCopy
			if templateSuffix != "" && strings.HasSuffix(entry.RelPath, templateSuffix) {
				op.Action = ActionRender
				segments[last] = strings.TrimSuffix(segments[last], templateSuffix)
			}
		}

		op.Dst = filepath.Join(append([]string{dstDir}, segments...)...)
		if op.Dst == dstDir || !util.IsSubPath(dstDir, op.Dst) ||
			(!entry.IsDir && !isFileName(segments[len(segments)-1])) {
			return nil, fmt.Errorf("%w: %q renders to %q", ErrInvalidPath, entry.RelPath,
				strings.Join(segments, "/"))
		}
		if prev, found := destinations[op.Dst]; found {
			if prev.IsDir != entry.IsDir {
				return nil, fmt.Errorf("%w: %q and %q render to the same path %q, "+
					"one is a file and the other is a directory", ErrInvalidPath,
					prev.RelPath, entry.RelPath, op.Dst)
			}
			if !entry.IsDir {
				log.Warnf("%s and %s are rendered to the same path %s, the latter wins.",
					prev.RelPath, entry.RelPath, op.Dst)
			}
		}
		destinations[op.Dst] = entry

		relDst, _ := filepath.Rel(dstDir, op.Dst)
		op.depth = strings.Count(relDst, string(filepath.Separator)) + 1
		ops = append(ops, op)
	}

	sort.SliceStable(ops, func(i, j int) bool {
		return ops[i].depth < ops[j].depth
	})
	return ops, nil
}
