package steps

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/fatih/color"
	"github.com/projgen/projgen/cli/project"
	render_ctx "github.com/projgen/projgen/cli/render/context"
	"github.com/projgen/projgen/cli/render/internal/tree"
	"github.com/projgen/projgen/cli/templates/engines"
	"github.com/projgen/projgen/cli/util"
)

// RenderModels represents the project tree rendering step: one output directory
// per context.
type RenderModels struct{}

// isModelError returns true for errors caused by a context itself. Such errors stop
// only the model they belong to.
func isModelError(err error) bool {
	var templateErr *engines.TemplateError
	return errors.As(err, &templateErr) || errors.Is(err, tree.ErrInvalidPath)
}

func checkModelName(name string) error {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: model name %q is not a directory name", tree.ErrInvalidPath, name)
	}
	return nil
}

// modelData returns the values the model is rendered with.
func modelData(ctx project.Context, vars map[string]any) project.Context {
	data := make(project.Context, len(ctx)+len(vars))
	for key, value := range ctx {
		data[key] = value
	}
	for key, value := range vars {
		data[key] = value
	}
	return data
}

func renderModel(ctx *render_ctx.RenderCtx, renderState *RenderState, name string,
	data project.Context,
) error {
	if err := checkModelName(name); err != nil {
		return err
	}

	modelDir := filepath.Join(ctx.OutputDir, name)
	if ctx.CleanModels {
		if err := util.ReplaceDirectory(modelDir, defaultDirPermissions); err != nil {
			return fmt.Errorf("failed to clean model directory: %w", err)
		}
	}

	return tree.Render(ctx.ProjectPath, modelDir, ctx.ContextFile, ctx.TemplateSuffix,
		renderState.Engine, data)
}

// Run renders the project tree for every context. A template error stops only the
// model it occurred in. Any other error stops rendering.
func (RenderModels) Run(ctx *render_ctx.RenderCtx, renderState *RenderState) error {
	modelIndexes := make(map[string]int, len(renderState.Contexts))
	for i, modelCtx := range renderState.Contexts {
		name := project.ModelName(modelCtx, i)
		if prev, found := modelIndexes[name]; found {
			log.Warnf("Contexts %d and %d have the same model name %q, "+
				"the output of the latter overwrites the former.", prev, i, name)
		}
		modelIndexes[name] = i

		log.Infof("Rendering model %s", name)
		err := renderModel(ctx, renderState, name, modelData(modelCtx, renderState.Vars))
		if err != nil {
			if !isModelError(err) {
				return fmt.Errorf("failed to render model %s: %w", name, err)
			}
			log.Errorf("Failed to render model %s: %s", name, err)
			renderState.Failed = append(renderState.Failed, name)
			continue
		}
		renderState.Rendered = append(renderState.Rendered, name)
		log.Infof("Model %s is rendered to %s", color.GreenString(name),
			util.RelativeToCurrentWorkingDir(filepath.Join(ctx.OutputDir, name)))
	}

	if len(renderState.Failed) > 0 {
		return fmt.Errorf("failed to render models: %s", strings.Join(renderState.Failed, ", "))
	}
	return nil
}
