package steps

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/apex/log"
	"github.com/projgen/projgen/cli/project"
	render_ctx "github.com/projgen/projgen/cli/render/context"
)

// ErrNoContexts is reported when the project has no usable contexts. It is not a
// failure: there is just nothing to render.
var ErrNoContexts = errors.New("nothing to render")

// LoadContexts represents project contexts loading step.
type LoadContexts struct{}

// Run loads contexts from the project context file.
func (LoadContexts) Run(ctx *render_ctx.RenderCtx, renderState *RenderState) error {
	contextsPath := filepath.Join(ctx.ProjectPath, ctx.ContextFile)
	contexts, err := project.LoadContexts(contextsPath)
	if err != nil {
		if errors.Is(err, project.ErrContextsNotFound) ||
			errors.Is(err, project.ErrContextsEmpty) ||
			errors.Is(err, project.ErrContextsFormat) {
			return fmt.Errorf("%w: %w", ErrNoContexts, err)
		}
		return err
	}

	log.Debugf("Loaded %d contexts from %s", len(contexts), contextsPath)
	renderState.Contexts = contexts
	return nil
}
