package steps

import (
	"github.com/projgen/projgen/cli/project"
	"github.com/projgen/projgen/cli/templates/engines"
)

// RenderState contains an information shared by the render steps.
type RenderState struct {
	// Contexts are the loaded project contexts, one per model.
	Contexts []project.Context
	// Vars are values set in command line. They override context values.
	Vars map[string]any
	// Engine is a template engine to use for rendering.
	Engine engines.TemplateEngine
	// Rendered is a list of successfully rendered model names.
	Rendered []string
	// Failed is a list of model names failed to render.
	Failed []string
}

// NewRenderState creates new render state.
func NewRenderState() RenderState {
	var state RenderState
	state.Vars = make(map[string]any)
	state.Engine = engines.NewDefaultEngine()
	return state
}
