// Package steps provides a set of handlers for render command chain of responsibility.
package steps

import (
	render_ctx "github.com/projgen/projgen/cli/render/context"
)

// Step is an interface for single step in render chain.
type Step interface {
	Run(ctx *render_ctx.RenderCtx, renderState *RenderState) error
}
