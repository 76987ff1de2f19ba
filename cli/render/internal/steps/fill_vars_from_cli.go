package steps

import (
	"fmt"
	"strings"

	"github.com/apex/log"
	render_ctx "github.com/projgen/projgen/cli/render/context"
	"github.com/projgen/projgen/cli/util"
)

const formatError = `wrong variable definition format: %s
Usage: --var "var-name=value"`

// FillVarsFromCli represents command line variables parsing step.
type FillVarsFromCli struct{}

// Run collects variables passed using command line args.
func (FillVarsFromCli) Run(ctx *render_ctx.RenderCtx, renderState *RenderState) error {
	for _, varDefinition := range ctx.VarsFromCli {
		varDefinition = strings.TrimSpace(varDefinition)
		varName, value, found := strings.Cut(varDefinition, "=")
		if !found || varName == "" || value == "" {
			return util.NewArgError(fmt.Sprintf(formatError, varDefinition))
		}
		log.Debugf("Setting var from CLI: %s = %s", varName, value)
		renderState.Vars[varName] = value
	}
	return nil
}
