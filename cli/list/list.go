package list

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/projgen/projgen/cli/project"
	"github.com/projgen/projgen/cli/util"
)

// ListOpts contains options of the projects table.
type ListOpts struct {
	// ContextFile is the name of the context file in a project.
	ContextFile string
	// Pretty enables table borders.
	Pretty bool
}

// describeModels returns model names of the project, or the reason why the project
// has no models.
func describeModels(prj project.Project, contextFile string) string {
	contexts, err := project.LoadContexts(filepath.Join(prj.Path, contextFile))
	if err != nil {
		for _, notice := range []error{project.ErrContextsNotFound,
			project.ErrContextsEmpty, project.ErrContextsFormat} {
			if errors.Is(err, notice) {
				return color.YellowString(notice.Error())
			}
		}
		return color.RedString(err.Error())
	}

	names := make([]string, 0, len(contexts))
	for i, ctx := range contexts {
		names = append(names, project.ModelName(ctx, i))
	}
	return color.GreenString(strings.Join(names, ", "))
}

// ListProjects writes the projects with their models as a table.
func ListProjects(writer io.Writer, projects []project.Project, opts ListOpts) {
	ts := table.NewWriter()
	ts.SetOutputMirror(writer)
	ts.AppendHeader(table.Row{"PROJECT", "PATH", "MODELS"})

	for _, prj := range projects {
		ts.AppendRow(table.Row{
			prj.Name,
			util.RelativeToCurrentWorkingDir(prj.Path),
			describeModels(prj, opts.ContextFile),
		})
	}

	if opts.Pretty {
		ts.SetStyle(table.StyleRounded)
	} else {
		ts.Style().Options.DrawBorder = false
		ts.Style().Options.SeparateColumns = false
		ts.Style().Options.SeparateHeader = false
	}
	ts.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	ts.Render()
}
