// Package engines provides template engine interface and implementations.
package engines

// TemplateEngine is an interface to support to use for project template rendering.
type TemplateEngine interface {
	// RenderFile applies data to the template from srcPath.
	// Instantiated template is saved as dstPath.
	RenderFile(srcPath string, dstPath string, data any) error

	// RenderText applies data to the template text. Returns instantiated text.
	RenderText(in string, data any) (string, error)
}

// NewDefaultEngine creates and returns default template engine.
func NewDefaultEngine() TemplateEngine {
	return goTextEngine{}
}
