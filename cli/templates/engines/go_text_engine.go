package engines

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// TemplateError is returned when a template cannot be parsed or executed.
// Unlike file system errors it only concerns the rendered text itself.
type TemplateError struct {
	// Name is a template name: a file name or "text" for inline text.
	Name string
	// Stage is "parsing" or "execution".
	Stage string
	// Err is the underlying text/template error.
	Err error
}

// Error returns error message.
func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s failed: %s", e.Stage, e.Err)
}

// Unwrap returns the underlying text/template error.
func (e *TemplateError) Unwrap() error {
	return e.Err
}

type goTextEngine struct {
}

// render parses and executes in. References to variables missing from data are
// kept in the result as they were written in the template.
func render(name string, in string, data any) (string, error) {
	if !strings.Contains(in, leftDelim) {
		return in, nil
	}

	parsedTemplate, err := template.New(name).Funcs(builtinFuncs).Parse(in)
	if err != nil {
		return "", &TemplateError{Name: name, Stage: "parsing", Err: err}
	}
	keepUnresolved(parsedTemplate, in, data)

	var buffer bytes.Buffer
	if err = parsedTemplate.Execute(&buffer, data); err != nil {
		return "", &TemplateError{Name: name, Stage: "execution", Err: err}
	}
	return buffer.String(), nil
}

// RenderFile renders srcPath template to dstPath using go text/template engine.
// The destination gets the permissions of the source. Nothing is written if the
// template fails to render.
func (goTextEngine) RenderFile(srcPath string, dstPath string, data any) error {
	stat, err := os.Stat(srcPath)
	if err != nil {
		return fmt.Errorf("error getting file info %s: %w", srcPath, err)
	}
	originFileMode := stat.Mode().Perm()

	content, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", srcPath, err)
	}

	rendered, err := render(filepath.Base(srcPath), string(content), data)
	if err != nil {
		return fmt.Errorf("error rendering %s: %w", srcPath, err)
	}

	if err = os.WriteFile(dstPath, []byte(rendered), originFileMode); err != nil {
		return fmt.Errorf("error writing %s: %w", dstPath, err)
	}
	// WriteFile does not change the mode of an existing file and is subject to umask.
	if err = os.Chmod(dstPath, originFileMode); err != nil {
		return fmt.Errorf("error changing mode of %s: %w", dstPath, err)
	}
	return nil
}

// RenderText renders in text using go text/template engine.
func (goTextEngine) RenderText(in string, data any) (string, error) {
	return render("text", in, data)
}
