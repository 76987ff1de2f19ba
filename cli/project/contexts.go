package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/projgen/projgen/cli/config"
	"gopkg.in/yaml.v3"
)

// modelKey is the context key naming the output directory of the context.
const modelKey = "model"

var (
	// ErrContextsNotFound is reported when a project has no context file.
	ErrContextsNotFound = errors.New("context file not found")
	// ErrContextsEmpty is reported when a context file has no contexts.
	ErrContextsEmpty = errors.New("context file is empty")
	// ErrContextsFormat is reported when a context file is neither a mapping nor a
	// sequence of mappings.
	ErrContextsFormat = errors.New("context file format not recognized")
)

// Context is a set of values a project tree is rendered with.
type Context map[string]any

// LoadContexts reads the context file at path. A single mapping is returned as a
// one-element list. ErrContextsNotFound, ErrContextsEmpty and ErrContextsFormat are
// wrapped in the returned error when no contexts can be used.
func LoadContexts(path string) ([]Context, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrContextsNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	var contexts config.SingleOrArray[Context]
	if err = yaml.Unmarshal(content, &contexts); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrContextsFormat, path, err)
	}
	if len(contexts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrContextsEmpty, path)
	}

	for i := range contexts {
		if contexts[i] == nil {
			contexts[i] = Context{}
		}
	}
	return contexts, nil
}

// ModelName returns the output directory name for the context with the index.
// Spaces are replaced with underscores.
func ModelName(ctx Context, index int) string {
	name := fmt.Sprintf("model_%d", index)
	if value, found := ctx[modelKey]; found && value != nil {
		if modelName := fmt.Sprint(value); modelName != "" {
			name = modelName
		}
	}
	return strings.ReplaceAll(name, " ", "_")
}
