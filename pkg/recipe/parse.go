package recipe

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Azure/aca-recipe/pkg/domain/errors"
)

// Parse decodes a recipe context from YAML or JSON. Unknown fields are
// ignored so that newer provisioning systems can add properties freely.
func Parse(r io.Reader) (*Context, error) {
	var rc Context
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&rc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.Newf(errors.CodeValidationFailed, errors.DomainRecipe, "recipe context is empty")
		}
		return nil, errors.New(errors.CodeValidationFailed, errors.DomainRecipe, "parse recipe context", err)
	}
	return &rc, nil
}

// ParseFile reads and decodes the recipe context stored at path. A path of
// "-" reads from stdin.
func ParseFile(path string) (*Context, error) {
	if path == "-" {
		return Parse(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.CodeIoError, errors.DomainRecipe, fmt.Sprintf("open recipe context %s", path), err)
	}
	defer f.Close()
	return Parse(f)
}
