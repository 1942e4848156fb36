package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"
	"sigs.k8s.io/yaml"

	"github.com/Azure/aca-recipe/pkg/azureaca"
	"github.com/Azure/aca-recipe/pkg/config"
	"github.com/Azure/aca-recipe/pkg/recipe"
)

// envelope is what render and deploy print: the resource body and the
// outputs handed back to the provisioning system.
type envelope struct {
	Manifest armappcontainers.ContainerApp `json:"manifest"`
	Result   recipe.Output                 `json:"result"`
}

func newEnvelope(result *azureaca.Result) envelope {
	return envelope{Manifest: result.App, Result: result.Output}
}

func writeOutput(w io.Writer, format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	switch format {
	case config.OutputYAML:
		if data, err = yaml.JSONToYAML(data); err != nil {
			return fmt.Errorf("encode output as yaml: %w", err)
		}
	case config.OutputJSON:
		data = append(data, '\n')
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	_, err = w.Write(data)
	return err
}
