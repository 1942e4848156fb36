package azureaca

import (
	"io"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"
	"sigs.k8s.io/yaml"

	"github.com/Azure/aca-recipe/pkg/domain/errors"
	"github.com/Azure/aca-recipe/pkg/logger"
)

// ParseManifest loads a container app body previously written by the render
// command, or exported with
//
//	az containerapp show --name <app> --resource-group <rg> --output json
//
// Both JSON and YAML are accepted. "-" reads stdin. A render envelope
// ({"manifest": ..., "result": ...}) is unwrapped.
func ParseManifest(path string) (*armappcontainers.ContainerApp, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.New(errors.CodeIoError, errors.DomainRender, "read manifest "+path, err)
	}
	return DecodeManifest(data)
}

// DecodeManifest is ParseManifest on bytes already in memory.
func DecodeManifest(data []byte) (*armappcontainers.ContainerApp, error) {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, errors.New(errors.CodeValidationFailed, errors.DomainRender, "parse manifest", err)
	}

	var envelope struct {
		Manifest *armappcontainers.ContainerApp `json:"manifest"`
	}
	if err := yaml.Unmarshal(jsonData, &envelope); err == nil && envelope.Manifest != nil {
		logger.Debug("unwrapping render envelope")
		return envelope.Manifest, nil
	}

	var app armappcontainers.ContainerApp
	if err := app.UnmarshalJSON(jsonData); err != nil {
		return nil, errors.New(errors.CodeValidationFailed, errors.DomainRender, "parse manifest", err)
	}
	if app.Properties == nil {
		return nil, errors.Newf(errors.CodeValidationFailed, errors.DomainRender, "invalid manifest: missing properties block")
	}
	return &app, nil
}
