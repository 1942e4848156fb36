package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/Azure/aca-recipe/pkg/config"
	"github.com/Azure/aca-recipe/pkg/deploy"
	"github.com/Azure/aca-recipe/pkg/domain/errors"
)

const testEnvironmentID = "/subscriptions/22222222-2222-2222-2222-222222222222/resourceGroups/web-rg/providers/Microsoft.App/managedEnvironments/staging"

const testContext = `
resource:
  name: storefront
  id: /planes/radius/local/resourceGroups/dev/providers/Applications.Core/containers/storefront
  properties:
    containers:
      web:
        image: ghcr.io/example/storefront:4.1
        ports:
          http: {containerPort: 3000}
        livenessProbe:
          exec: {command: [cat, /tmp/healthy]}
application:
  name: shop
`

func writeContext(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "context.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testContext), 0o600))
	return path
}

// run executes the command tree with a fresh config environment and returns
// stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, name := range []string{config.EnvLogLevel, config.EnvOutputFormat, config.EnvLocation, config.EnvEnvironmentDomain, config.EnvDeployTimeout} {
		t.Setenv(name, "")
	}

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "absent.env")}, args...))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestRenderJSON(t *testing.T) {
	out, err := run(t, "render", "-c", writeContext(t), "--environment", testEnvironmentID,
		"--external", "--environment-domain", "happy.westus.azurecontainerapps.io", "--location", "westus")
	require.NoError(t, err)

	var got struct {
		Manifest armappcontainers.ContainerApp `json:"manifest"`
		Result   struct {
			Resources []string `json:"resources"`
			Values    struct {
				FQDN string `json:"fqdn"`
				URL  string `json:"url"`
			} `json:"values"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	name := *got.Manifest.Name
	assert.True(t, strings.HasPrefix(name, "storefront-"))
	assert.Equal(t, "westus", *got.Manifest.Location)
	assert.Equal(t, int32(3000), *got.Manifest.Properties.Configuration.Ingress.TargetPort)
	assert.Nil(t, got.Manifest.Properties.Template.Containers[0].Probes)
	assert.Equal(t, name+".happy.westus.azurecontainerapps.io", got.Result.Values.FQDN)
	assert.Equal(t, "https://"+got.Result.Values.FQDN, got.Result.Values.URL)
	assert.Len(t, got.Result.Resources, 1)
}

func TestRenderYAML(t *testing.T) {
	out, err := run(t, "render", "-c", writeContext(t), "--environment", testEnvironmentID, "-o", "yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "manifest:")
	jsonData, err := yaml.YAMLToJSON([]byte(out))
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), `"targetPort":3000`)
}

func TestRenderOutputFormatFromEnvironment(t *testing.T) {
	root := NewRootCmd()
	t.Setenv(config.EnvOutputFormat, "yaml")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvDeployTimeout, "")
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--env-file", "", "render", "-c", writeContext(t), "--environment", testEnvironmentID})
	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(stdout.String(), "manifest:"))
}

func TestRenderErrors(t *testing.T) {
	_, err := run(t, "render", "-c", writeContext(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMissingParameter)
	assert.Equal(t, exitInvalidInput, exitCode(err))

	_, err = run(t, "render", "-c", filepath.Join(t.TempDir(), "missing.yaml"), "--environment", testEnvironmentID)
	require.Error(t, err)
	assert.Equal(t, errors.CodeIoError, errors.CodeOf(err))
	assert.Equal(t, exitError, exitCode(err))

	_, err = run(t, "render", "-c", writeContext(t), "--environment", testEnvironmentID, "-o", "toml")
	assert.Error(t, err)
}

func TestInvalidConfiguration(t *testing.T) {
	_, err := run(t, "--log-level", "verbose", "render", "-c", writeContext(t), "--environment", testEnvironmentID)
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigurationInvalid, errors.CodeOf(err))
}

func TestUnsupportedList(t *testing.T) {
	out, err := run(t, "unsupported")
	require.NoError(t, err)
	assert.Contains(t, out, "FEATURE")
	assert.Contains(t, out, "exec-probe")
	assert.Contains(t, out, "secret-env")
}

func TestUnsupportedForContext(t *testing.T) {
	out, err := run(t, "unsupported", "-c", writeContext(t))
	require.NoError(t, err)
	assert.Contains(t, out, "containers.web.livenessProbe")
	assert.NotContains(t, out, "secret-env")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "aca-recipe dev")
}

type stubDeployer struct {
	subscriptionID string
	submitted      *armappcontainers.ContainerApp
}

func (s *stubDeployer) Environment(_ context.Context, _ string) (*deploy.EnvironmentInfo, error) {
	return &deploy.EnvironmentInfo{Location: "westus", DefaultDomain: "happy.westus.azurecontainerapps.io"}, nil
}

func (s *stubDeployer) CreateOrUpdate(_ context.Context, _, name string, app armappcontainers.ContainerApp) (*armappcontainers.ContainerApp, error) {
	s.submitted = &app
	deployed := app
	deployed.ID = to.Ptr(containerAppID(name))
	return &deployed, nil
}

func containerAppID(name string) string {
	return "/subscriptions/22222222-2222-2222-2222-222222222222/resourceGroups/web-rg/providers/Microsoft.App/containerApps/" + name
}

func stubDeployers(t *testing.T) *stubDeployer {
	t.Helper()
	stub := &stubDeployer{}
	previous := newDeployer
	newDeployer = func(subscriptionID string) (deploy.Deployer, error) {
		stub.subscriptionID = subscriptionID
		return stub, nil
	}
	t.Cleanup(func() { newDeployer = previous })
	return stub
}

func TestDeploy(t *testing.T) {
	stub := stubDeployers(t)

	out, err := run(t, "deploy", "-c", writeContext(t), "--environment", testEnvironmentID, "--external")
	require.NoError(t, err)

	require.NotNil(t, stub.submitted)
	assert.Equal(t, "22222222-2222-2222-2222-222222222222", stub.subscriptionID)
	assert.Equal(t, "westus", *stub.submitted.Location)

	name := *stub.submitted.Name
	assert.Contains(t, out, containerAppID(name))
	assert.Contains(t, out, "https://"+name+".happy.westus.azurecontainerapps.io")
}

func TestDeployManifest(t *testing.T) {
	stub := stubDeployers(t)

	rendered, err := run(t, "render", "-c", writeContext(t), "--environment", testEnvironmentID)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(rendered), 0o600))

	_, err = run(t, "deploy", "--manifest", path)
	require.NoError(t, err)
	require.NotNil(t, stub.submitted)
	assert.Equal(t, testEnvironmentID, *stub.submitted.Properties.EnvironmentID)
}

func TestDeployRequiresEnvironment(t *testing.T) {
	stubDeployers(t)
	_, err := run(t, "deploy", "-c", writeContext(t))
	assert.ErrorIs(t, err, errors.ErrMissingParameter)
}
