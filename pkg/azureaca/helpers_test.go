package azureaca

import (
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"
	"github.com/stretchr/testify/require"

	"github.com/Azure/aca-recipe/pkg/recipe"
)

const testEnvironmentID = "/subscriptions/00000000-0000-0000-0000-000000000000/resourceGroups/apps-rg/providers/Microsoft.App/managedEnvironments/prod-env"

// twoContainerContext is the minimal workload plus init container case.
const twoContainerContext = `
resource:
  name: demo
  id: /planes/radius/local/resourceGroups/dev/providers/Applications.Core/containers/demo
  properties:
    containers:
      main:
        image: ghcr.io/example/main:1.0
        ports:
          web: {containerPort: 8080}
        livenessProbe:
          httpGet: {port: 8080, path: /healthz}
      init:
        image: busybox:1.36
        initContainer: true
`

func parseContext(t *testing.T, doc string) *recipe.Context {
	t.Helper()
	rc, err := recipe.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return rc
}

func envNames(env []*armappcontainers.EnvironmentVar) []string {
	names := make([]string, 0, len(env))
	for _, e := range env {
		names = append(names, *e.Name)
	}
	return names
}

func envValue(env []*armappcontainers.EnvironmentVar, name string) (string, bool) {
	for _, e := range env {
		if *e.Name == name {
			return *e.Value, true
		}
	}
	return "", false
}
