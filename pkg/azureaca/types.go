// Package azureaca projects a recipe context onto an Azure Container Apps
// resource body. Every stage is a pure function of its inputs; Render runs
// them in order.
package azureaca

import (
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"

	"github.com/Azure/aca-recipe/pkg/recipe"
)

// Parameters are supplied by the provisioning system next to the context.
type Parameters struct {
	// EnvironmentID is the ARM id of the managed environment. Required.
	EnvironmentID string

	// External makes the selected ingress reachable from outside the
	// environment. Defaults to internal-only.
	External bool

	// Location of the container app. Left out of the manifest when empty.
	Location string

	// EnvironmentDomain is the managed environment's default domain. When set,
	// the FQDN can be computed before the app exists.
	EnvironmentDomain string
}

// Result is the outcome of one Render call.
type Result struct {
	// Name is the platform resource name (also App.Name).
	Name string

	SubscriptionID string
	ResourceGroup  string
	ResourceID     string

	App    armappcontainers.ContainerApp
	Output recipe.Output

	// Dropped lists input that has no representation in the manifest.
	Dropped []Finding
}
