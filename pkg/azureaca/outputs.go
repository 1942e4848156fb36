package azureaca

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"
	"k8s.io/utils/ptr"

	"github.com/Azure/aca-recipe/pkg/recipe"
)

// ResourceType is the ARM type of the resources this recipe creates.
const ResourceType = "Microsoft.App/containerApps"

// Scope is the subscription and resource group that own the managed
// environment; the container app is created next to it.
type Scope struct {
	SubscriptionID string
	ResourceGroup  string
}

// ScopeOf parses an environment id. ok is false for anything that is not an
// ARM resource id.
func ScopeOf(environmentID string) (Scope, bool) {
	id, err := arm.ParseResourceID(environmentID)
	if err != nil || id.SubscriptionID == "" || id.ResourceGroupName == "" {
		return Scope{}, false
	}
	return Scope{SubscriptionID: id.SubscriptionID, ResourceGroup: id.ResourceGroupName}, true
}

// ResourceID builds the app's ARM id, or just "<type>/<name>" when the
// environment id carries no scope.
func ResourceID(environmentID, name string) string {
	scope, ok := ScopeOf(environmentID)
	if !ok {
		return fmt.Sprintf("%s/%s", ResourceType, name)
	}
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/%s/%s",
		scope.SubscriptionID, scope.ResourceGroup, ResourceType, name)
}

// FQDN returns the platform-reported FQDN when present, otherwise the one
// Container Apps would assign in environmentDomain, otherwise "". Apps
// without ingress have no FQDN.
func FQDN(app *armappcontainers.ContainerApp, environmentDomain string) string {
	if app == nil || app.Properties == nil || app.Properties.Configuration == nil {
		return ""
	}
	ingress := app.Properties.Configuration.Ingress
	if ingress == nil {
		return ""
	}
	if fqdn := ptr.Deref(ingress.Fqdn, ""); fqdn != "" {
		return fqdn
	}
	name := ptr.Deref(app.Name, "")
	if environmentDomain == "" || name == "" {
		return ""
	}
	if ptr.Deref(ingress.External, false) {
		return name + "." + environmentDomain
	}
	return name + ".internal." + environmentDomain
}

// ProjectOutputs builds the output envelope returned to the provisioning
// system.
func ProjectOutputs(resourceID string, app *armappcontainers.ContainerApp, environmentDomain string) recipe.Output {
	out := recipe.Output{
		Resources: []string{resourceID},
	}
	if fqdn := FQDN(app, environmentDomain); fqdn != "" {
		out.Values.FQDN = fqdn
		out.Values.URL = "https://" + fqdn
	}
	return out
}
