package azureaca

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"

	"github.com/Azure/aca-recipe/pkg/recipe"
)

// Dapr returns nil unless the daprSidecar extension is declared. The app id
// falls back to defaultAppID and the app port to the ingress port.
func Dapr(ext *recipe.Extensions, defaultAppID string, target IngressTarget, hasIngress bool) *armappcontainers.Dapr {
	if ext == nil || ext.DaprSidecar == nil {
		return nil
	}
	sidecar := ext.DaprSidecar

	appID := sidecar.AppID
	if appID == "" {
		appID = defaultAppID
	}
	out := &armappcontainers.Dapr{
		Enabled:     to.Ptr(true),
		AppID:       to.Ptr(appID),
		AppProtocol: to.Ptr(armappcontainers.AppProtocolHTTP),
	}
	switch {
	case sidecar.AppPort != nil:
		out.AppPort = to.Ptr(*sidecar.AppPort)
	case hasIngress:
		out.AppPort = to.Ptr(target.Port)
	}
	return out
}
