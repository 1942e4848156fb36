package azureaca

import (
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"
	"k8s.io/utils/ptr"

	"github.com/Azure/aca-recipe/pkg/recipe"
)

// reservedConnectionProperties describe the connected resource's lifecycle,
// not its endpoint, and are never injected.
var reservedConnectionProperties = map[string]struct{}{
	"recipe":            {},
	"status":            {},
	"provisioningState": {},
}

// ConnectionEnv turns resolved connection properties into
// CONNECTION_<NAME>_<PROPERTY> variables, following connection order and
// then property order.
func ConnectionEnv(res recipe.Resource) []*armappcontainers.EnvironmentVar {
	var env []*armappcontainers.EnvironmentVar
	for conn, props := range res.Connections.All() {
		def, _ := res.Properties.Connections.Get(conn)
		if ptr.Deref(def.DisableDefaultEnvVars, false) {
			continue
		}
		for key, value := range props.All() {
			if _, reserved := reservedConnectionProperties[key]; reserved {
				continue
			}
			env = append(env, &armappcontainers.EnvironmentVar{
				Name:  to.Ptr(strings.ToUpper("CONNECTION_" + conn + "_" + key)),
				Value: to.Ptr(value.String()),
			})
		}
	}
	return env
}
