package azureaca

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"

	"github.com/Azure/aca-recipe/pkg/recipe"
)

// IngressTarget identifies the single port exposed through ingress.
type IngressTarget struct {
	Container string
	PortName  string
	Port      int32
}

// SelectIngress picks the first port of the first container that declares
// any. A resource gets at most one ingress target even when several
// containers declare ports.
func SelectIngress(containers recipe.Map[recipe.Container]) (IngressTarget, bool) {
	for name, c := range containers.All() {
		if portName, p, ok := c.Ports.First(); ok {
			return IngressTarget{Container: name, PortName: portName, Port: p.ContainerPort}, true
		}
	}
	return IngressTarget{}, false
}

// Ingress returns nil when there is no target.
func Ingress(target IngressTarget, ok bool, external bool) *armappcontainers.Ingress {
	if !ok {
		return nil
	}
	return &armappcontainers.Ingress{
		External:   to.Ptr(external),
		TargetPort: to.Ptr(target.Port),
	}
}
