package azureaca

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/Azure/aca-recipe/pkg/domain/errors"
	"github.com/Azure/aca-recipe/pkg/recipe"
)

const (
	// DefaultCPU is in cores.
	DefaultCPU    = 0.25
	DefaultMemory = "0.5Gi"
)

// WorkloadResources prefers requests, then limits, then the defaults, for
// CPU and memory independently.
func WorkloadResources(container string, res *recipe.Resources) (*armappcontainers.ContainerResources, error) {
	var requests, limits recipe.ResourceList
	if res != nil {
		if res.Requests != nil {
			requests = *res.Requests
		}
		if res.Limits != nil {
			limits = *res.Limits
		}
	}

	cpu := requests.CPU
	if cpu == nil {
		cpu = limits.CPU
	}
	mem := requests.MemoryInMib
	if mem == nil {
		mem = limits.MemoryInMib
	}
	return convertResources(container, cpu, mem)
}

// InitResources reads requests only; limits are ignored for init containers.
func InitResources(container string, res *recipe.Resources) (*armappcontainers.ContainerResources, error) {
	var requests recipe.ResourceList
	if res != nil && res.Requests != nil {
		requests = *res.Requests
	}
	return convertResources(container, requests.CPU, requests.MemoryInMib)
}

func convertResources(container string, cpu *recipe.Scalar, memoryInMib *int64) (*armappcontainers.ContainerResources, error) {
	out := &armappcontainers.ContainerResources{
		CPU:    to.Ptr(DefaultCPU),
		Memory: to.Ptr(DefaultMemory),
	}
	if cpu != nil {
		cores, err := ParseCPU(cpu.String())
		if err != nil {
			return nil, errors.New(errors.CodeInvalidParameter, errors.DomainRender,
				fmt.Sprintf("container %q: cpu %q", container, cpu.String()), err)
		}
		out.CPU = to.Ptr(cores)
	}
	if memoryInMib != nil {
		out.Memory = to.Ptr(MemoryFromMiB(*memoryInMib))
	}
	return out, nil
}

// ParseCPU accepts decimal cores ("0.5") as well as Kubernetes quantities
// ("500m").
func ParseCPU(s string) (float64, error) {
	q, err := resource.ParseQuantity(s)
	if err != nil {
		return 0, err
	}
	if q.Sign() <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return q.AsApproximateFloat64(), nil
}

// MemoryFromMiB converts to whole GiB. The division truncates, so 1536 MiB
// becomes "1Gi".
func MemoryFromMiB(mib int64) string {
	return fmt.Sprintf("%dGi", mib/1024)
}
