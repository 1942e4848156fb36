package azureaca

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"

	"github.com/Azure/aca-recipe/pkg/domain/errors"
	"github.com/Azure/aca-recipe/pkg/recipe"
)

// Metadata variables appended to every workload container's env.
const (
	EnvApplicationName = "APPLICATION_NAME"
	EnvEnvironmentName = "ENVIRONMENT_NAME"
	EnvResourceName    = "RESOURCE_NAME"
)

// BuildContainers splits the containers bag into workload and init specs,
// both in declaration order. Workload env is literal env, then connection
// env, then the metadata variables; init containers get literal env only.
// initContainers is nil when there are none.
func BuildContainers(n Normalized, connectionEnv []*armappcontainers.EnvironmentVar) (containers []*armappcontainers.Container, initContainers []*armappcontainers.InitContainer, err error) {
	for name, c := range n.Resource.Properties.Containers.All() {
		if c.Image == "" {
			return nil, nil, errors.Newf(errors.CodeMissingParameter, errors.DomainRender, "container %q has no image", name)
		}

		if c.InitContainer {
			resources, err := InitResources(name, c.Resources)
			if err != nil {
				return nil, nil, err
			}
			initContainers = append(initContainers, &armappcontainers.InitContainer{
				Name:      to.Ptr(name),
				Image:     to.Ptr(c.Image),
				Command:   stringPtrs(c.Command),
				Args:      stringPtrs(c.Args),
				Env:       LiteralEnv(c.Env),
				Resources: resources,
			})
			continue
		}

		resources, err := WorkloadResources(name, c.Resources)
		if err != nil {
			return nil, nil, err
		}
		env := LiteralEnv(c.Env)
		env = append(env, connectionEnv...)
		env = append(env, metadataEnv(n)...)

		containers = append(containers, &armappcontainers.Container{
			Name:      to.Ptr(name),
			Image:     to.Ptr(c.Image),
			Command:   stringPtrs(c.Command),
			Args:      stringPtrs(c.Args),
			Env:       env,
			Resources: resources,
			Probes:    Probes(c),
		})
	}

	if len(containers) == 0 {
		return nil, nil, errors.Newf(errors.CodeMissingParameter, errors.DomainRender, "resource %q declares no workload container", n.ResourceName)
	}
	return containers, initContainers, nil
}

// LiteralEnv keeps literal values in declaration order and drops secret
// references. Returns nil when nothing is left.
func LiteralEnv(env recipe.Map[recipe.EnvVar]) []*armappcontainers.EnvironmentVar {
	var out []*armappcontainers.EnvironmentVar
	for name, e := range env.All() {
		value, ok := literalValue(e)
		if !ok {
			continue
		}
		out = append(out, &armappcontainers.EnvironmentVar{
			Name:  to.Ptr(name),
			Value: to.Ptr(value),
		})
	}
	return out
}

func metadataEnv(n Normalized) []*armappcontainers.EnvironmentVar {
	return []*armappcontainers.EnvironmentVar{
		{Name: to.Ptr(EnvApplicationName), Value: to.Ptr(n.ApplicationName)},
		{Name: to.Ptr(EnvEnvironmentName), Value: to.Ptr(n.EnvironmentLabel)},
		{Name: to.Ptr(EnvResourceName), Value: to.Ptr(n.ResourceName)},
	}
}

func stringPtrs(in []string) []*string {
	if len(in) == 0 {
		return nil
	}
	return to.SliceOfPtrs(in...)
}
