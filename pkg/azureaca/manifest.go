package azureaca

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"

	"github.com/Azure/aca-recipe/pkg/domain/errors"
	"github.com/Azure/aca-recipe/pkg/logger"
	"github.com/Azure/aca-recipe/pkg/recipe"
)

// Tag keys set on every container app.
const (
	TagApplication = "application"
	TagEnvironment = "environment"
	TagResource    = "resource"
)

// Render runs the whole projection. The only failures are missing required
// input and unparseable explicit values; unsupported features are dropped
// and reported in Result.Dropped.
func Render(rc *recipe.Context, params Parameters) (*Result, error) {
	if params.EnvironmentID == "" {
		return nil, errors.Newf(errors.CodeMissingParameter, errors.DomainRender, "environment id is required")
	}
	if rc == nil {
		return nil, errors.Newf(errors.CodeMissingParameter, errors.DomainRender, "recipe context is required")
	}

	n := Normalize(rc, params)

	dropped := DetectUnsupported(rc)
	for _, f := range dropped {
		logger.Debugf("not projected: %s", f)
	}

	target, hasIngress := SelectIngress(n.Resource.Properties.Containers)
	containers, initContainers, err := BuildContainers(n, ConnectionEnv(n.Resource))
	if err != nil {
		return nil, err
	}

	app := Assemble(n, params, AssembleInput{
		Containers:     containers,
		InitContainers: initContainers,
		Scale:          Scale(n.Resource.Properties),
		Ingress:        Ingress(target, hasIngress, params.External),
		Dapr:           Dapr(n.Resource.Properties.Extensions, n.Name, target, hasIngress),
	})

	result := &Result{
		Name:       n.PlatformName,
		ResourceID: ResourceID(params.EnvironmentID, n.PlatformName),
		App:        app,
		Dropped:    dropped,
	}
	if scope, ok := ScopeOf(params.EnvironmentID); ok {
		result.SubscriptionID = scope.SubscriptionID
		result.ResourceGroup = scope.ResourceGroup
	}
	result.Output = ProjectOutputs(result.ResourceID, &result.App, params.EnvironmentDomain)

	logger.Debugf("rendered container app %s with %d container(s), %d init container(s), ingress=%v",
		n.PlatformName, len(containers), len(initContainers), hasIngress)
	return result, nil
}

// AssembleInput carries the outputs of the earlier stages.
type AssembleInput struct {
	Containers     []*armappcontainers.Container
	InitContainers []*armappcontainers.InitContainer
	Scale          *armappcontainers.Scale
	Ingress        *armappcontainers.Ingress
	Dapr           *armappcontainers.Dapr
}

// Assemble combines the stage outputs into the resource body. Empty optional
// blocks are left nil so they are not serialized.
func Assemble(n Normalized, params Parameters, in AssembleInput) armappcontainers.ContainerApp {
	app := armappcontainers.ContainerApp{
		Name: to.Ptr(n.PlatformName),
		Tags: map[string]*string{
			TagApplication: to.Ptr(n.ApplicationName),
			TagEnvironment: to.Ptr(n.EnvironmentLabel),
			TagResource:    to.Ptr(n.ResourceName),
		},
		Properties: &armappcontainers.ContainerAppProperties{
			EnvironmentID: to.Ptr(params.EnvironmentID),
			Template: &armappcontainers.Template{
				Containers:     in.Containers,
				InitContainers: in.InitContainers,
				Scale:          in.Scale,
			},
		},
	}
	if params.Location != "" {
		app.Location = to.Ptr(params.Location)
	}
	if in.Ingress != nil || in.Dapr != nil {
		app.Properties.Configuration = &armappcontainers.Configuration{
			Ingress: in.Ingress,
			Dapr:    in.Dapr,
		}
	}
	return app
}
