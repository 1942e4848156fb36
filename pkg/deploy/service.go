package deploy

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"
	"k8s.io/utils/ptr"

	"github.com/Azure/aca-recipe/pkg/azureaca"
	"github.com/Azure/aca-recipe/pkg/domain/errors"
	"github.com/Azure/aca-recipe/pkg/logger"
	"github.com/Azure/aca-recipe/pkg/recipe"
)

// Service renders, validates and submits container apps.
type Service struct {
	deployer Deployer
}

func NewService(deployer Deployer) *Service {
	return &Service{deployer: deployer}
}

// Deploy renders rc for the environment named in params and submits it.
// Location and environment domain are read from the environment unless
// params already carries them. The returned outputs use the FQDN reported
// by the platform.
func (s *Service) Deploy(ctx context.Context, rc *recipe.Context, params azureaca.Parameters) (*azureaca.Result, error) {
	if params.EnvironmentID == "" {
		return nil, errors.Newf(errors.CodeMissingParameter, errors.DomainDeploy, "environment id is required")
	}
	if _, err := parseEnvironmentID(params.EnvironmentID); err != nil {
		return nil, err
	}

	env, err := s.deployer.Environment(ctx, params.EnvironmentID)
	if err != nil {
		return nil, err
	}
	if params.Location == "" {
		params.Location = env.Location
	}
	if params.EnvironmentDomain == "" {
		params.EnvironmentDomain = env.DefaultDomain
	}

	result, err := azureaca.Render(rc, params)
	if err != nil {
		return nil, err
	}
	for _, f := range result.Dropped {
		logger.Warnf("not deployed: %s", f)
	}
	if err := azureaca.Validate(&result.App).Err(); err != nil {
		return nil, err
	}

	deployed, err := s.deployer.CreateOrUpdate(ctx, result.ResourceGroup, result.Name, result.App)
	if err != nil {
		return nil, err
	}
	s.applyDeployed(result, deployed, params.EnvironmentDomain)
	return result, nil
}

// DeployManifest submits an already rendered container app body. The
// resource group comes from the app's environment id.
func (s *Service) DeployManifest(ctx context.Context, app *armappcontainers.ContainerApp) (*azureaca.Result, error) {
	if err := azureaca.Validate(app).Err(); err != nil {
		return nil, err
	}
	environmentID := ptr.Deref(app.Properties.EnvironmentID, "")
	if _, err := parseEnvironmentID(environmentID); err != nil {
		return nil, err
	}
	scope, _ := azureaca.ScopeOf(environmentID)

	env, err := s.deployer.Environment(ctx, environmentID)
	if err != nil {
		return nil, err
	}
	if app.Location == nil && env.Location != "" {
		app.Location = ptr.To(env.Location)
	}

	name := ptr.Deref(app.Name, "")
	result := &azureaca.Result{
		Name:           name,
		SubscriptionID: scope.SubscriptionID,
		ResourceGroup:  scope.ResourceGroup,
		ResourceID:     azureaca.ResourceID(environmentID, name),
		App:            *app,
	}

	deployed, err := s.deployer.CreateOrUpdate(ctx, scope.ResourceGroup, name, *app)
	if err != nil {
		return nil, err
	}
	s.applyDeployed(result, deployed, env.DefaultDomain)
	return result, nil
}

func (s *Service) applyDeployed(result *azureaca.Result, deployed *armappcontainers.ContainerApp, environmentDomain string) {
	if deployed == nil {
		result.Output = azureaca.ProjectOutputs(result.ResourceID, &result.App, environmentDomain)
		return
	}
	if id := ptr.Deref(deployed.ID, ""); id != "" {
		result.ResourceID = id
	}
	result.App = *deployed
	result.Output = azureaca.ProjectOutputs(result.ResourceID, deployed, environmentDomain)
	logger.Infof("container app %s available at %q", result.Name, result.Output.Values.URL)
}
