package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Azure/aca-recipe/pkg/azureaca"
	"github.com/Azure/aca-recipe/pkg/deploy"
	"github.com/Azure/aca-recipe/pkg/domain/errors"
	"github.com/Azure/aca-recipe/pkg/logger"
	"github.com/Azure/aca-recipe/pkg/recipe"
)

// newDeployer is replaced in tests.
var newDeployer = func(subscriptionID string) (deploy.Deployer, error) {
	return deploy.NewDefaultARMDeployer(subscriptionID)
}

func newDeployCmd(root *rootOptions) *cobra.Command {
	o := &renderOptions{}
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Render a recipe context and create or update the container app in Azure",
		Long: `Deploy renders the recipe context, validates the manifest and submits it with
the default Azure credential chain. With --manifest, a previously rendered
manifest is submitted as is.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), root.cfg.DeployTimeout)
			defer cancel()

			var (
				result *azureaca.Result
				err    error
			)
			if manifestPath != "" {
				result, err = deployManifest(ctx, manifestPath)
			} else {
				result, err = deployContext(ctx, o, root)
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), o.format(root), newEnvelope(result))
		},
	}
	o.addFlags(cmd)
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Deploy a rendered manifest instead of a recipe context")
	cmd.MarkFlagsMutuallyExclusive("manifest", "context")
	cmd.MarkFlagsMutuallyExclusive("manifest", "environment")
	return cmd
}

func deployContext(ctx context.Context, o *renderOptions, root *rootOptions) (*azureaca.Result, error) {
	if o.environment == "" {
		return nil, errors.Newf(errors.CodeMissingParameter, errors.DomainCommand, "--environment is required")
	}
	rc, err := recipe.ParseFile(o.contextPath)
	if err != nil {
		return nil, err
	}
	svc, err := newService(o.environment)
	if err != nil {
		return nil, err
	}
	// Location and domain come from the managed environment.
	params := o.params(root)
	params.Location = ""
	params.EnvironmentDomain = ""
	return svc.Deploy(ctx, rc, params)
}

func deployManifest(ctx context.Context, path string) (*azureaca.Result, error) {
	app, err := azureaca.ParseManifest(path)
	if err != nil {
		return nil, err
	}
	environmentID := ""
	if app.Properties != nil && app.Properties.EnvironmentID != nil {
		environmentID = *app.Properties.EnvironmentID
	}
	svc, err := newService(environmentID)
	if err != nil {
		return nil, err
	}
	return svc.DeployManifest(ctx, app)
}

func newService(environmentID string) (*deploy.Service, error) {
	subscriptionID, err := deploy.SubscriptionOf(environmentID)
	if err != nil {
		return nil, err
	}
	deployer, err := newDeployer(subscriptionID)
	if err != nil {
		return nil, err
	}
	logger.Debugf("deploying into subscription %s", subscriptionID)
	return deploy.NewService(deployer), nil
}
