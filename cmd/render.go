package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Azure/aca-recipe/pkg/azureaca"
	"github.com/Azure/aca-recipe/pkg/recipe"
)

type renderOptions struct {
	contextPath       string
	environment       string
	external          bool
	location          string
	environmentDomain string
	output            string
}

func (o *renderOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.contextPath, "context", "c", "-", "Recipe context file (YAML or JSON); - reads stdin")
	cmd.Flags().StringVar(&o.environment, "environment", "", "ARM id of the target managed environment")
	cmd.Flags().BoolVar(&o.external, "external", false, "Expose the selected ingress outside the environment")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Output format: json or yaml")
}

// params merges flags with the configured fallbacks.
func (o *renderOptions) params(root *rootOptions) azureaca.Parameters {
	params := azureaca.Parameters{
		EnvironmentID:     o.environment,
		External:          o.external,
		Location:          o.location,
		EnvironmentDomain: o.environmentDomain,
	}
	if params.Location == "" {
		params.Location = root.cfg.Location
	}
	if params.EnvironmentDomain == "" {
		params.EnvironmentDomain = root.cfg.EnvironmentDomain
	}
	return params
}

func (o *renderOptions) format(root *rootOptions) string {
	if o.output != "" {
		return o.output
	}
	return root.cfg.OutputFormat
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	o := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a Container Apps manifest from a recipe context",
		Long: `Render reads a recipe context and prints the Container Apps resource body
together with the recipe outputs. Nothing is sent to Azure.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := recipe.ParseFile(o.contextPath)
			if err != nil {
				return err
			}
			result, err := azureaca.Render(rc, o.params(root))
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), o.format(root), newEnvelope(result))
		},
	}
	o.addFlags(cmd)
	cmd.Flags().StringVar(&o.location, "location", "", "Azure region written to the manifest")
	cmd.Flags().StringVar(&o.environmentDomain, "environment-domain", "", "Default domain of the managed environment, used to compute the FQDN")
	return cmd
}
