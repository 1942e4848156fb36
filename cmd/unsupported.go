package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Azure/aca-recipe/pkg/azureaca"
	"github.com/Azure/aca-recipe/pkg/recipe"
)

func newUnsupportedCmd(root *rootOptions) *cobra.Command {
	var contextPath string

	cmd := &cobra.Command{
		Use:   "unsupported",
		Short: "List recipe features that are not carried into the manifest",
		Long: `Without --context, lists every feature the Container Apps projection drops.
With --context, lists where the given recipe context uses them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if contextPath == "" {
				fmt.Fprintln(w, "FEATURE\tFIELD\tREASON")
				for _, f := range azureaca.UnsupportedFeatures() {
					fmt.Fprintf(w, "%s\t%s\t%s\n", f.ID, f.Field, f.Reason)
				}
				return w.Flush()
			}

			rc, err := recipe.ParseFile(contextPath)
			if err != nil {
				return err
			}
			findings := azureaca.DetectUnsupported(rc)
			if len(findings) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no unsupported features used")
				return err
			}
			fmt.Fprintln(w, "PATH\tFEATURE\tREASON")
			for _, f := range findings {
				fmt.Fprintf(w, "%s\t%s\t%s\n", f.Path, f.Feature.ID, f.Feature.Reason)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&contextPath, "context", "c", "", "Recipe context file to inspect; - reads stdin")
	return cmd
}
