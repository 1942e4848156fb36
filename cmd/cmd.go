package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/Azure/aca-recipe/pkg/config"
	"github.com/Azure/aca-recipe/pkg/logger"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

type rootOptions struct {
	envFile  string
	logLevel string

	cfg *config.Config
}

// NewRootCmd builds the command tree. Each call returns independent state.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "aca-recipe",
		Short: "Render and deploy Azure Container Apps from recipe contexts",
		Long: `aca-recipe projects an abstract container resource description onto an
Azure Container Apps manifest, and can submit that manifest to Azure.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.envFile)
			if err != nil {
				return configError(err)
			}
			if opts.logLevel != "" {
				cfg.LogLevel = opts.logLevel
				if err := cfg.Validate(); err != nil {
					return configError(err)
				}
			}
			logger.SetOutput(cmd.ErrOrStderr(), cmd.ErrOrStderr())
			logger.SetLevel(cfg.LogLevel)
			opts.cfg = cfg
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Env file read before the process environment")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides "+config.EnvLogLevel)

	rootCmd.AddCommand(newRenderCmd(opts))
	rootCmd.AddCommand(newDeployCmd(opts))
	rootCmd.AddCommand(newUnsupportedCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		printErrorHelp(err)
		os.Exit(exitCode(err))
	}
}
