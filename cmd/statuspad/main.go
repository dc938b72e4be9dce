package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/statuspad/statuspad/config"
)

var version = "dev"

var configFiles []string

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "statuspad",
	Short:   "Reference HTTP service for standard status codes",
	Long: `Statuspad is a reference HTTP service that exercises and documents
standard response status codes (2xx-5xx) against a trivial user directory.

Every route passes a request-admission pipeline: maintenance gate,
per-client rate limiter, then per-route authentication and authorization.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}
		setupLogging(cfg)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&configFiles, "config", nil, "config file path(s), later files override earlier ones (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("env", "", "runtime environment: dev, prod (env: STATUSPAD_ENV)")
	rootCmd.PersistentFlags().String("auth-token", "", "accepted bearer token (env: STATUSPAD_AUTH_TOKEN)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
