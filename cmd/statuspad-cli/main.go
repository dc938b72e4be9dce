package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/statuspad/statuspad/clientcli"
)

var (
	version = "dev"

	cfgFile     string
	profileName string
	server      string
	token       string
	jsonOutput  bool
	quiet       bool
)

var rootCmd = &cobra.Command{
	Use:     "statuspad-cli",
	Version: version,
	Short:   "Client for the Statuspad status demo server",
	Long: `Statuspad CLI - Client for the Statuspad HTTP status demo server

The server pairs a small user directory with endpoints that answer
every common HTTP status (2xx through 5xx) on purpose. The CLI drives
those endpoints:
  - check:     probe every endpoint and compare got vs expected status
  - users:     list, get, create, update, delete users
  - maintenance: toggle the maintenance gate
  - configure: manage server profiles

NOTE: the full check suite sends more requests than the server's
default rate limit allows in one window. Start the server with
STATUSPAD_RATELIMIT_MAX_REQUESTS raised, or expect 429s.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.statuspad/config.yaml, env: STATUSPAD_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "profile name (env: STATUSPAD_PROFILE)")
	rootCmd.PersistentFlags().StringVarP(&server, "server", "s", "", "server URL (default: http://localhost:3000, env: STATUSPAD_ENDPOINT)")
	rootCmd.PersistentFlags().StringVarP(&token, "token", "t", "", "bearer token (env: STATUSPAD_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(maintenanceCmd)
	rootCmd.AddCommand(configureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// getConfigPath resolves the config file path from flag, env, or default.
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if envPath := clientcli.ConfigPathFromEnv(); envPath != "" {
		return envPath
	}
	return clientcli.DefaultConfigPath()
}

// buildConfig merges config from profile, env vars, and flags (flags take precedence).
func buildConfig() (*clientcli.Config, error) {
	var configs []*clientcli.Config

	// 1. Load from profile in the config file
	name := profileName
	if name == "" {
		name = clientcli.ProfileFromEnv()
	}

	configPath := getConfigPath()
	if configPath != "" {
		fileCfg, err := clientcli.LoadConfigFile(configPath)
		switch {
		case err == nil:
			p, profileErr := fileCfg.GetProfile(name)
			if profileErr != nil {
				// Missing default profile is fine; a named profile must exist
				if name != "" {
					return nil, profileErr
				}
			} else {
				configs = append(configs, clientcli.ConfigFromProfile(p))
			}
		case cfgFile != "":
			// Only error if the user explicitly asked for this file
			return nil, err
		case !errors.Is(err, os.ErrNotExist) && name != "":
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	// 2. Load from environment variables
	configs = append(configs, clientcli.ConfigFromEnv())

	// 3. Load from flags
	configs = append(configs, &clientcli.Config{
		Endpoint: server,
		Token:    token,
	})

	return clientcli.MergeConfig(configs...), nil
}

// getFormatter returns the appropriate formatter based on flags.
func getFormatter() clientcli.Formatter {
	return clientcli.NewFormatter(jsonOutput, quiet)
}

// getClient creates and returns a configured client.
func getClient() (*clientcli.Client, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}

	return clientcli.New(cfg)
}
