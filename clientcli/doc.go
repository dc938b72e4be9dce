// Package clientcli provides a client library for probing statuspad servers.
//
// It replaces a manual test script with a declarative request matrix: each
// probe sends one documented request and compares the response status against
// the documented contract. The package includes profile-based configuration
// for managing connections to multiple servers.
//
// # Basic Usage
//
// Create a client and run the full check suite:
//
//	cfg := &clientcli.Config{
//		Endpoint: "http://localhost:3000",
//		Token:    "valid-token-123",
//	}
//
//	client, err := clientcli.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	report, err := client.Check(ctx, clientcli.CheckOptions{})
//
// The full suite issues roughly twenty requests; against a server with the
// default rate limit of ten per minute, raise STATUSPAD_RATELIMIT_MAX_REQUESTS
// before running it.
//
// # Profile Configuration
//
// Use profiles to manage multiple server configurations:
//
//	configFile, err := clientcli.LoadConfigFile("~/.statuspad/config.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	profile, err := configFile.GetProfile("staging")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	cfg := clientcli.ConfigFromProfile(profile)
//	client, err := clientcli.New(cfg)
//
// # Output Formatting
//
// Use formatters for human-readable or JSON output:
//
//	formatter := clientcli.NewFormatter(jsonOutput, quiet)
//	formatter.FormatCheck(os.Stdout, report)
package clientcli
