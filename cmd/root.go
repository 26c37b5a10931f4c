// ABOUTME: Root command for the gobiz CLI
// ABOUTME: Handles global flags, env configuration, and shared client setup

package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gobiz/gobiz-cli/internal/client"
	"github.com/gobiz/gobiz-cli/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8080"

// rootCmd is the base command; running it bare opens the TUI
var rootCmd = &cobra.Command{
	Use:   "gobiz",
	Short: "Terminal client for the Go-Biz number lookup service",
	Long: `gobiz is a terminal client for the Go-Biz mobile number lookup service.

Run it without arguments for the interactive UI, or use the subcommands
for scripting: login, search, history, wallet, and more.

Environment Variables:
  GOBIZ_API_URL  Backend API URL (default: http://localhost:8080)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A .env in the working directory can supply GOBIZ_API_URL.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides GOBIZ_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("GOBIZ_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// userSession loads the regular user session from the config directory
func userSession() *session.Store {
	sess := session.New(session.DefaultConfigDir(), "session.json")
	_ = sess.Load()
	return sess
}

// adminSession loads the separate admin session
func adminSession() *session.Store {
	sess := session.New(session.DefaultConfigDir(), "admin.json")
	_ = sess.Load()
	return sess
}

// newClient builds an API client bound to the given session
func newClient(sess *session.Store) *client.Client {
	return client.New(GetAPIURL(), client.WithCredentials(sess))
}
