// ABOUTME: UI command launching the interactive terminal application
// ABOUTME: Also backs the bare root invocation

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gobiz/gobiz-cli/internal/debuglog"
	"github.com/gobiz/gobiz-cli/internal/session"
	"github.com/gobiz/gobiz-cli/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI()
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

// runUI wires the session stores into the TUI and blocks until exit
func runUI() error {
	configDir := session.DefaultConfigDir()

	if os.Getenv("GOBIZ_DEBUG") != "" {
		if err := debuglog.Init(configDir); err == nil {
			defer debuglog.Close()
		}
	}

	sess := userSession()
	adminSess := adminSession()
	api := newClient(sess)
	debuglog.Log("ui start, api %s, logged_in=%t", GetAPIURL(), sess.LoggedIn())
	return tui.Run(api, sess, adminSess, configDir)
}
