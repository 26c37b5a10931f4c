// ABOUTME: Key command showing or rotating the account API key
// ABOUTME: Rotation invalidates the previous key immediately

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var keyRotate bool

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Show or rotate your API key",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runKey(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	keyCmd.Flags().BoolVar(&keyRotate, "rotate", false, "Generate a new key, invalidating the old one")
	rootCmd.AddCommand(keyCmd)
}

// runKey prints or rotates the API key, returning an exit code
func runKey(ctx context.Context, w io.Writer) int {
	sess := userSession()
	if !sess.LoggedIn() {
		fmt.Fprintln(w, "Not logged in. Run: gobiz login <email>")
		return 2
	}
	c := newClient(sess)

	if keyRotate {
		key, err := c.GenerateAPIKey(ctx)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		if user := sess.Profile(); user != nil {
			updated := *user
			updated.APIKey = key
			_ = sess.SetProfile(&updated)
		}
		printKey(w, key)
		return 0
	}

	user, err := c.Profile(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if user.APIKey == "" {
		fmt.Fprintln(w, "No API key yet. Run: gobiz key --rotate")
		return 1
	}
	printKey(w, user.APIKey)
	return 0
}

func printKey(w io.Writer, key string) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]string{"api_key": key}, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintln(w, key)
}
