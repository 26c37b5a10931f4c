// ABOUTME: Profile command showing the logged-in account
// ABOUTME: Always fetches fresh data; the cached profile is only a fallback

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

	"github.com/gobiz/gobiz-cli/internal/client"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the logged-in account and balance",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProfile(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

// runProfile fetches and prints the profile, returning an exit code
func runProfile(ctx context.Context, w io.Writer) int {
	sess := userSession()
	if !sess.LoggedIn() {
		fmt.Fprintln(w, "Not logged in. Run: gobiz login <email>")
		return 2
	}

	c := newClient(sess)
	user, err := c.Profile(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	_ = sess.SetProfile(user)

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatProfileHuman(user))
	}
	return 0
}

// formatProfileHuman formats the profile for human readability
func formatProfileHuman(user *client.User) string {
	return fmt.Sprintf(`Name:       %s
Email:      %s
Status:     %s
Balance:    ₹%.2f
Searches:   %d
Member:     %s`,
		user.Name, user.Email, user.Status,
		user.Credits, user.SearchCount, user.CreatedAt)
}
