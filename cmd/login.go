// ABOUTME: Login command establishing a session for scripted use
// ABOUTME: Stores the bearer token and profile in the config directory

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
	"golang.org/x/term"

	"github.com/gobiz/gobiz-cli/internal/client"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in and store the session token",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

// runLogin executes the login flow and returns an exit code
func runLogin(ctx context.Context, w io.Writer, email string) int {
	password := loginPassword
	if password == "" {
		fmt.Fprint(w, "Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(w)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		password = string(raw)
	}

	sess := userSession()
	c := newClient(sess)

	resp, err := c.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if err := sess.SetToken(resp.Token); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user, err := c.Profile(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if err := sess.SetProfile(user); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatLoginHuman(user))
	}
	return 0
}

func formatLoginHuman(user *client.User) string {
	return fmt.Sprintf("Logged in as %s (%s)\nBalance: ₹%.2f", user.Name, user.Email, user.Credits)
}
