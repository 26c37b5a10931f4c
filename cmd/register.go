// ABOUTME: Register command creating an account from the terminal
// ABOUTME: Logs the new account in immediately on success

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

var (
	registerName     string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "Full name (required)")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password (prompted when omitted)")
	_ = registerCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(registerCmd)
}

// runRegister executes the registration flow and returns an exit code
func runRegister(ctx context.Context, w io.Writer, email string) int {
	password := registerPassword
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
	if len(password) < 6 {
		fmt.Fprintln(w, "Error: password must be at least 6 characters")
		return 2
	}

	sess := userSession()
	c := newClient(sess)

	resp, err := c.Register(ctx, &client.RegisterRequest{
		Name:     registerName,
		Email:    email,
		Password: password,
	})
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
		fmt.Fprintf(w, "Account created for %s (%s)\n", user.Name, user.Email)
		if resp.Message != "" {
			fmt.Fprintln(w, resp.Message)
		}
	}
	return 0
}
