// ABOUTME: Balance command validating the wallet against a minimum
// ABOUTME: Exits non-zero when the balance drops below the threshold

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

var minBalance float64

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Check the wallet balance against a minimum",
	Long: `Check the wallet balance, optionally against a minimum threshold.

Exit codes:
  0 - Balance at or above the minimum
  1 - Balance below the minimum
  2 - Error (connectivity, not logged in, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBalance(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	balanceCmd.Flags().Float64Var(&minBalance, "min", 0, "Minimum acceptable balance")
	rootCmd.AddCommand(balanceCmd)
}

// runBalance executes the balance check and returns an exit code
func runBalance(ctx context.Context, w io.Writer) int {
	if minBalance < 0 {
		fmt.Fprintln(w, "Error: --min must not be negative")
		return 2
	}

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

	passed := user.Credits >= minBalance

	if IsJSONOutput() {
		fmt.Fprintln(w, formatBalanceJSON(user.Credits, passed))
	} else {
		fmt.Fprintln(w, formatBalanceHuman(user.Credits, passed))
	}

	if !passed {
		return 1
	}
	return 0
}

// formatBalanceHuman formats the balance check for human readability
func formatBalanceHuman(balance float64, passed bool) string {
	if minBalance > 0 {
		symbol := "✓"
		if !passed {
			symbol = "✗"
		}
		return fmt.Sprintf("%s Balance: ₹%.2f (minimum: ₹%.2f)", symbol, balance, minBalance)
	}
	return fmt.Sprintf("Balance: ₹%.2f", balance)
}

// formatBalanceJSON formats the balance check as JSON
func formatBalanceJSON(balance float64, passed bool) string {
	output := map[string]interface{}{
		"balance": balance,
		"passed":  passed,
	}
	if minBalance > 0 {
		output["minimum"] = minBalance
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
