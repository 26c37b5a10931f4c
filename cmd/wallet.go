// ABOUTME: Wallet commands for deposits and payment history
// ABOUTME: Manual deposits go through admin review before crediting

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gobiz/gobiz-cli/internal/client"
)

var (
	depositUTR        string
	depositScreenshot string
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Wallet balance, deposits, and payment history",
}

var walletDepositCmd = &cobra.Command{
	Use:   "deposit <amount>",
	Short: "Submit a manual deposit for admin review",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWalletDeposit(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var walletPaymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "List past payments and their status",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWalletPayments(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var walletVerifyCmd = &cobra.Command{
	Use:   "verify <order-id>",
	Short: "Verify a gateway payment by order ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWalletVerify(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	walletDepositCmd.Flags().StringVar(&depositUTR, "utr", "", "Bank UTR / transaction reference (required)")
	walletDepositCmd.Flags().StringVar(&depositScreenshot, "screenshot", "", "Screenshot URL")
	_ = walletDepositCmd.MarkFlagRequired("utr")

	walletCmd.AddCommand(walletDepositCmd)
	walletCmd.AddCommand(walletPaymentsCmd)
	walletCmd.AddCommand(walletVerifyCmd)
	rootCmd.AddCommand(walletCmd)
}

// runWalletDeposit submits a manual deposit, returning an exit code
func runWalletDeposit(ctx context.Context, w io.Writer, amountArg string) int {
	sess := userSession()
	if !sess.LoggedIn() {
		fmt.Fprintln(w, "Not logged in. Run: gobiz login <email>")
		return 2
	}

	var amount float64
	if _, err := fmt.Sscanf(amountArg, "%f", &amount); err != nil {
		fmt.Fprintf(w, "Error: invalid amount %q\n", amountArg)
		return 2
	}

	c := newClient(sess)
	resp, err := c.SubmitDeposit(ctx, &client.DepositRequest{
		Amount:        amount,
		UTR:           depositUTR,
		ScreenshotURL: depositScreenshot,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, resp.Message)
	}
	return 0
}

// runWalletPayments lists payment history, returning an exit code
func runWalletPayments(ctx context.Context, w io.Writer) int {
	sess := userSession()
	if !sess.LoggedIn() {
		fmt.Fprintln(w, "Not logged in. Run: gobiz login <email>")
		return 2
	}

	c := newClient(sess)
	payments, err := c.PaymentHistory(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(payments, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatPaymentsHuman(payments))
	}
	return 0
}

// runWalletVerify checks a gateway payment, returning an exit code
func runWalletVerify(ctx context.Context, w io.Writer, orderID string) int {
	sess := userSession()
	if !sess.LoggedIn() {
		fmt.Fprintln(w, "Not logged in. Run: gobiz login <email>")
		return 2
	}

	c := newClient(sess)
	status, err := c.VerifyPayment(ctx, orderID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(status, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Status:       %s\n", status.Status)
		fmt.Fprintf(w, "Amount:       ₹%.2f\n", status.Amount)
		fmt.Fprintf(w, "New balance:  ₹%.2f\n", status.NewBalance)
		if status.Message != "" {
			fmt.Fprintln(w, status.Message)
		}
	}

	if status.Status != "success" && status.Status != "approved" {
		return 1
	}
	return 0
}

// formatPaymentsHuman formats payments for human readability
func formatPaymentsHuman(payments []client.Payment) string {
	if len(payments) == 0 {
		return "No payments yet."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-26s %-10s %-10s %-9s %s\n", "ID", "AMOUNT", "METHOD", "STATUS", "WHEN")
	for _, p := range payments {
		fmt.Fprintf(&sb, "%-26s ₹%-9.2f %-10s %-9s %s\n", p.ID, p.Amount, p.Method, p.Status, p.CreatedAt)
	}
	return strings.TrimRight(sb.String(), "\n")
}
