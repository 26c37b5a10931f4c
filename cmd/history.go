// ABOUTME: History command listing and deleting past searches
// ABOUTME: Deletion is immediate and permanent

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

var historyDelete string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past searches",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHistory(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyDelete, "delete", "", "Delete the history entry with this ID")
	rootCmd.AddCommand(historyCmd)
}

// runHistory lists or deletes history entries, returning an exit code
func runHistory(ctx context.Context, w io.Writer) int {
	sess := userSession()
	if !sess.LoggedIn() {
		fmt.Fprintln(w, "Not logged in. Run: gobiz login <email>")
		return 2
	}
	c := newClient(sess)

	if historyDelete != "" {
		if err := c.DeleteSearchEntry(ctx, historyDelete); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		fmt.Fprintln(w, "Entry deleted.")
		return 0
	}

	entries, err := c.SearchHistory(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(entries, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatHistoryHuman(entries))
	}
	return 0
}

// formatHistoryHuman formats history entries for human readability
func formatHistoryHuman(entries []client.HistoryEntry) string {
	if len(entries) == 0 {
		return "No searches yet."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-26s %-12s %-10s %-9s %s\n", "ID", "NUMBER", "CHARGED", "RESULT", "WHEN")
	for _, e := range entries {
		outcome := "found"
		if !e.Found {
			outcome = "no record"
		}
		fmt.Fprintf(&sb, "%-26s %-12s ₹%-9.2f %-9s %s\n", e.ID, e.Mobile, e.Charged, outcome, e.CreatedAt)
	}
	return strings.TrimRight(sb.String(), "\n")
}
