// ABOUTME: Search command performing a billed number lookup
// ABOUTME: Exit codes: 0 record found, 1 no record, 2 error

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

var searchFields []string

var searchCmd = &cobra.Command{
	Use:   "search <mobile-number>",
	Short: "Look up a mobile number (billed against your wallet)",
	Long: `Look up a 10-digit mobile number. Every search is billed, including
lookups that return no record (baseline fee only).

Exit codes: 0 record found, 1 no record, 2 error.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSearch(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	searchCmd.Flags().StringSliceVar(&searchFields, "fields", nil,
		"Fields to request (default all): "+strings.Join(client.KnownFields, ","))
	rootCmd.AddCommand(searchCmd)
}

// runSearch executes the lookup and returns an exit code
func runSearch(ctx context.Context, w io.Writer, number string) int {
	sess := userSession()
	if !sess.LoggedIn() {
		fmt.Fprintln(w, "Not logged in. Run: gobiz login <email>")
		return 2
	}

	fields := searchFields
	if len(fields) == 0 {
		fields = client.KnownFields
	}
	for _, f := range fields {
		if !knownField(f) {
			fmt.Fprintf(w, "Error: unknown field %q\n", f)
			return 2
		}
	}

	c := newClient(sess)
	result, err := c.Search(ctx, number, fields)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatSearchHuman(result))
	}

	if !result.Found {
		return 1
	}
	return 0
}

func knownField(name string) bool {
	for _, f := range client.KnownFields {
		if f == name {
			return true
		}
	}
	return false
}

// formatSearchHuman formats the lookup result for human readability
func formatSearchHuman(result *client.SearchResult) string {
	var sb strings.Builder

	if !result.Found {
		sb.WriteString("No record found.\n")
	} else {
		for _, name := range client.KnownFields {
			if value, ok := result.Record[name]; ok {
				fmt.Fprintf(&sb, "%-14s %s\n", name+":", value)
			}
		}
	}

	fmt.Fprintf(&sb, "\nCharged:      ₹%.2f (base ₹%.2f + fields ₹%.2f)\n",
		result.Billing.Charged, result.Billing.BaseFee, result.Billing.FieldCharges)
	fmt.Fprintf(&sb, "New balance:  ₹%.2f", result.Billing.NewBalance)
	return sb.String()
}
