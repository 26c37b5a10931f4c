// ABOUTME: Stats command checking backend reachability and public counters
// ABOUTME: Works without a session; useful for monitoring

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

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Check backend reachability and show public counters",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runStats(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// runStats fetches the public counters and returns an exit code
func runStats(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	c := client.New(url)

	resp, err := c.Stats(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatStatsJSON(url, resp))
	} else {
		fmt.Fprintln(w, formatStatsHuman(url, resp))
	}
	return 0
}

// formatStatsHuman formats the counters for human readability
func formatStatsHuman(url string, resp *client.PublicStats) string {
	return fmt.Sprintf(`Backend:         %s
Total searches:  %d
Total users:     %d`, url, resp.TotalSearches, resp.TotalUsers)
}

// formatStatsJSON formats the counters as JSON
func formatStatsJSON(url string, resp *client.PublicStats) string {
	output := map[string]interface{}{
		"backend":        url,
		"total_searches": resp.TotalSearches,
		"total_users":    resp.TotalUsers,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
