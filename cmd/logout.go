// ABOUTME: Logout command clearing the stored session
// ABOUTME: Leaves the base-URL override in place for the next login

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session token and profile",
	Run: func(cmd *cobra.Command, args []string) {
		sess := userSession()
		if err := sess.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		fmt.Println("Logged out.")
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
