// ABOUTME: Entry point for the gobiz CLI
// ABOUTME: Terminal client and scripting tool for the Go-Biz lookup service

package main

import (
	"fmt"
	"os"

	"github.com/gobiz/gobiz-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
