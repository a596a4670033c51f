package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ewerton255/sprintctl/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate <config-dir>",
	Short: "Validate the four configuration documents without scheduling",
	Args:  cobra.ExactArgs(1),
	Run:   runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) {
	dir := args[0]
	ok := true

	if _, err := config.LoadSetup(dir, nil); err != nil {
		fmt.Fprintf(os.Stderr, "✗ setup: %v\n", err)
		ok = false
	} else {
		fmt.Fprintln(os.Stderr, "✓ setup")
	}

	if _, err := config.LoadExecutors(dir); err != nil {
		fmt.Fprintf(os.Stderr, "✗ executors: %v\n", err)
		ok = false
	} else {
		fmt.Fprintln(os.Stderr, "✓ executors")
	}

	if _, err := config.LoadDayOffs(dir); err != nil {
		fmt.Fprintf(os.Stderr, "✗ dayoffs: %v\n", err)
		ok = false
	} else {
		fmt.Fprintln(os.Stderr, "✓ dayoffs")
	}

	if _, err := config.LoadDependencies(dir); err != nil {
		fmt.Fprintf(os.Stderr, "✗ dependencies: %v\n", err)
		ok = false
	} else {
		fmt.Fprintln(os.Stderr, "✓ dependencies")
	}

	if !ok {
		os.Exit(1)
	}
}
