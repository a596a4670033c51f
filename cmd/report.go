package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ewerton255/sprintctl/internal/render"
	"github.com/ewerton255/sprintctl/internal/sprint"
)

var reportCmd = &cobra.Command{
	Use:   "report <report.json>",
	Short: "Re-render a previously saved report without re-scheduling",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	var r sprint.Report
	if err := json.Unmarshal(data, &r); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	render.New().Text(r)
	return nil
}
