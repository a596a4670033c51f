package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ewerton255/sprintctl/internal/board"
	"github.com/ewerton255/sprintctl/internal/calendar"
	"github.com/ewerton255/sprintctl/internal/config"
	"github.com/ewerton255/sprintctl/internal/render"
	"github.com/ewerton255/sprintctl/internal/sprint"
)

var planCmd = &cobra.Command{
	Use:   "plan <config-dir>",
	Short: "Fetch work items and schedule the sprint",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, args []string) error {
	dir := args[0]
	printer := render.New()

	setup, roster, dayOffs, depEdges, err := loadDocuments(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	start, end, _, err := setup.ParsedWindow()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	cal, err := calendar.New(start, end)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	pat := os.Getenv(setup.UpstreamPATEnv)
	client := board.NewClient(setup.UpstreamBaseURL, pat)
	items, err := client.FetchItems(context.Background(), setup.SprintID, setup.TeamAreaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "upstream fetch failed: %v\n", err)
		return err
	}

	report := sprint.RunPipeline(sprint.PipelineInput{
		SprintID:   setup.SprintID,
		SprintName: setup.SprintName,
		Calendar:   cal,
		Roster:     roster,
		DayOffs:    dayOffs,
		DepEdges:   depEdges,
		RawItems:   items,
	})

	printer.Text(report)

	if err := os.MkdirAll(setup.OutputDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	outPath := filepath.Join(setup.OutputDir, setup.SprintID+".json")
	if err := render.WriteJSON(report, outPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

// loadDocuments loads all four configuration documents, stopping at the
// first fatal error (spec §7: a load failure aborts the pipeline before
// any fetch or scheduling is attempted).
func loadDocuments(dir string) (config.Setup, config.Roster, []config.DayOff, []config.DepEdge, error) {
	setup, err := config.LoadSetup(dir, nil)
	if err != nil {
		return config.Setup{}, nil, nil, nil, err
	}
	roster, err := config.LoadExecutors(dir)
	if err != nil {
		return config.Setup{}, nil, nil, nil, err
	}
	dayOffs, err := config.LoadDayOffs(dir)
	if err != nil {
		return config.Setup{}, nil, nil, nil, err
	}
	depEdges, err := config.LoadDependencies(dir)
	if err != nil {
		return config.Setup{}, nil, nil, nil, err
	}
	return setup, roster, dayOffs, depEdges, nil
}
