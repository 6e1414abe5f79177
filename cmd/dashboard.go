package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/audittrack/audittrack/dashboard"
	"github.com/audittrack/audittrack/fetch"
)

var dashboardLimit int

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the full dashboard",
	Long:  `Fetch stats, documents, compliance analysis, and the review queue concurrently and render a combined summary.`,
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)

	dashboardCmd.Flags().IntVar(&dashboardLimit, "limit", 10, "documents to include in the summary")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	board := dashboard.New(auditClient, dashboardLimit, 0, logger)
	board.Mount(ctx)

	if state := board.Stats.State(); state.Phase == fetch.PhaseReady {
		stats := state.Value
		fmt.Printf("Processed %d documents · %.0f%% issues resolved · overall compliance %.0f\n\n",
			stats.DocumentsProcessed, stats.IssuesResolvedPercent, stats.ComplianceScores.Overall)
	} else {
		fmt.Printf("Stats unavailable: %v\n\n", state.Err)
	}

	if state := board.Compliance.State(); state.Phase == fetch.PhaseReady {
		analysis := state.Value
		fmt.Printf("Compliance: overall %.0f (IRS %.0f / USVI DOL %.0f / GASB %.0f)\n\n",
			analysis.OverallScore,
			analysis.Breakdown.IRSCompliance,
			analysis.Breakdown.USVIDolCompliance,
			analysis.Breakdown.GASBCompliance)
	} else {
		fmt.Printf("Compliance unavailable: %v\n\n", state.Err)
	}

	if state := board.Documents.State(); state.Phase == fetch.PhaseReady {
		fmt.Printf("Recent documents (%d of %d):\n", len(state.Value.Documents), state.Value.Total)
		printDocuments(state.Value.Documents)
		fmt.Println()
	} else {
		fmt.Printf("Documents unavailable: %v\n\n", state.Err)
	}

	if state := board.Queue.State(); state.Phase == fetch.PhaseReady {
		fmt.Printf("%d documents awaiting review\n", len(state.Value))
	} else {
		fmt.Printf("Review queue unavailable: %v\n", state.Err)
	}

	return nil
}
