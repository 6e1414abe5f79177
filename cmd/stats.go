package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics",
	Long:  `Fetch and display the aggregate dashboard counters and compliance sub-scores.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	stats, err := auditClient.FetchStats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Documents processed:  %d\n", stats.DocumentsProcessed)
	fmt.Printf("Issues resolved:      %.0f%%\n", stats.IssuesResolvedPercent)
	fmt.Printf("Avg processing time:  %.1fs\n", stats.AvgProcessingTime)
	fmt.Printf("Total savings:        $%.2f\n", stats.TotalSavings)
	fmt.Println()
	fmt.Println("Compliance scores:")
	fmt.Printf("  Overall:  %.0f\n", stats.ComplianceScores.Overall)
	fmt.Printf("  IRS:      %.0f\n", stats.ComplianceScores.IRS)
	fmt.Printf("  USVI DOL: %.0f\n", stats.ComplianceScores.USVIDol)
	fmt.Printf("  GASB:     %.0f\n", stats.ComplianceScores.GASB)

	return nil
}
