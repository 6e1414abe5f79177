package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// complianceCmd represents the compliance command
var complianceCmd = &cobra.Command{
	Use:   "compliance",
	Short: "Show the compliance analysis",
	Long:  `Fetch and display the server-computed compliance score, per-jurisdiction breakdown, recent issues, and recommended actions.`,
	RunE:  runCompliance,
}

func init() {
	rootCmd.AddCommand(complianceCmd)
}

func runCompliance(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	analysis, err := auditClient.FetchCompliance(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Overall compliance score: %.0f/100\n\n", analysis.OverallScore)
	fmt.Println("Breakdown:")
	fmt.Printf("  IRS:      %.0f\n", analysis.Breakdown.IRSCompliance)
	fmt.Printf("  USVI DOL: %.0f\n", analysis.Breakdown.USVIDolCompliance)
	fmt.Printf("  GASB:     %.0f\n", analysis.Breakdown.GASBCompliance)

	if len(analysis.RecentIssues) > 0 {
		fmt.Println("\nRecent issues:")
		for _, issue := range analysis.RecentIssues {
			fmt.Printf("  • %s ×%d [%s]\n", issue.Type, issue.Count, issue.Severity)
		}
	}

	if len(analysis.Recommendations) > 0 {
		fmt.Println("\nRecommended actions:")
		for _, rec := range analysis.Recommendations {
			fmt.Printf("  • %s (impact: %s)\n", rec.Action, rec.Impact)
		}
	}

	return nil
}
