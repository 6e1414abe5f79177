package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent audit events",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "maximum events to fetch")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	page, err := auditClient.FetchHistory(ctx, historyLimit)
	if err != nil {
		return err
	}

	if len(page.History) == 0 {
		fmt.Println("No audit events recorded.")
		return nil
	}

	fmt.Println(strings.Repeat("─", 90))
	fmt.Printf("%-12s %-40s %-14s %-7s %s\n", "ID", "NAME", "STATUS", "ISSUES", "WHEN")
	fmt.Println(strings.Repeat("─", 90))

	for _, event := range page.History {
		name := event.Name
		if len(name) > 38 {
			name = name[:35] + "..."
		}
		fmt.Printf("%-12s %-40s %-14s %-7d %s\n",
			event.ID, name, event.Status, event.Issues, event.Timestamp)
	}

	fmt.Printf("\n%d events shown, %d processed total (%.1f%% success rate)\n",
		len(page.History), page.TotalProcessed, page.SuccessRate)

	return nil
}
