package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check audit service health",
	RunE:  runHealth,
}

// kbStatusCmd represents the kb-status command
var kbStatusCmd = &cobra.Command{
	Use:   "kb-status",
	Short: "Show rule knowledge-base ingestion status",
	RunE:  runKBStatus,
}

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(kbStatusCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	health, err := auditClient.HealthCheck(ctx)
	if err != nil {
		return err
	}

	if health.IsHealthy() {
		fmt.Println("✓ Audit service is healthy")
	} else {
		fmt.Printf("✗ Audit service status: %s\n", health.Status)
	}

	for name, state := range health.Services {
		fmt.Printf("  %s: %s\n", name, state)
	}

	return nil
}

func runKBStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	status, err := auditClient.FetchKnowledgeBaseStatus(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Documents processed: %d (pending %d)\n", status.DocumentsProcessed, status.DocumentsPending)
	fmt.Printf("Processing progress: %.0f%%\n", status.ProcessingProgress)
	fmt.Printf("Extraction progress: %.0f%%\n", status.ExtractionProgress)

	if len(status.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, source := range status.Sources {
			fmt.Printf("  %-24s %4d documents  [%s]\n", source.Name, source.Count, source.Status)
		}
	}

	return nil
}
