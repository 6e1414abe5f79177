package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/audittrack/audittrack/audit"
	"github.com/audittrack/audittrack/upload"
)

var showAuditResult bool

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload <file> [file...]",
	Short: "Upload documents for auditing",
	Long: `Upload one or more documents to the audit service for scoring.

A single file goes through the single-document endpoint; two or more are
sent as one bulk request. Each file gets its own outcome either way.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().BoolVar(&showAuditResult, "show-result", false, "fetch and display the audit report for successful uploads")
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	files, closers, err := stageFiles(args)
	defer func() {
		for _, closer := range closers {
			closer.Close()
		}
	}()
	if err != nil {
		return err
	}

	controller := upload.NewController(auditClient, logger)
	controller.OnComplete(func(ctx context.Context, outcomes []audit.UploadOutcome) {
		logger.Debug().Int("outcomes", len(outcomes)).Msg("Upload completed, listing is stale")
	})

	// Render the progress estimate while the request is outstanding
	progressDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-progressDone:
				return
			case <-ticker.C:
				fmt.Printf("\rUploading... %3d%%", controller.Progress())
			}
		}
	}()

	outcomes, err := controller.Submit(ctx, files)
	close(progressDone)
	fmt.Printf("\rUploading... 100%%\n\n")
	if err != nil {
		return err
	}

	var failed int
	for _, outcome := range outcomes {
		if outcome.Success {
			fmt.Printf("✓ %s (audit %s)\n", outcome.Filename, outcome.AuditID)
			if showAuditResult {
				printAuditResult(ctx, outcome.AuditID)
			}
		} else {
			failed++
			fmt.Printf("✗ %s: %s\n", outcome.Filename, outcome.Error)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(outcomes))
	}
	return nil
}

// stageFiles opens the given paths as upload files. Returned closers
// must be closed by the caller even on error.
func stageFiles(paths []string) ([]audit.File, []*os.File, error) {
	var files []audit.File
	var closers []*os.File

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, closers, fmt.Errorf("failed to open %s: %w", path, err)
		}
		closers = append(closers, f)

		info, err := f.Stat()
		if err != nil {
			return nil, closers, fmt.Errorf("failed to stat %s: %w", path, err)
		}

		files = append(files, audit.File{
			Name: info.Name(),
			Data: f,
			Size: info.Size(),
		})
	}

	return files, closers, nil
}

func printAuditResult(ctx context.Context, auditID string) {
	result, err := auditClient.FetchAuditResult(ctx, auditID)
	if err != nil {
		logger.Warn().Err(err).Str("audit_id", auditID).Msg("Failed to fetch audit result")
		return
	}
	fmt.Printf("  %s: %s (%s)\n", result.Filename, result.Status, result.Timestamp)
}
