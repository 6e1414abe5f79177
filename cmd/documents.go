package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/audittrack/audittrack/audit"
	"github.com/audittrack/audittrack/filter"
	"github.com/audittrack/audittrack/report"
)

var (
	docLimit  int
	docOffset int
	docFilter string
	docExport string
)

// documentsCmd represents the documents command
var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List processed documents",
	Long: `List documents processed by the audit service with their verdicts.

Results can be narrowed client-side with a filter expression, e.g.:
  audittrack documents --filter 'Status == "Flagged" && Issues > 2'
  audittrack documents --filter 'contains(Vendor, "caribbean")'`,
	RunE: runDocuments,
}

func init() {
	rootCmd.AddCommand(documentsCmd)

	documentsCmd.Flags().IntVar(&docLimit, "limit", 50, "maximum documents to fetch")
	documentsCmd.Flags().IntVar(&docOffset, "offset", 0, "listing offset")
	documentsCmd.Flags().StringVarP(&docFilter, "filter", "f", "", "filter expression")
	documentsCmd.Flags().StringVar(&docExport, "export", "", "write the listing to an xlsx file")
}

func runDocuments(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	page, err := auditClient.FetchDocuments(ctx, docLimit, docOffset)
	if err != nil {
		return err
	}

	docs := page.Documents
	if docFilter != "" {
		compiled, err := filter.Compile(docFilter)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		docs, err = filter.Apply(docs, compiled)
		if err != nil {
			return err
		}
	}

	if len(docs) == 0 {
		fmt.Println("No documents found.")
		return nil
	}

	printDocuments(docs)
	fmt.Printf("\n%d of %d documents (page %d/%d)\n", len(docs), page.Total, page.Page, page.Pages)

	if docExport != "" {
		if err := report.WriteDocumentsXLSX(docExport, docs); err != nil {
			return err
		}
		logger.Info().Str("path", docExport).Int("documents", len(docs)).Msg("Listing exported")
	}

	return nil
}

func printDocuments(docs []audit.DocumentRecord) {
	fmt.Println(strings.Repeat("─", 100))
	fmt.Printf("%-6s %-36s %-14s %-7s %-22s %s\n", "ID", "NAME", "STATUS", "ISSUES", "VENDOR", "AMOUNT")
	fmt.Println(strings.Repeat("─", 100))

	for _, doc := range docs {
		name := doc.Name
		if len(name) > 34 {
			name = name[:31] + "..."
		}
		fmt.Printf("%-6d %-36s %-14s %-7d %-22s %s\n",
			doc.ID, name, doc.Status, doc.Issues, doc.Vendor, doc.Amount)
	}
}
