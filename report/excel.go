// Package report renders audit data into exportable files.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/audittrack/audittrack/audit"
)

var documentHeaders = []string{"ID", "Name", "Size", "Status", "Issues", "Vendor", "Uploaded", "Amount"}

// WriteDocumentsXLSX writes a document listing to an xlsx workbook at
// the given path.
func WriteDocumentsXLSX(path string, docs []audit.DocumentRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)

	for col, header := range documentHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, doc := range docs {
		values := []any{
			doc.ID,
			doc.Name,
			doc.Size,
			doc.Status.String(),
			doc.Issues,
			doc.Vendor,
			doc.UploadedAt,
			doc.Amount,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row+1, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
