package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/audittrack/audittrack/audit"
)

func TestWriteDocumentsXLSX(t *testing.T) {
	docs := []audit.DocumentRecord{
		{ID: 1, Name: "Invoice_Q2_2025_001247.pdf", Size: "2.4 MB", Status: audit.StatusPassed, Issues: 0, Vendor: "Caribbean Supply Co.", UploadedAt: "2 hours ago", Amount: "$15,240.00"},
		{ID: 2, Name: "Payroll_July_2025.xlsx", Size: "156 KB", Status: audit.StatusFlagged, Issues: 3, Vendor: "HR Department", UploadedAt: "4 hours ago", Amount: "$89,750.00"},
	}

	path := filepath.Join(t.TempDir(), "documents.xlsx")
	require.NoError(t, WriteDocumentsXLSX(path, docs))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, documentHeaders, rows[0])
	assert.Equal(t, "Invoice_Q2_2025_001247.pdf", rows[1][1])
	assert.Equal(t, "Passed", rows[1][3])
	assert.Equal(t, "Flagged", rows[2][3])
	assert.Equal(t, "3", rows[2][4])
}

func TestWriteDocumentsXLSXEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteDocumentsXLSX(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 1, "header row only")
}
