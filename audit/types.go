package audit

import (
	"encoding/json"
	"fmt"
	"io"
)

// DocumentStatus represents the audit verdict for a document
type DocumentStatus int

const (
	// StatusUnknown represents an unrecognized verdict
	StatusUnknown DocumentStatus = iota
	// StatusPassed indicates the document cleared every rule set
	StatusPassed
	// StatusFlagged indicates the audit raised one or more issues
	StatusFlagged
	// StatusManualReview indicates the document awaits human review
	StatusManualReview
)

// String returns the wire representation of a DocumentStatus
func (s DocumentStatus) String() string {
	switch s {
	case StatusPassed:
		return "Passed"
	case StatusFlagged:
		return "Flagged"
	case StatusManualReview:
		return "Manual Review"
	default:
		return "Unknown"
	}
}

// ParseDocumentStatus maps a wire string to a DocumentStatus
func ParseDocumentStatus(s string) DocumentStatus {
	switch s {
	case "Passed":
		return StatusPassed
	case "Flagged":
		return StatusFlagged
	case "Manual Review":
		return StatusManualReview
	default:
		return StatusUnknown
	}
}

// MarshalJSON implements json.Marshaler
func (s DocumentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (s *DocumentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = ParseDocumentStatus(str)
	return nil
}

// DocumentRecord represents a processed document as reported by the
// audit service. All fields are server-assigned; the client never
// mutates them directly.
type DocumentRecord struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	Size       string         `json:"size"`
	Status     DocumentStatus `json:"status"`
	Issues     int            `json:"issues"`
	Vendor     string         `json:"vendor"`
	UploadedAt string         `json:"uploadedAt"`
	Amount     string         `json:"amount"`
}

// Validate checks the status/issue-count invariants the service
// guarantees for every record.
func (d *DocumentRecord) Validate() error {
	if d.Issues < 0 {
		return fmt.Errorf("document %d: negative issue count %d", d.ID, d.Issues)
	}
	if d.Status == StatusPassed && d.Issues != 0 {
		return fmt.Errorf("document %d: passed with %d issues", d.ID, d.Issues)
	}
	if d.Status == StatusFlagged && d.Issues < 1 {
		return fmt.Errorf("document %d: flagged without issues", d.ID)
	}
	return nil
}

// DocumentPage is one page of the document listing
type DocumentPage struct {
	Documents []DocumentRecord `json:"documents"`
	Total     int              `json:"total"`
	Page      int              `json:"page"`
	Pages     int              `json:"pages"`
}

// ComplianceScores holds the per-rule-set sub-scores embedded in the
// dashboard stats payload
type ComplianceScores struct {
	IRS     float64 `json:"irs"`
	USVIDol float64 `json:"usvi_dol"`
	GASB    float64 `json:"gasb"`
	Overall float64 `json:"overall"`
}

// StatsSnapshot is an immutable dashboard aggregate, replaced wholesale
// on each fetch
type StatsSnapshot struct {
	DocumentsProcessed    int              `json:"documents_processed"`
	IssuesResolvedPercent float64          `json:"issues_resolved_percent"`
	AvgProcessingTime     float64          `json:"avg_processing_time"`
	TotalSavings          float64          `json:"total_savings"`
	ComplianceScores      ComplianceScores `json:"compliance_scores"`
}

// ComplianceBreakdown holds per-jurisdiction sub-scores
type ComplianceBreakdown struct {
	IRSCompliance     float64 `json:"irs_compliance"`
	USVIDolCompliance float64 `json:"usvi_dol_compliance"`
	GASBCompliance    float64 `json:"gasb_compliance"`
}

// ComplianceIssue is a recent issue category with occurrence count
type ComplianceIssue struct {
	Type     string `json:"type"`
	Count    int    `json:"count"`
	Severity string `json:"severity"`
}

// Recommendation is a server-ranked remediation action
type Recommendation struct {
	Action string `json:"action"`
	Impact string `json:"impact"`
}

// ComplianceAnalysis is the full compliance report. OverallScore is
// computed server-side from the breakdown; the client trusts it
// verbatim and never recomputes it.
type ComplianceAnalysis struct {
	OverallScore    float64             `json:"overall_score"`
	Breakdown       ComplianceBreakdown `json:"breakdown"`
	RecentIssues    []ComplianceIssue   `json:"recent_issues"`
	Recommendations []Recommendation    `json:"recommendations"`
}

// UploadOutcome is the per-file result of a submission. Exactly one
// outcome exists per submitted file.
type UploadOutcome struct {
	Filename string `json:"filename"`
	Success  bool   `json:"success"`
	AuditID  string `json:"audit_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// File is one local file staged for upload
type File struct {
	Name string
	Data io.Reader
	Size int64
}

// AuditEvent is one entry in the processing history
type AuditEvent struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Status    DocumentStatus `json:"status"`
	Timestamp string         `json:"timestamp"`
	Issues    int            `json:"issues"`
}

// HistoryPage is the audit history response
type HistoryPage struct {
	History        []AuditEvent `json:"history"`
	TotalProcessed int          `json:"total_processed"`
	SuccessRate    float64      `json:"success_rate"`
}

// HealthStatus reports service liveness and per-dependency state
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// IsHealthy reports whether the service considers itself operational
func (h *HealthStatus) IsHealthy() bool {
	return h.Status == "healthy"
}

// AuditResult is a stored per-document audit report
type AuditResult struct {
	Filename  string         `json:"filename"`
	Report    map[string]any `json:"report"`
	Timestamp string         `json:"timestamp"`
	Status    string         `json:"status"`
}

// KnowledgeSource is one regulatory source tracked by the knowledge base
type KnowledgeSource struct {
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Status string `json:"status"`
}

// KnowledgeBaseStatus reports ingestion progress of the rule knowledge base
type KnowledgeBaseStatus struct {
	DocumentsProcessed int               `json:"documents_processed"`
	DocumentsPending   int               `json:"documents_pending"`
	ProcessingProgress float64           `json:"processing_progress"`
	ExtractionProgress float64           `json:"extraction_progress"`
	Sources            []KnowledgeSource `json:"sources"`
}

// uploadResponse is the wire shape of the single-file upload endpoint
type uploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	AuditID string `json:"audit_id"`
}

// bulkResponse is the wire shape of the bulk-process endpoint
type bulkResponse struct {
	Processed  int             `json:"processed"`
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
	Results    []UploadOutcome `json:"results"`
}

// actionResponse is the wire shape of the review approve/flag endpoints
type actionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
