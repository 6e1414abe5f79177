package audit

import (
	"context"
)

// API defines the remote operations of the audit service. Consumers
// accept this interface so tests can substitute a stub for the real
// client.
type API interface {
	// HealthCheck verifies the service and its dependencies are reachable
	HealthCheck(ctx context.Context) (*HealthStatus, error)

	// FetchStats retrieves the dashboard aggregate counters
	FetchStats(ctx context.Context) (*StatsSnapshot, error)

	// FetchDocuments retrieves one page of processed documents
	FetchDocuments(ctx context.Context, limit, offset int) (*DocumentPage, error)

	// FetchCompliance retrieves the current compliance analysis
	FetchCompliance(ctx context.Context) (*ComplianceAnalysis, error)

	// FetchReviewQueue retrieves the documents awaiting human review
	FetchReviewQueue(ctx context.Context) ([]DocumentRecord, error)

	// FetchHistory retrieves recent audit events
	FetchHistory(ctx context.Context, limit int) (*HistoryPage, error)

	// FetchAuditResult retrieves a stored audit report by ID
	FetchAuditResult(ctx context.Context, auditID string) (*AuditResult, error)

	// FetchKnowledgeBaseStatus retrieves rule knowledge-base ingestion state
	FetchKnowledgeBaseStatus(ctx context.Context) (*KnowledgeBaseStatus, error)

	// UploadOne submits a single file for processing
	UploadOne(ctx context.Context, file File) (UploadOutcome, error)

	// UploadMany submits multiple files in one bulk request
	UploadMany(ctx context.Context, files []File) ([]UploadOutcome, error)

	// Approve marks a review-queue document as approved
	Approve(ctx context.Context, id int64) error

	// Flag marks a review-queue document as flagged with a reason
	Flag(ctx context.Context, id int64, reason string) error
}
