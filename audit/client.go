package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// defaultAllowedExtensions mirrors the file types the audit service
// accepts for ingestion.
var defaultAllowedExtensions = map[string]bool{
	".pdf":  true,
	".csv":  true,
	".xlsx": true,
	".docx": true,
}

// Client represents an audit service API client
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	logger      zerolog.Logger
	allowedExts map[string]bool
	maxFileSize int64
}

// NewClient creates a new audit service client
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: audit service URL is required", ErrInvalidConfig)
	}
	baseURL = strings.TrimRight(baseURL, "/")

	client := &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		logger:      logger,
		allowedExts: defaultAllowedExtensions,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// doRequest performs a single HTTP exchange with the audit service.
// JSON bodies are marshaled with a Content-Type header; a nil body
// sends no payload. One attempt per call, no retries.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values, body any) ([]byte, error) {
	requestURL := c.baseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Msg("Making audit service request")

	return c.send(req)
}

// send executes a prepared request and classifies the response.
func (c *Client) send(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{StatusCode: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: 0, Message: fmt.Sprintf("failed to read response body: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Message:    extractErrorMessage(data),
		}
	}

	return data, nil
}

// extractErrorMessage pulls a human-readable message out of an error
// body. The service wraps errors as {"detail": ...} but plain text and
// other shapes show up from proxies.
func extractErrorMessage(body []byte) string {
	var wrapper struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil {
		switch {
		case wrapper.Detail != "":
			return wrapper.Detail
		case wrapper.Message != "":
			return wrapper.Message
		case wrapper.Error != "":
			return wrapper.Error
		}
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return "request failed"
}

// decode unmarshals a response body, wrapping failures as DecodeError.
func decode(endpoint string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// HealthCheck verifies the service and its dependencies are reachable
func (c *Client) HealthCheck(ctx context.Context) (*HealthStatus, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/api/health", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthStatus
	if err := decode("/api/health", data, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// FetchStats retrieves the dashboard aggregate counters
func (c *Client) FetchStats(ctx context.Context) (*StatsSnapshot, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/api/stats", nil, nil)
	if err != nil {
		return nil, err
	}

	var stats StatsSnapshot
	if err := decode("/api/stats", data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// FetchDocuments retrieves one page of processed documents
func (c *Client) FetchDocuments(ctx context.Context, limit, offset int) (*DocumentPage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	data, err := c.doRequest(ctx, http.MethodGet, "/api/documents", params, nil)
	if err != nil {
		return nil, err
	}

	var page DocumentPage
	if err := decode("/api/documents", data, &page); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("count", len(page.Documents)).
		Int("total", page.Total).
		Msg("Retrieved documents from audit service")

	return &page, nil
}

// FetchCompliance retrieves the current compliance analysis
func (c *Client) FetchCompliance(ctx context.Context) (*ComplianceAnalysis, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/api/compliance", nil, nil)
	if err != nil {
		return nil, err
	}

	var analysis ComplianceAnalysis
	if err := decode("/api/compliance", data, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// FetchReviewQueue retrieves the documents awaiting human review
func (c *Client) FetchReviewQueue(ctx context.Context) ([]DocumentRecord, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/api/review/queue", nil, nil)
	if err != nil {
		return nil, err
	}

	var queue []DocumentRecord
	if err := decode("/api/review/queue", data, &queue); err != nil {
		return nil, err
	}
	return queue, nil
}

// FetchHistory retrieves recent audit events
func (c *Client) FetchHistory(ctx context.Context, limit int) (*HistoryPage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	data, err := c.doRequest(ctx, http.MethodGet, "/api/history", params, nil)
	if err != nil {
		return nil, err
	}

	var page HistoryPage
	if err := decode("/api/history", data, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FetchAuditResult retrieves a stored audit report by ID
func (c *Client) FetchAuditResult(ctx context.Context, auditID string) (*AuditResult, error) {
	if auditID == "" {
		return nil, &ValidationError{Field: "audit id", Message: "must not be empty"}
	}

	data, err := c.doRequest(ctx, http.MethodGet, "/api/audit/"+url.PathEscape(auditID), nil, nil)
	if err != nil {
		return nil, err
	}

	var result AuditResult
	if err := decode("/api/audit", data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchKnowledgeBaseStatus retrieves rule knowledge-base ingestion state
func (c *Client) FetchKnowledgeBaseStatus(ctx context.Context) (*KnowledgeBaseStatus, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/api/knowledge-base/status", nil, nil)
	if err != nil {
		return nil, err
	}

	var status KnowledgeBaseStatus
	if err := decode("/api/knowledge-base/status", data, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Approve marks a review-queue document as approved
func (c *Client) Approve(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("/api/review/approve/%d", id)
	data, err := c.doRequest(ctx, http.MethodPost, endpoint, nil, nil)
	if err != nil {
		return err
	}

	var resp actionResponse
	if err := decode(endpoint, data, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &TransportError{StatusCode: http.StatusOK, Message: "approve rejected by audit service"}
	}

	c.logger.Debug().Int64("id", id).Msg("Document approved")
	return nil
}

// Flag marks a review-queue document as flagged. The reason is
// mandatory and validated locally before any network call.
func (c *Client) Flag(ctx context.Context, id int64, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return &ValidationError{Field: "flag reason", Message: "must not be empty"}
	}

	endpoint := fmt.Sprintf("/api/review/flag/%d", id)
	body := map[string]string{"reason": reason}
	data, err := c.doRequest(ctx, http.MethodPost, endpoint, nil, body)
	if err != nil {
		return err
	}

	var resp actionResponse
	if err := decode(endpoint, data, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &TransportError{StatusCode: http.StatusOK, Message: "flag rejected by audit service"}
	}

	c.logger.Debug().Int64("id", id).Str("reason", reason).Msg("Document flagged")
	return nil
}
