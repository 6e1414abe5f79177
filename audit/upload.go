package audit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// validateFile applies the local pre-flight checks the service would
// otherwise reject server-side: extension allow-list and optional size
// cap. Failures never reach the network.
func (c *Client) validateFile(file File) error {
	ext := strings.ToLower(filepath.Ext(file.Name))
	if !c.allowedExts[ext] {
		return &ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("unsupported file type %q for %s", ext, file.Name),
		}
	}
	if c.maxFileSize > 0 && file.Size > c.maxFileSize {
		return &ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("%s exceeds maximum size of %d bytes", file.Name, c.maxFileSize),
		}
	}
	return nil
}

// buildMultipart assembles a multipart body with one part per file
// under the given field name. The boundary comes from the form writer.
func buildMultipart(field string, files []File) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, file := range files {
		part, err := writer.CreateFormFile(field, file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form part for %s: %w", file.Name, err)
		}
		if _, err := io.Copy(part, file.Data); err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", file.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}

// doUpload posts a multipart body and returns the raw response.
func (c *Client) doUpload(ctx context.Context, endpoint, field string, files []File) ([]byte, error) {
	body, contentType, err := buildMultipart(field, files)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("files", len(files)).
		Msg("Uploading to audit service")

	return c.send(req)
}

// UploadOne submits a single file for processing. The flat single-file
// response is normalized into the same UploadOutcome shape the bulk
// endpoint returns.
func (c *Client) UploadOne(ctx context.Context, file File) (UploadOutcome, error) {
	if err := c.validateFile(file); err != nil {
		return UploadOutcome{}, err
	}

	data, err := c.doUpload(ctx, "/api/upload", "file", []File{file})
	if err != nil {
		return UploadOutcome{}, err
	}

	var resp uploadResponse
	if err := decode("/api/upload", data, &resp); err != nil {
		return UploadOutcome{}, err
	}

	outcome := UploadOutcome{
		Filename: file.Name,
		Success:  resp.Success,
		AuditID:  resp.AuditID,
	}
	if !resp.Success {
		outcome.Error = resp.Message
	}
	return outcome, nil
}

// UploadMany submits multiple files in one bulk request. The result
// set always has one outcome per submitted file: server results are
// matched by filename, with positional matching as a fallback, and
// files the server failed to report on are marked failed.
func (c *Client) UploadMany(ctx context.Context, files []File) ([]UploadOutcome, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	for _, file := range files {
		if err := c.validateFile(file); err != nil {
			return nil, err
		}
	}

	data, err := c.doUpload(ctx, "/api/bulk-process", "files", files)
	if err != nil {
		return nil, err
	}

	var resp bulkResponse
	if err := decode("/api/bulk-process", data, &resp); err != nil {
		return nil, err
	}

	return normalizeOutcomes(files, resp.Results), nil
}

// normalizeOutcomes aligns server results with the submitted file set.
func normalizeOutcomes(files []File, results []UploadOutcome) []UploadOutcome {
	byName := make(map[string]UploadOutcome, len(results))
	for _, result := range results {
		if result.Filename != "" {
			byName[result.Filename] = result
		}
	}

	outcomes := make([]UploadOutcome, 0, len(files))
	for i, file := range files {
		if result, ok := byName[file.Name]; ok {
			outcomes = append(outcomes, result)
			continue
		}
		if i < len(results) && results[i].Filename == "" {
			result := results[i]
			result.Filename = file.Name
			outcomes = append(outcomes, result)
			continue
		}
		outcomes = append(outcomes, UploadOutcome{
			Filename: file.Name,
			Success:  false,
			Error:    "no result reported by audit service",
		})
	}
	return outcomes
}
