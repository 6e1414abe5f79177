package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{
			name:    "valid config",
			baseURL: "http://localhost:8000",
			wantErr: false,
		},
		{
			name:    "trailing slash trimmed",
			baseURL: "http://localhost:8000/",
			wantErr: false,
		},
		{
			name:    "missing URL",
			baseURL: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, "", logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "http://localhost:8000", client.baseURL)
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("http://localhost:8000", "", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("http://localhost:8000", "", logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("with allowed extensions", func(t *testing.T) {
		client, err := NewClient("http://localhost:8000", "", logger, WithAllowedExtensions([]string{".txt"}))
		require.NoError(t, err)
		assert.True(t, client.allowedExts[".txt"])
		assert.False(t, client.allowedExts[".pdf"])
	})
}

func TestFetchStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stats", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)

		json.NewEncoder(w).Encode(map[string]any{
			"documents_processed":     1247,
			"issues_resolved_percent": 89,
			"avg_processing_time":     2.3,
			"total_savings":           89200,
			"compliance_scores": map[string]any{
				"irs": 94, "usvi_dol": 82, "gasb": 88, "overall": 87,
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "", zerolog.Nop())
	require.NoError(t, err)

	stats, err := client.FetchStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1247, stats.DocumentsProcessed)
	assert.InDelta(t, 2.3, stats.AvgProcessingTime, 0.001)
	assert.InDelta(t, 87, stats.ComplianceScores.Overall, 0.001)
}

func TestFetchDocuments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/documents", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "50", r.URL.Query().Get("offset"))

		json.NewEncoder(w).Encode(map[string]any{
			"documents": []map[string]any{
				{
					"id": 1, "name": "Invoice_Q2_2025_001247.pdf", "size": "2.4 MB",
					"status": "Passed", "issues": 0, "vendor": "Caribbean Supply Co.",
					"uploadedAt": "2 hours ago", "amount": "$15,240.00",
				},
				{
					"id": 2, "name": "Payroll_July_2025.xlsx", "size": "156 KB",
					"status": "Flagged", "issues": 3, "vendor": "HR Department",
					"uploadedAt": "4 hours ago", "amount": "$89,750.00",
				},
			},
			"total": 2, "page": 3, "pages": 4,
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "", zerolog.Nop())
	require.NoError(t, err)

	page, err := client.FetchDocuments(context.Background(), 25, 50)
	require.NoError(t, err)
	require.Len(t, page.Documents, 2)
	assert.Equal(t, StatusPassed, page.Documents[0].Status)
	assert.Equal(t, StatusFlagged, page.Documents[1].Status)
	assert.Equal(t, 3, page.Documents[1].Issues)
	assert.Equal(t, 2, page.Total)

	for _, doc := range page.Documents {
		assert.NoError(t, doc.Validate())
	}
}

func TestFetchCompliance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/compliance", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"overall_score": 87,
			"breakdown": map[string]any{
				"irs_compliance": 94, "usvi_dol_compliance": 82, "gasb_compliance": 88,
			},
			"recent_issues": []map[string]any{
				{"type": "Date Format", "count": 12, "severity": "low"},
			},
			"recommendations": []map[string]any{
				{"action": "Standardize date formats", "impact": "high"},
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "", zerolog.Nop())
	require.NoError(t, err)

	analysis, err := client.FetchCompliance(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 87, analysis.OverallScore, 0.001)
	assert.InDelta(t, 94, analysis.Breakdown.IRSCompliance, 0.001)
	require.Len(t, analysis.RecentIssues, 1)
	assert.Equal(t, 12, analysis.RecentIssues[0].Count)
	require.Len(t, analysis.Recommendations, 1)
	assert.Equal(t, "high", analysis.Recommendations[0].Impact)
}

func TestFetchReviewQueue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/review/queue", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 7, "name": "Contract_2025.pdf", "status": "Manual Review", "issues": 1},
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "", zerolog.Nop())
	require.NoError(t, err)

	queue, err := client.FetchReviewQueue(context.Background())
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, int64(7), queue[0].ID)
	assert.Equal(t, StatusManualReview, queue[0].Status)
}

func TestTransportErrors(t *testing.T) {
	t.Run("non-2xx with detail body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Unsupported file type"})
		}))
		defer server.Close()

		client, err := NewClient(server.URL, "", zerolog.Nop())
		require.NoError(t, err)

		_, err = client.FetchStats(context.Background())
		require.Error(t, err)

		var terr *TransportError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, http.StatusBadRequest, terr.StatusCode)
		assert.Equal(t, "Unsupported file type", terr.Message)
		assert.False(t, terr.IsNetwork())
	})

	t.Run("non-2xx with plain text body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gateway timeout", http.StatusBadGateway)
		}))
		defer server.Close()

		client, err := NewClient(server.URL, "", zerolog.Nop())
		require.NoError(t, err)

		_, err = client.FetchStats(context.Background())
		var terr *TransportError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, http.StatusBadGateway, terr.StatusCode)
		assert.Equal(t, "gateway timeout", terr.Message)
	})

	t.Run("network failure has status zero", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // refuse connections

		client, err := NewClient(server.URL, "", zerolog.Nop())
		require.NoError(t, err)

		_, err = client.FetchStats(context.Background())
		var terr *TransportError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, 0, terr.StatusCode)
		assert.True(t, terr.IsNetwork())
	})

	t.Run("invalid JSON yields decode error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}))
		defer server.Close()

		client, err := NewClient(server.URL, "", zerolog.Nop())
		require.NoError(t, err)

		_, err = client.FetchStats(context.Background())
		var derr *DecodeError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "/api/stats", derr.Endpoint)
	})
}

func TestApprove(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/review/approve/7", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "", zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, client.Approve(context.Background(), 7))
}

func TestFlag(t *testing.T) {
	t.Run("sends reason as JSON body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/review/flag/9", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "missing signature", body["reason"])

			json.NewEncoder(w).Encode(map[string]bool{"success": true})
		}))
		defer server.Close()

		client, err := NewClient(server.URL, "", zerolog.Nop())
		require.NoError(t, err)

		require.NoError(t, client.Flag(context.Background(), 9, "missing signature"))
	})

	t.Run("empty reason fails locally without a network call", func(t *testing.T) {
		var requests atomic.Int64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
		}))
		defer server.Close()

		client, err := NewClient(server.URL, "", zerolog.Nop())
		require.NoError(t, err)

		err = client.Flag(context.Background(), 9, "   ")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, int64(0), requests.Load())
	})
}

func TestAPIKeyHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-key", r.Header.Get("X-Api-Key"))
		json.NewEncoder(w).Encode(map[string]any{"status": "healthy"})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "secret-key", zerolog.Nop())
	require.NoError(t, err)

	health, err := client.HealthCheck(context.Background())
	require.NoError(t, err)
	assert.True(t, health.IsHealthy())
}

func TestFetchAuditResult(t *testing.T) {
	t.Run("fetches stored report", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/audit/audit_1", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{
				"filename": "invoice.pdf", "status": "completed",
				"timestamp": "2025-08-15T12:00:00Z",
				"report":    map[string]any{"fields": "ok"},
			})
		}))
		defer server.Close()

		client, err := NewClient(server.URL, "", zerolog.Nop())
		require.NoError(t, err)

		result, err := client.FetchAuditResult(context.Background(), "audit_1")
		require.NoError(t, err)
		assert.Equal(t, "invoice.pdf", result.Filename)
		assert.Equal(t, "completed", result.Status)
	})

	t.Run("empty id rejected locally", func(t *testing.T) {
		client, err := NewClient("http://localhost:8000", "", zerolog.Nop())
		require.NoError(t, err)

		_, err = client.FetchAuditResult(context.Background(), "")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestFetchHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/history", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string]any{
			"history": []map[string]any{
				{"id": "audit_1", "name": "invoice.pdf", "status": "Passed", "timestamp": "2 hours ago", "issues": 0},
			},
			"total_processed": 42,
			"success_rate":    94.2,
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "", zerolog.Nop())
	require.NoError(t, err)

	page, err := client.FetchHistory(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, page.History, 1)
	assert.Equal(t, StatusPassed, page.History[0].Status)
	assert.Equal(t, 42, page.TotalProcessed)
	assert.InDelta(t, 94.2, page.SuccessRate, 0.001)
}
