// Package dashboard wires the per-resource containers that back the
// audit dashboard and refreshes them concurrently.
package dashboard

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/audittrack/audittrack/audit"
	"github.com/audittrack/audittrack/fetch"
)

// refreshConcurrency bounds how many container fetches run at once
const refreshConcurrency = 4

// Dashboard owns one container per dashboard resource. Containers are
// independent: a failure in one leaves the others' state untouched.
type Dashboard struct {
	Stats      *fetch.Container[*audit.StatsSnapshot]
	Documents  *fetch.Container[*audit.DocumentPage]
	Compliance *fetch.Container[*audit.ComplianceAnalysis]
	Queue      *fetch.Container[[]audit.DocumentRecord]
}

// New builds the dashboard containers over the given API. The document
// listing is paged with the given limit and offset.
func New(api audit.API, limit, offset int, logger zerolog.Logger) *Dashboard {
	return &Dashboard{
		Stats: fetch.NewContainer("stats", func(ctx context.Context) (*audit.StatsSnapshot, error) {
			return api.FetchStats(ctx)
		}, logger),
		Documents: fetch.NewContainer("documents", func(ctx context.Context) (*audit.DocumentPage, error) {
			return api.FetchDocuments(ctx, limit, offset)
		}, logger),
		Compliance: fetch.NewContainer("compliance", func(ctx context.Context) (*audit.ComplianceAnalysis, error) {
			return api.FetchCompliance(ctx)
		}, logger),
		Queue: fetch.NewContainer("review-queue", func(ctx context.Context) ([]audit.DocumentRecord, error) {
			return api.FetchReviewQueue(ctx)
		}, logger),
	}
}

// Mount fetches all containers concurrently and waits for every one to
// settle. Per-container failures are recorded in each container's
// state rather than aborting the others.
func (d *Dashboard) Mount(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshConcurrency)

	for _, refetch := range []func(context.Context){
		d.Stats.Mount,
		d.Documents.Mount,
		d.Compliance.Mount,
		d.Queue.Mount,
	} {
		g.Go(func() error {
			refetch(ctx)
			return nil
		})
	}

	// Only nil errors are returned above; Wait is for synchronization.
	_ = g.Wait()
}
