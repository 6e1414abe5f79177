// Package review wraps the approve/flag actions on the review queue
// and keeps the queue view eventually consistent by refetching it
// after each confirmed mutation.
package review

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/audittrack/audittrack/audit"
)

// Refresher re-fetches the review-queue view. Satisfied by
// *fetch.Container[[]audit.DocumentRecord].
type Refresher interface {
	Refetch(ctx context.Context)
}

// Mutator applies review actions through the audit service. The queue
// is never updated optimistically: it only reflects confirmed server
// state, so a rejected mutation leaves the item visibly in place.
type Mutator struct {
	api    audit.API
	queue  Refresher
	logger zerolog.Logger
}

// NewMutator creates a mutator bound to the given queue view.
func NewMutator(api audit.API, queue Refresher, logger zerolog.Logger) *Mutator {
	return &Mutator{api: api, queue: queue, logger: logger}
}

// ApproveDocument approves a queued document. On success the queue is
// refetched once; on failure the error is returned and the queue is
// left untouched.
func (m *Mutator) ApproveDocument(ctx context.Context, id int64) error {
	if err := m.api.Approve(ctx, id); err != nil {
		m.logger.Debug().Err(err).Int64("id", id).Msg("Approve failed")
		return err
	}

	m.logger.Info().Int64("id", id).Msg("Document approved")
	m.queue.Refetch(ctx)
	return nil
}

// FlagDocument flags a queued document with a reason. An empty reason
// is rejected locally without touching the network or the queue.
func (m *Mutator) FlagDocument(ctx context.Context, id int64, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return &audit.ValidationError{Field: "flag reason", Message: "must not be empty"}
	}

	if err := m.api.Flag(ctx, id, reason); err != nil {
		m.logger.Debug().Err(err).Int64("id", id).Msg("Flag failed")
		return err
	}

	m.logger.Info().Int64("id", id).Str("reason", reason).Msg("Document flagged")
	m.queue.Refetch(ctx)
	return nil
}
