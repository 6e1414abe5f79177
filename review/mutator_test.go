package review

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audittrack/audittrack/audit"
)

// stubAPI records review actions; unimplemented methods panic via the
// embedded interface.
type stubAPI struct {
	audit.API

	approveCalls atomic.Int64
	flagCalls    atomic.Int64
	approveErr   error
	flagErr      error

	lastApproved int64
	lastReason   string
}

func (s *stubAPI) Approve(ctx context.Context, id int64) error {
	s.approveCalls.Add(1)
	s.lastApproved = id
	return s.approveErr
}

func (s *stubAPI) Flag(ctx context.Context, id int64, reason string) error {
	s.flagCalls.Add(1)
	s.lastReason = reason
	return s.flagErr
}

type stubQueue struct {
	refetches atomic.Int64
}

func (q *stubQueue) Refetch(ctx context.Context) {
	q.refetches.Add(1)
}

func TestApproveDocument(t *testing.T) {
	t.Run("success refetches the queue once", func(t *testing.T) {
		api := &stubAPI{}
		queue := &stubQueue{}
		mutator := NewMutator(api, queue, zerolog.Nop())

		require.NoError(t, mutator.ApproveDocument(context.Background(), 7))
		assert.Equal(t, int64(7), api.lastApproved)
		assert.Equal(t, int64(1), queue.refetches.Load())
	})

	t.Run("failure leaves the queue untouched", func(t *testing.T) {
		api := &stubAPI{approveErr: &audit.TransportError{StatusCode: 500, Message: "server error"}}
		queue := &stubQueue{}
		mutator := NewMutator(api, queue, zerolog.Nop())

		err := mutator.ApproveDocument(context.Background(), 7)
		var terr *audit.TransportError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, int64(0), queue.refetches.Load(), "no optimistic refresh on failure")
	})
}

func TestFlagDocument(t *testing.T) {
	t.Run("success refetches the queue once", func(t *testing.T) {
		api := &stubAPI{}
		queue := &stubQueue{}
		mutator := NewMutator(api, queue, zerolog.Nop())

		require.NoError(t, mutator.FlagDocument(context.Background(), 9, "missing signature"))
		assert.Equal(t, "missing signature", api.lastReason)
		assert.Equal(t, int64(1), queue.refetches.Load())
	})

	t.Run("empty reason fails locally with zero calls", func(t *testing.T) {
		api := &stubAPI{}
		queue := &stubQueue{}
		mutator := NewMutator(api, queue, zerolog.Nop())

		err := mutator.FlagDocument(context.Background(), 9, "")
		var verr *audit.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, int64(0), api.flagCalls.Load(), "validation must not reach the network")
		assert.Equal(t, int64(0), queue.refetches.Load())
	})

	t.Run("whitespace reason also rejected", func(t *testing.T) {
		api := &stubAPI{}
		queue := &stubQueue{}
		mutator := NewMutator(api, queue, zerolog.Nop())

		err := mutator.FlagDocument(context.Background(), 9, "   ")
		var verr *audit.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, int64(0), api.flagCalls.Load())
	})

	t.Run("service failure surfaces and skips refetch", func(t *testing.T) {
		api := &stubAPI{flagErr: &audit.TransportError{StatusCode: 404, Message: "not found"}}
		queue := &stubQueue{}
		mutator := NewMutator(api, queue, zerolog.Nop())

		err := mutator.FlagDocument(context.Background(), 9, "dup")
		require.Error(t, err)
		assert.Equal(t, int64(0), queue.refetches.Load())
	})
}
