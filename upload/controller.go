// Package upload orchestrates document submission to the audit
// service: single/bulk dispatch, a ticking progress estimate, and
// per-file outcome aggregation.
package upload

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/audittrack/audittrack/audit"
)

const (
	// singleTickInterval drives the progress estimate for one file
	singleTickInterval = 200 * time.Millisecond
	// bulkTickInterval drives the progress estimate for bulk uploads
	bulkTickInterval = 300 * time.Millisecond
	// singleTickStep advances per tick for single uploads
	singleTickStep = 10
	// bulkTickStep advances per tick for bulk uploads
	bulkTickStep = 5
	// progressCeiling is the highest the estimate climbs while a
	// request is outstanding
	progressCeiling = 90
	// resetDelay holds 100% on screen before dropping back to zero
	resetDelay = time.Second
)

// Controller drives the upload lifecycle. It keeps the current file
// selection, a progress percentage, and the outcome set of the last
// submission.
type Controller struct {
	api    audit.API
	logger zerolog.Logger

	// onComplete fires after a submission in which at least one file
	// succeeded, so document listings can refresh.
	onComplete func(ctx context.Context, outcomes []audit.UploadOutcome)

	tickInterval time.Duration // test override, 0 uses defaults
	holdDelay    time.Duration // test override, 0 uses resetDelay

	mu        sync.Mutex
	selection []audit.File
	outcomes  []audit.UploadOutcome
	uploading bool
	progress  int
	seq       uint64 // advanced by Submit and Clear; stale flights are ignored
}

// NewController creates an upload controller over the given API.
func NewController(api audit.API, logger zerolog.Logger) *Controller {
	return &Controller{api: api, logger: logger}
}

// OnComplete registers the completion callback. Must be set before
// Submit.
func (c *Controller) OnComplete(fn func(ctx context.Context, outcomes []audit.UploadOutcome)) {
	c.onComplete = fn
}

// Uploading reports whether a submission is in flight.
func (c *Controller) Uploading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uploading
}

// Progress returns the current progress percentage estimate. It is
// non-decreasing from submission until completion, snaps to 100 when
// the request resolves, and resets to 0 after a short display delay.
func (c *Controller) Progress() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// Selection returns the files staged for upload.
func (c *Controller) Selection() []audit.File {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]audit.File(nil), c.selection...)
}

// Outcomes returns the per-file results of the last settled submission.
func (c *Controller) Outcomes() []audit.UploadOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]audit.UploadOutcome(nil), c.outcomes...)
}

// Submit uploads the given files, blocking until the request settles.
// One file dispatches to the single-upload endpoint, two or more to
// the bulk endpoint. The returned set always has one outcome per
// submitted file; a failed request marks every file failed with the
// caught error and keeps the selection intact for retry.
func (c *Controller) Submit(ctx context.Context, files []audit.File) ([]audit.UploadOutcome, error) {
	if len(files) == 0 {
		return nil, audit.ErrNoFiles
	}

	c.mu.Lock()
	c.seq++
	issued := c.seq
	c.selection = append([]audit.File(nil), files...)
	c.outcomes = nil
	c.uploading = true
	c.progress = 0
	c.mu.Unlock()

	stopTicker := c.startTicker(issued, len(files))
	defer stopTicker()

	outcomes := c.dispatch(ctx, files)

	c.mu.Lock()
	if issued != c.seq {
		// Controller moved on via Clear or a newer Submit; drop the
		// result.
		c.mu.Unlock()
		c.logger.Debug().Msg("Discarding stale upload result")
		return outcomes, nil
	}
	c.outcomes = outcomes
	c.uploading = false
	c.progress = 100
	anySuccess := false
	allSuccess := true
	for _, outcome := range outcomes {
		if outcome.Success {
			anySuccess = true
		} else {
			allSuccess = false
		}
	}
	if allSuccess {
		c.selection = nil
	}
	c.mu.Unlock()

	c.scheduleProgressReset(issued)

	if anySuccess && c.onComplete != nil {
		c.onComplete(ctx, outcomes)
	}

	return outcomes, nil
}

// dispatch routes to the single or bulk endpoint and converts a
// request-level failure into one failed outcome per file.
func (c *Controller) dispatch(ctx context.Context, files []audit.File) []audit.UploadOutcome {
	if len(files) == 1 {
		outcome, err := c.api.UploadOne(ctx, files[0])
		if err != nil {
			return failedOutcomes(files, err)
		}
		return []audit.UploadOutcome{outcome}
	}

	outcomes, err := c.api.UploadMany(ctx, files)
	if err != nil {
		return failedOutcomes(files, err)
	}
	return outcomes
}

// failedOutcomes marks every submitted file failed with the caught
// error's message.
func failedOutcomes(files []audit.File, err error) []audit.UploadOutcome {
	outcomes := make([]audit.UploadOutcome, 0, len(files))
	for _, file := range files {
		outcomes = append(outcomes, audit.UploadOutcome{
			Filename: file.Name,
			Success:  false,
			Error:    errMessage(err),
		})
	}
	return outcomes
}

func errMessage(err error) string {
	if terr, ok := err.(*audit.TransportError); ok {
		return terr.Message
	}
	return err.Error()
}

// startTicker runs the progress estimate for the given submission and
// returns a stop function. The estimate advances toward (never
// reaching past) the ceiling while the request is outstanding; real
// byte-level progress could replace it without changing the
// monotonic-until-reset contract.
func (c *Controller) startTicker(issued uint64, fileCount int) func() {
	interval := c.tickInterval
	step := singleTickStep
	if interval == 0 {
		interval = singleTickInterval
		if fileCount > 1 {
			interval = bulkTickInterval
		}
	}
	if fileCount > 1 {
		step = bulkTickStep
	}

	done := make(chan struct{})
	var once sync.Once
	stop := func() { once.Do(func() { close(done) }) }

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				c.mu.Lock()
				if issued == c.seq && c.uploading && c.progress < progressCeiling {
					c.progress = min(c.progress+step, progressCeiling)
				}
				c.mu.Unlock()
			}
		}
	}()

	return stop
}

// scheduleProgressReset drops the progress bar back to zero after the
// display delay, unless a newer submission has taken over.
func (c *Controller) scheduleProgressReset(issued uint64) {
	delay := c.holdDelay
	if delay == 0 {
		delay = resetDelay
	}
	time.AfterFunc(delay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if issued == c.seq && !c.uploading {
			c.progress = 0
		}
	})
}

// Clear discards the pending selection and any prior outcome set. An
// in-flight submission is not cancelled; its result is discarded when
// it resolves against the advanced sequence.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.selection = nil
	c.outcomes = nil
	c.uploading = false
	c.progress = 0
}
