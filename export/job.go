package export

import (
	"context"

	"github.com/google/uuid"

	"github.com/arunpranav-at/atap"
)

// Job is an export running in the background.
type Job struct {
	ID   uuid.UUID
	Path string

	cancel context.CancelFunc
	done   chan struct{}
	res    Result
	err    error
}

// Start runs Export on its own goroutine. s must not be modified while the
// job runs; Document.Snapshot returns a private copy.
func (e *Exporter) Start(ctx context.Context, s *atap.Snapshot, path string) *Job {
	ctx, cancel := context.WithCancel(ctx)
	j := &Job{
		ID:     uuid.New(),
		Path:   path,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	atap.Logger().Debug("export: job started", "job", j.ID, "path", path)
	go func() {
		defer close(j.done)
		defer cancel()
		j.res, j.err = e.Export(ctx, s, path)
	}()
	return j
}

// Cancel asks the job to stop before its next frame. It does not wait;
// call Wait to observe the partial output being removed.
func (j *Job) Cancel() { j.cancel() }

// Done is closed when the job has finished.
func (j *Job) Done() <-chan struct{} { return j.done }

// Wait blocks until the job finishes and returns its outcome.
func (j *Job) Wait() (Result, error) {
	<-j.done
	return j.res, j.err
}
