package deploy

import "github.com/cockroachdb/errors"

var (
	// ErrCancelled is returned by Start when the run was cancelled or its context ended.
	ErrCancelled = errors.New("deployment cancelled")
	// ErrAlreadyRunning is returned when a run is started or reset while another is active.
	ErrAlreadyRunning = errors.New("deployment already running")
	// ErrUnknownStep is returned for a step name outside the pipeline.
	ErrUnknownStep = errors.New("unknown deployment step")
)

// cancelledMessage is the user-facing error of a cancelled run.
const cancelledMessage = "Deployment cancelled by user"

// StepError records which step failed.
type StepError struct {
	Step StepID
	Err  error
}

func (e *StepError) Error() string { return e.Err.Error() }

func (e *StepError) Unwrap() error { return e.Err }
