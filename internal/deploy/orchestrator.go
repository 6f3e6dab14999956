// Package deploy sequences a project deployment through a fixed pipeline of steps with
// cooperative cancellation and retry from the first failed step.
package deploy

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/zurto/planner/internal/logger"
)

// Options configures an Orchestrator.
type Options struct {
	// Environment is passed to the deploy endpoint; empty means "development".
	Environment string
	// DelayScale multiplies the cosmetic step delays. Zero disables them.
	DelayScale float64
	// OnChange receives a snapshot after every state change. It runs on the goroutine
	// that made the change, which is the Start caller or the Cancel caller.
	OnChange func(State)
	// Artifacts writes the Docker files; nil announces the canonical three files only.
	Artifacts ArtifactWriter
	Logger    *slog.Logger
	Metrics   *Metrics
}

// DefaultOptions returns real-time delays in the development environment.
func DefaultOptions() Options {
	return Options{
		Environment: "development",
		DelayScale:  1,
	}
}

// Orchestrator runs one deployment at a time.
type Orchestrator struct {
	backend Backend
	opts    Options
	log     *slog.Logger

	mu      sync.Mutex
	state   State
	running bool
	cancel  context.CancelFunc
}

// New returns an idle orchestrator driving backend.
func New(backend Backend, opts Options) *Orchestrator {
	if opts.Environment == "" {
		opts.Environment = "development"
	}
	return &Orchestrator{
		backend: backend,
		opts:    opts,
		log:     logger.Or(opts.Logger),
		state:   initialState(),
	}
}

// Snapshot returns a copy of the current state.
func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.clone()
}

// Start runs the pipeline for projectID and blocks until it finishes. With an empty
// fromStep every step starts pending; otherwise completed steps are kept and the run
// begins at fromStep. It returns nil on success, a *StepError when a step fails, and
// ErrCancelled when Cancel is called or ctx ends.
func (o *Orchestrator) Start(ctx context.Context, projectID string, fromStep StepID) error {
	start := 0
	if fromStep != "" {
		if start = fromStep.index(); start < 0 {
			return errors.Wrapf(ErrUnknownStep, "%q", fromStep)
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return ErrAlreadyRunning
	}
	o.running = true
	o.cancel = cancel
	o.state.RunID = uuid.NewString()
	o.state.ProjectID = projectID
	o.state.IsDeploying = true
	o.state.Error = ""
	o.state.Cancelled = false
	o.state.IsComplete = false
	o.state.CurrentStep = ""
	o.state.Files = []FileActivity{}
	for i := range o.state.Steps {
		st := &o.state.Steps[i]
		if fromStep != "" && st.Status == StatusCompleted {
			continue
		}
		*st = Step{ID: st.ID, Name: st.Name, Status: StatusPending}
	}
	o.state.OverallProgress = o.state.progress()
	runID := o.state.RunID
	o.mu.Unlock()
	o.notify()

	log := o.log.With("run_id", runID, "project_id", projectID)
	log.Info("deployment started", "from_step", string(fromStep))

	err := o.run(runCtx, log, projectID, start)

	o.mu.Lock()
	o.running = false
	o.cancel = nil
	o.state.IsDeploying = false
	switch {
	case err == nil:
		// A Cancel that lands after the last step finished does not undo the run.
		o.state.IsComplete = true
		o.state.OverallProgress = 100
		o.state.Error = ""
		o.state.Cancelled = false
	case errors.Is(err, ErrCancelled):
		o.state.Error = cancelledMessage
		o.state.Cancelled = true
	default:
		o.state.Error = err.Error()
	}
	o.mu.Unlock()
	o.notify()

	switch {
	case err == nil:
		log.Info("deployment completed")
		o.opts.Metrics.recordRun("completed")
	case errors.Is(err, ErrCancelled):
		log.Warn("deployment cancelled")
		o.opts.Metrics.recordRun("cancelled")
	default:
		log.Error("deployment failed", "error", err)
		o.opts.Metrics.recordRun("failed")
	}
	return err
}

func (o *Orchestrator) run(ctx context.Context, log *slog.Logger, projectID string, start int) error {
	for _, id := range stepOrder[start:] {
		if ctx.Err() != nil {
			return ErrCancelled
		}

		began := time.Now()
		o.mutate(func(s *State) {
			s.CurrentStep = id
			st := stepPtr(s, id)
			st.Status = StatusRunning
			st.Message = "In progress..."
			st.Error = ""
			st.StartedAt = &began
			st.CompletedAt = nil
		})
		log.Info("step started", "step", string(id), "status", string(StatusRunning))

		err := o.runStep(ctx, id, projectID)
		if errors.Is(err, ErrCancelled) {
			log.Info("step interrupted", "step", string(id))
			return err
		}

		ended := time.Now()
		status := StatusCompleted
		if err != nil {
			status = StatusFailed
		}
		o.mutate(func(s *State) {
			st := stepPtr(s, id)
			st.Status = status
			st.CompletedAt = &ended
			if err != nil {
				st.Error = err.Error()
				return
			}
			if st.Message == "In progress..." {
				st.Message = "Completed"
			}
			s.LastCompletedStep = id
			s.OverallProgress = s.progress()
		})
		o.opts.Metrics.recordStep(id, status, ended.Sub(began))

		if err != nil {
			log.Warn("step failed", "step", string(id), "status", string(status), "error", err)
			return &StepError{Step: id, Err: err}
		}
		log.Info("step completed", "step", string(id), "status", string(status))
	}
	return nil
}

// Cancel asks the active run to stop at its next checkpoint. Step statuses are left
// as they are; the run reports a cancelled error instead of a failed step.
// Cancel is a no-op when no run is active.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	if !o.running {
		o.mu.Unlock()
		return
	}
	o.cancel()
	o.state.IsDeploying = false
	o.state.Error = cancelledMessage
	o.state.Cancelled = true
	o.mu.Unlock()
	o.notify()
}

// RetryFromFailed resumes at the first failed step, or restarts from the beginning
// when no step failed.
func (o *Orchestrator) RetryFromFailed(ctx context.Context, projectID string) error {
	failed, ok := o.Snapshot().FirstFailed()
	if !ok {
		return o.Start(ctx, projectID, "")
	}
	return o.Start(ctx, projectID, failed)
}

// Reset returns to the initial idle state.
func (o *Orchestrator) Reset() error {
	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return ErrAlreadyRunning
	}
	o.state = initialState()
	o.mu.Unlock()
	o.notify()
	return nil
}

// mutate applies fn under the lock and publishes the result.
func (o *Orchestrator) mutate(fn func(*State)) {
	o.mu.Lock()
	fn(&o.state)
	o.mu.Unlock()
	o.notify()
}

func (o *Orchestrator) notify() {
	if o.opts.OnChange == nil {
		return
	}
	o.opts.OnChange(o.Snapshot())
}

func (o *Orchestrator) updateStep(id StepID, fn func(*Step)) {
	o.mutate(func(s *State) { fn(stepPtr(s, id)) })
}

func (o *Orchestrator) addFile(path string, action FileAction) {
	o.mutate(func(s *State) {
		s.Files = append(s.Files, FileActivity{Path: path, Action: action, Timestamp: time.Now()})
	})
}

func stepPtr(s *State, id StepID) *Step {
	return &s.Steps[id.index()]
}

// sleep waits d scaled by DelayScale. It is a cancellation checkpoint even when the
// scaled delay is zero.
func (o *Orchestrator) sleep(ctx context.Context, d time.Duration) error {
	if ctx.Err() != nil {
		return ErrCancelled
	}
	d = time.Duration(float64(d) * o.opts.DelayScale)
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ErrCancelled
	case <-t.C:
		return nil
	}
}
