package deploy

import "time"

// State is the observable state of the orchestrator.
type State struct {
	RunID       string `json:"runId,omitempty"`
	ProjectID   string `json:"projectId,omitempty"`
	IsDeploying bool   `json:"isDeploying"`
	Steps       []Step `json:"steps"`
	CurrentStep StepID `json:"currentStep,omitempty"`
	// OverallProgress is the share of completed steps, 0 to 100.
	OverallProgress   float64        `json:"overallProgress"`
	Error             string         `json:"error,omitempty"`
	Cancelled         bool           `json:"cancelled,omitempty"`
	Files             []FileActivity `json:"files"`
	IsComplete        bool           `json:"isComplete"`
	LastCompletedStep StepID         `json:"lastCompletedStep,omitempty"`
}

func initialState() State {
	steps := make([]Step, len(stepOrder))
	for i, id := range stepOrder {
		steps[i] = Step{ID: id, Name: id.Name(), Status: StatusPending}
	}
	return State{Steps: steps, Files: []FileActivity{}}
}

// Step returns the step with the given id.
func (s State) Step(id StepID) (Step, bool) {
	for _, st := range s.Steps {
		if st.ID == id {
			return st, true
		}
	}
	return Step{}, false
}

// FirstFailed returns the first failed step, if any.
func (s State) FirstFailed() (StepID, bool) {
	for _, st := range s.Steps {
		if st.Status == StatusFailed {
			return st.ID, true
		}
	}
	return "", false
}

func (s State) progress() float64 {
	done := 0
	for _, st := range s.Steps {
		if st.Status == StatusCompleted {
			done++
		}
	}
	return float64(done) / float64(len(s.Steps)) * 100
}

// clone returns a deep copy safe to hand to callers.
func (s State) clone() State {
	out := s
	out.Steps = make([]Step, len(s.Steps))
	for i, st := range s.Steps {
		if st.Progress != nil {
			p := *st.Progress
			st.Progress = &p
		}
		st.StartedAt = cloneTime(st.StartedAt)
		st.CompletedAt = cloneTime(st.CompletedAt)
		out.Steps[i] = st
	}
	out.Files = append([]FileActivity{}, s.Files...)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
