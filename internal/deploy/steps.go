package deploy

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// StepID names a pipeline stage.
type StepID string

const (
	StepValidate StepID = "validate"
	StepPlanning StepID = "planning"
	StepGenerate StepID = "generate"
	StepDocker   StepID = "docker"
	StepBuild    StepID = "build"
	StepDeploy   StepID = "deploy"
	StepVerify   StepID = "verify"
)

var stepOrder = []StepID{
	StepValidate,
	StepPlanning,
	StepGenerate,
	StepDocker,
	StepBuild,
	StepDeploy,
	StepVerify,
}

var stepNames = map[StepID]string{
	StepValidate: "Validating Project",
	StepPlanning: "Checking Planning Documents",
	StepGenerate: "Generating Code",
	StepDocker:   "Creating Docker Configuration",
	StepBuild:    "Building Docker Images",
	StepDeploy:   "Deploying Containers",
	StepVerify:   "Verifying Deployment",
}

// Steps returns the pipeline in execution order.
func Steps() []StepID {
	return append([]StepID(nil), stepOrder...)
}

// Name is the display name of the step.
func (s StepID) Name() string { return stepNames[s] }

func (s StepID) index() int {
	for i, id := range stepOrder {
		if id == s {
			return i
		}
	}
	return -1
}

// ParseStep validates a step name.
func ParseStep(s string) (StepID, error) {
	id := StepID(strings.ToLower(strings.TrimSpace(s)))
	if id.index() < 0 {
		return "", errors.Wrapf(ErrUnknownStep, "%q", s)
	}
	return id, nil
}

// Status is the lifecycle state of a step.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Step is one stage of a run as shown to the user.
type Step struct {
	ID          StepID     `json:"id"`
	Name        string     `json:"name"`
	Status      Status     `json:"status"`
	Progress    *int       `json:"progress,omitempty"`
	Message     string     `json:"message,omitempty"`
	Error       string     `json:"error,omitempty"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// FileAction is what happened to a file.
type FileAction string

const (
	FileCreated  FileAction = "created"
	FileModified FileAction = "modified"
	FileDeleted  FileAction = "deleted"
)

// FileActivity is one entry of the per-run file log.
type FileActivity struct {
	Path      string     `json:"path"`
	Action    FileAction `json:"action"`
	Timestamp time.Time  `json:"timestamp"`
}
