package deploy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

const (
	maxAnnouncedFiles = 30
	fileAnnounceDelay = 50 * time.Millisecond
	buildTick         = 150 * time.Millisecond
	buildStep         = 5
)

// canonicalDockerFiles are announced by the docker step when no ArtifactWriter is set.
var canonicalDockerFiles = []string{"Dockerfile", "docker-compose.yml", ".dockerignore"}

func (o *Orchestrator) runStep(ctx context.Context, id StepID, projectID string) error {
	switch id {
	case StepValidate:
		return o.timedStep(ctx, id, "Checking project configuration...", 500*time.Millisecond, "Project validated successfully")
	case StepPlanning:
		return o.timedStep(ctx, id, "Loading planning documents...", 500*time.Millisecond, "Planning documents found")
	case StepGenerate:
		return o.generateStep(ctx, projectID)
	case StepDocker:
		return o.dockerStep(ctx, projectID)
	case StepBuild:
		return o.buildStep(ctx)
	case StepDeploy:
		return o.deployStep(ctx, projectID)
	case StepVerify:
		return o.timedStep(ctx, id, "Verifying deployment...", time.Second, "Deployment verified and running")
	}
	return errors.Wrapf(ErrUnknownStep, "%q", id)
}

func (o *Orchestrator) setMessage(id StepID, msg string) {
	o.updateStep(id, func(s *Step) { s.Message = msg })
}

func (o *Orchestrator) timedStep(ctx context.Context, id StepID, during string, d time.Duration, done string) error {
	o.setMessage(id, during)
	if err := o.sleep(ctx, d); err != nil {
		return err
	}
	o.setMessage(id, done)
	return nil
}

// generateStep asks the backend for code. "already generated" and missing planning
// replies are not failures: the project keeps its existing code.
func (o *Orchestrator) generateStep(ctx context.Context, projectID string) error {
	o.setMessage(StepGenerate, "Generating code from planning...")

	res, err := o.backend.GenerateCode(context.WithoutCancel(ctx), projectID)
	if ctx.Err() != nil {
		return ErrCancelled
	}
	if err != nil {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "already"):
			o.setMessage(StepGenerate, "Code already generated")
			return nil
		case strings.Contains(msg, "planning"):
			o.setMessage(StepGenerate, "Skipped - using existing code")
			return nil
		}
		return err
	}

	var files []string
	if res != nil {
		files = res.Files
	}
	for i, f := range files {
		if i == maxAnnouncedFiles {
			break
		}
		if ctx.Err() != nil {
			return ErrCancelled
		}
		o.addFile(f, FileCreated)
		if err := o.sleep(ctx, fileAnnounceDelay); err != nil {
			return err
		}
	}
	o.setMessage(StepGenerate, fmt.Sprintf("Generated %d files", len(files)))
	return nil
}

func (o *Orchestrator) dockerStep(ctx context.Context, projectID string) error {
	o.setMessage(StepDocker, "Creating Docker files...")

	files := canonicalDockerFiles
	if o.opts.Artifacts != nil {
		written, err := o.opts.Artifacts.WriteDockerArtifacts(context.WithoutCancel(ctx), projectID)
		if ctx.Err() != nil {
			return ErrCancelled
		}
		if err != nil {
			return errors.Wrap(err, "Docker configuration failed")
		}
		files = written
	}

	delays := []time.Duration{300 * time.Millisecond, 200 * time.Millisecond}
	for i, f := range files {
		d := 200 * time.Millisecond
		if i < len(delays) {
			d = delays[i]
		}
		if err := o.sleep(ctx, d); err != nil {
			return err
		}
		o.addFile(f, FileCreated)
	}
	o.setMessage(StepDocker, "Docker configuration created")
	return nil
}

func (o *Orchestrator) buildStep(ctx context.Context) error {
	progress := func(p int, msg string) {
		o.updateStep(StepBuild, func(s *Step) {
			s.Progress = &p
			s.Message = msg
		})
	}
	progress(0, "Building Docker images...")
	for i := 0; i <= 100; i += buildStep {
		if ctx.Err() != nil {
			return ErrCancelled
		}
		progress(i, fmt.Sprintf("Building... %d%%", i))
		if err := o.sleep(ctx, buildTick); err != nil {
			return err
		}
	}
	progress(100, "Docker images built")
	return nil
}

func (o *Orchestrator) deployStep(ctx context.Context, projectID string) error {
	o.setMessage(StepDeploy, "Starting containers...")

	res, err := o.backend.DeployProject(context.WithoutCancel(ctx), projectID, o.opts.Environment)
	if ctx.Err() != nil {
		return ErrCancelled
	}
	if err == nil && (res == nil || !res.Success) {
		msg := "Deployment failed"
		if res != nil && res.Error != "" {
			msg = res.Error
		}
		err = errors.New(msg)
	}
	if err != nil {
		return errors.Newf("Deploy failed: %s", err.Error())
	}
	o.setMessage(StepDeploy, "Containers deployed successfully")
	return nil
}
