package generator

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/zurto/planner/internal/diagram"
	"github.com/zurto/planner/internal/result"
)

// Write writes files under dir, creating directories as needed, and returns the written
// paths relative to dir in sorted order.
func Write(dir string, files map[string][]byte) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "create output directory %s", dir)
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		clean := filepath.Clean(filepath.FromSlash(name))
		if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			return nil, errors.Newf("refusing to write %q outside %s", name, dir)
		}
		path := filepath.Join(dir, clean)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrapf(err, "create directory for %s", name)
		}
		if err := os.WriteFile(path, files[name], 0644); err != nil {
			return nil, errors.Wrapf(err, "write %s", name)
		}
	}
	return names, nil
}

// DiagramSource fetches a project's diagram.
type DiagramSource interface {
	ProjectDiagram(ctx context.Context, projectID string) (*diagram.Diagram, error)
}

// DiskWriter produces a project's Docker artifacts on disk. Each project gets its own
// directory under Dir.
type DiskWriter struct {
	Source    DiagramSource
	Dir       string
	Generator *Generator
}

// ErrInvalidDiagram is returned when the project diagram does not generate.
var ErrInvalidDiagram = errors.New("project diagram has errors")

// WriteDockerArtifacts fetches the diagram, generates and writes the files, and returns their paths.
func (w *DiskWriter) WriteDockerArtifacts(ctx context.Context, projectID string) ([]string, error) {
	d, err := w.Source.ProjectDiagram(ctx, projectID)
	if err != nil {
		return nil, errors.Wrapf(err, "load diagram for project %s", projectID)
	}
	if d.Metadata.ProjectID == "" {
		d.Metadata.ProjectID = projectID
	}
	gen := w.Generator
	if gen == nil {
		gen = New(DefaultOptions())
	}
	res, err := gen.Generate(d)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, errors.WithDetail(ErrInvalidDiagram, firstError(res.Errors))
	}
	names, err := Write(filepath.Join(w.Dir, projectID), res.Files)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.ToSlash(filepath.Join(w.Dir, projectID, n))
	}
	return paths, nil
}

func firstError(errs []result.Error) string {
	if len(errs) == 0 {
		return ""
	}
	e := errs[0]
	if e.NodeID != "" {
		return e.NodeID + ": " + e.Message
	}
	return e.Message
}
