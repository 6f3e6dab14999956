package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zurto/planner/internal/diagram"
)

const sample = `{
  "metadata": {"name": "Shop"},
  "nodes": [
    {"id": "plan", "type": "planning"},
    {"id": "api", "type": "backend", "parentId": "plan", "port": 4000},
    {"id": "routes", "type": "file", "parentId": "api"},
    {"id": "db", "type": "database", "parentId": "plan"}
  ],
  "edges": [
    {"id": "e1", "source": "api", "target": "db", "type": "depends_on"}
  ]
}`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diagram.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.hcl")))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_MissingExplicitConfig(t *testing.T) {
	out, err := run(t, "layout", "-i", writeSample(t))
	require.ErrorContains(t, err, "load config")
	assert.Empty(t, out)
}

func TestLayoutCommand_Defaults(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"layout", "-i", writeSample(t), "--routes", "--strategy", "hierarchical"})
	require.NoError(t, cmd.Execute())

	var res struct {
		Strategy string            `json:"strategy"`
		Nodes    []diagram.Node    `json:"nodes"`
		Routes   []json.RawMessage `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, "hierarchical", res.Strategy)
	require.Len(t, res.Nodes, 4)
	assert.Equal(t, diagram.Position{X: 600, Y: 150}, res.Nodes[0].Position)
	assert.Len(t, res.Routes, 1)
}

func TestLayoutCommand_UnknownStrategy(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"layout", "-i", writeSample(t), "--strategy", "spiral"})
	assert.ErrorContains(t, cmd.Execute(), "unknown layout strategy")
}

func TestDrillIn(t *testing.T) {
	var d diagram.Diagram
	require.NoError(t, json.Unmarshal([]byte(sample), &d))
	canvas := canvasFlags{width: 1200, height: 800}

	res, err := drillIn(&d, "api", "flow", canvas, false)
	require.NoError(t, err)
	require.Len(t, res.Nodes, 2)
	assert.Equal(t, "api", res.Nodes[0].ID)
	assert.True(t, res.Nodes[0].ViewParent)
	assert.Equal(t, "routes", res.Nodes[1].ID)

	res, err = drillIn(&d, "plan", "radial", canvas, true)
	require.NoError(t, err)
	assert.Len(t, res.Nodes, 4)
	assert.Len(t, res.Routes, 1)

	_, err = drillIn(&d, "missing", "radial", canvas, false)
	assert.Error(t, err)
	_, err = drillIn(&d, "api", "grid", canvas, false)
	assert.Error(t, err)
}

func TestDescends(t *testing.T) {
	parentOf := map[string]string{"a": "b", "b": "c", "c": "a", "d": ""}
	assert.True(t, descends("a", "c", parentOf))
	assert.False(t, descends("d", "a", parentOf))
	// Cycles terminate.
	assert.False(t, descends("a", "zzz", parentOf))
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"generate", "-i", writeSample(t), "-o", dir})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(dir, "main.tf"))
	assert.FileExists(t, filepath.Join(dir, "docker-compose.yml"))
	assert.Contains(t, out.String(), "wrote")
}

func TestDeployCommand_RequiresProject(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"deploy"})
	assert.ErrorContains(t, cmd.Execute(), "no project")
}

func TestDeployCommand_BadStep(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"deploy", "--project", "p1", "--from-step", "publish"})
	assert.ErrorContains(t, cmd.Execute(), "unknown deployment step")
}

func TestRouteCommand_Styles(t *testing.T) {
	input := writeSample(t)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"route", "-i", input, "--style", "orthogonal", "-q"})
	require.NoError(t, cmd.Execute())

	var routes []struct {
		EdgeID string `json:"edgeId"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &routes))
	require.Len(t, routes, 1)
	assert.Equal(t, "e1", routes[0].EdgeID)

	cmd = newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"route", "-i", input, "--style", "curvy"})
	assert.ErrorContains(t, cmd.Execute(), "unknown route style")
}

func TestDrillIn_FlowRoutes(t *testing.T) {
	var d diagram.Diagram
	require.NoError(t, json.Unmarshal([]byte(sample), &d))

	res, err := drillIn(&d, "plan", "flow", canvasFlags{width: 1200, height: 800}, true)
	require.NoError(t, err)
	require.Len(t, res.Routes, 1)
	assert.Equal(t, "e1", res.Routes[0].EdgeID)
	assert.Contains(t, res.Sinks, "db")
}
