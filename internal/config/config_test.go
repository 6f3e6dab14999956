package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zurto/planner/internal/layout"
)

func TestParse_OverlaysDefaults(t *testing.T) {
	src := `
log_level = "debug"

hierarchical {
  node_spacing    = 320
  max_adjustments = 5
}

deploy {
  environment = "production"
  delay_scale = 0
}
`
	cfg, err := Parse("zurto.hcl", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, 320.0, cfg.Hierarchical.NodeSpacing)
	assert.Equal(t, 5, cfg.Hierarchical.MaxAdjustments)
	assert.Equal(t, 260.0, cfg.Hierarchical.NodeWidth)
	assert.Equal(t, layout.DefaultRadialConfig(), cfg.Radial)
	assert.Equal(t, "production", cfg.Deploy.Environment)
	assert.Zero(t, cfg.Deploy.DelayScale)
	assert.Equal(t, "https://api.zurto.app", cfg.Deploy.APIURL)
	assert.Equal(t, "deploy", cfg.Deploy.OutputDir)
}

func TestParse_Radial(t *testing.T) {
	cfg, err := Parse("zurto.hcl", []byte(`
radial {
  ring_spacing = 300
  start_angle  = 0
}
`))
	require.NoError(t, err)
	assert.Equal(t, 300.0, cfg.Radial.RingSpacing)
	assert.Zero(t, cfg.Radial.StartAngle)
	assert.Equal(t, 50.0, cfg.Radial.MinAngle)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown attribute", `colour = "red"`, "load config zurto.hcl"},
		{"wrong type", `log_level = [1]`, "load config zurto.hcl"},
		{"zero width", "hierarchical {\n  node_width = 0\n}\n", "node size must be positive"},
		{"zero min angle", "radial {\n  min_angle = 0\n}\n", "min_angle must be positive"},
		{"negative delay", "deploy {\n  delay_scale = -1\n}\n", "delay_scale must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("zurto.hcl", []byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.hcl")
	require.NoError(t, os.WriteFile(path, []byte("deploy {\n  api_url = \"http://localhost:4000\"\n}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4000", cfg.Deploy.APIURL)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	assert.Error(t, err)
}

func TestLoad_NoPathUsesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLevel(t *testing.T) {
	cfg := Default()
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	cfg.LogLevel = "warning"
	assert.Equal(t, slog.LevelWarn, cfg.Level())
}
