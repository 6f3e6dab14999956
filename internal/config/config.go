// Package config loads the optional zurto.hcl file that tunes logging, the layout engine
// and the deployment pipeline.
package config

import (
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/zurto/planner/internal/aiclient"
	"github.com/zurto/planner/internal/layout"
	"github.com/zurto/planner/internal/logger"
)

// DefaultFile is the file name looked up when no path is given.
const DefaultFile = "zurto.hcl"

// Config is the resolved configuration.
type Config struct {
	LogLevel     string
	Hierarchical layout.HierarchicalConfig
	Radial       layout.RadialConfig
	Deploy       Deploy
}

// Deploy configures the deployment pipeline.
type Deploy struct {
	APIURL      string
	Environment string
	DelayScale  float64
	OutputDir   string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:     "info",
		Hierarchical: layout.DefaultHierarchicalConfig(),
		Radial:       layout.DefaultRadialConfig(),
		Deploy: Deploy{
			APIURL:      aiclient.DefaultBaseURL,
			Environment: "development",
			DelayScale:  1,
			OutputDir:   "deploy",
		},
	}
}

// Level returns the configured slog level.
func (c Config) Level() slog.Level { return logger.ParseLevel(c.LogLevel) }

// file mirrors the HCL schema. Every attribute is optional and overlays the default.
type file struct {
	LogLevel     *string            `hcl:"log_level,optional"`
	Hierarchical *hierarchicalBlock `hcl:"hierarchical,block"`
	Radial       *radialBlock       `hcl:"radial,block"`
	Deploy       *deployBlock       `hcl:"deploy,block"`
}

type hierarchicalBlock struct {
	NodeWidth         *float64 `hcl:"node_width,optional"`
	NodeHeight        *float64 `hcl:"node_height,optional"`
	LayerDistance     *float64 `hcl:"layer_distance,optional"`
	NodeSpacing       *float64 `hcl:"node_spacing,optional"`
	MinNodeSeparation *float64 `hcl:"min_node_separation,optional"`
	AngleBias         *float64 `hcl:"angle_bias,optional"`
	TopMargin         *float64 `hcl:"top_margin,optional"`
	MaxAdjustments    *int     `hcl:"max_adjustments,optional"`
}

type radialBlock struct {
	NodeWidth      *float64 `hcl:"node_width,optional"`
	NodeHeight     *float64 `hcl:"node_height,optional"`
	MainNodeWidth  *float64 `hcl:"main_node_width,optional"`
	MainNodeHeight *float64 `hcl:"main_node_height,optional"`
	RingSpacing    *float64 `hcl:"ring_spacing,optional"`
	MinAngle       *float64 `hcl:"min_angle,optional"`
	StartAngle     *float64 `hcl:"start_angle,optional"`
}

type deployBlock struct {
	APIURL      *string  `hcl:"api_url,optional"`
	Environment *string  `hcl:"environment,optional"`
	DelayScale  *float64 `hcl:"delay_scale,optional"`
	OutputDir   *string  `hcl:"output_dir,optional"`
}

// Load reads the HCL file at path and overlays it on Default. An empty path loads
// DefaultFile when it exists and returns the defaults otherwise.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return cfg, nil
		}
		path = DefaultFile
	}

	var f file
	if err := hclsimple.DecodeFile(path, nil, &f); err != nil {
		return cfg, errors.Wrapf(err, "load config %s", path)
	}
	if err := f.apply(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "load config %s", path)
	}
	return cfg, nil
}

// Parse decodes HCL source. filename is used in diagnostics and must end in .hcl.
func Parse(filename string, src []byte) (Config, error) {
	cfg := Default()
	var f file
	if err := hclsimple.Decode(filename, src, nil, &f); err != nil {
		return cfg, errors.Wrapf(err, "load config %s", filename)
	}
	if err := f.apply(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "load config %s", filename)
	}
	return cfg, nil
}

func (f file) apply(cfg *Config) error {
	set(&cfg.LogLevel, f.LogLevel)

	if h := f.Hierarchical; h != nil {
		c := &cfg.Hierarchical
		set(&c.NodeWidth, h.NodeWidth)
		set(&c.NodeHeight, h.NodeHeight)
		set(&c.LayerDistance, h.LayerDistance)
		set(&c.NodeSpacing, h.NodeSpacing)
		set(&c.MinNodeSeparation, h.MinNodeSeparation)
		set(&c.AngleBias, h.AngleBias)
		set(&c.TopMargin, h.TopMargin)
		set(&c.MaxAdjustments, h.MaxAdjustments)
		if c.NodeWidth <= 0 || c.NodeHeight <= 0 {
			return errors.WithHint(errors.New("hierarchical node size must be positive"),
				"set node_width and node_height above zero")
		}
		if c.MaxAdjustments < 0 {
			return errors.New("hierarchical max_adjustments must not be negative")
		}
	}

	if r := f.Radial; r != nil {
		c := &cfg.Radial
		set(&c.NodeWidth, r.NodeWidth)
		set(&c.NodeHeight, r.NodeHeight)
		set(&c.MainNodeWidth, r.MainNodeWidth)
		set(&c.MainNodeHeight, r.MainNodeHeight)
		set(&c.RingSpacing, r.RingSpacing)
		set(&c.MinAngle, r.MinAngle)
		set(&c.StartAngle, r.StartAngle)
		if c.MinAngle <= 0 {
			return errors.WithHint(errors.New("radial min_angle must be positive"),
				"use a slot width in degrees, e.g. 50")
		}
	}

	if d := f.Deploy; d != nil {
		set(&cfg.Deploy.APIURL, d.APIURL)
		set(&cfg.Deploy.Environment, d.Environment)
		set(&cfg.Deploy.DelayScale, d.DelayScale)
		set(&cfg.Deploy.OutputDir, d.OutputDir)
		if cfg.Deploy.DelayScale < 0 {
			return errors.New("deploy delay_scale must not be negative")
		}
	}
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
