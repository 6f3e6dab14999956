// Package layout positions diagram nodes on a canvas and routes the connectors between them.
//
// All functions are pure: they never mutate their inputs and return fresh node slices in
// input order. Degenerate input (no nodes, dangling connections, no obvious root) falls back
// to a renderable layout instead of an error.
package layout

import (
	"github.com/zurto/planner/internal/diagram"
	"github.com/zurto/planner/internal/geometry"
)

// HierarchicalConfig holds the constants of the top-down tree layout.
type HierarchicalConfig struct {
	NodeWidth         float64
	NodeHeight        float64
	LayerDistance     float64
	NodeSpacing       float64
	MinNodeSeparation float64
	// AngleBias above 0.5 routes connectors with 45 degree exits instead of the four sides.
	AngleBias      float64
	TopMargin      float64
	MaxAdjustments int
}

// DefaultHierarchicalConfig returns the canvas defaults.
func DefaultHierarchicalConfig() HierarchicalConfig {
	return HierarchicalConfig{
		NodeWidth:         260,
		NodeHeight:        100,
		LayerDistance:     250,
		NodeSpacing:       300,
		MinNodeSeparation: 40,
		AngleBias:         0.8,
		TopMargin:         150,
		MaxAdjustments:    20,
	}
}

// Prefer45 reports whether connectors snap to eight directions.
func (c HierarchicalConfig) Prefer45() bool { return c.AngleBias > 0.5 }

func (c HierarchicalConfig) size() geometry.Size {
	return geometry.Size{Width: c.NodeWidth, Height: c.NodeHeight}
}

// RadialConfig holds the constants of the ring layout.
type RadialConfig struct {
	NodeWidth      float64
	NodeHeight     float64
	MainNodeWidth  float64
	MainNodeHeight float64
	RingSpacing    float64
	// MinAngle is the angular slot in degrees each node of a ring claims.
	MinAngle float64
	// StartAngle is where rings are centred, in degrees; -90 is the top.
	StartAngle float64
}

// DefaultRadialConfig returns the canvas defaults.
func DefaultRadialConfig() RadialConfig {
	return RadialConfig{
		NodeWidth:      260,
		NodeHeight:     100,
		MainNodeWidth:  300,
		MainNodeHeight: 150,
		RingSpacing:    400,
		MinAngle:       50,
		StartAngle:     -90,
	}
}

// ChildRadialConfig returns the tighter rings used when drilling into a node.
func ChildRadialConfig() RadialConfig {
	c := DefaultRadialConfig()
	c.MainNodeWidth = 320
	c.MainNodeHeight = 160
	c.RingSpacing = 350
	c.MinAngle = 40
	return c
}

// Dimensions returns the footprint of n: servers and the planning hub are larger.
func (c RadialConfig) Dimensions(n diagram.Node) geometry.Size {
	if n.IsMain() {
		return geometry.Size{Width: c.MainNodeWidth, Height: c.MainNodeHeight}
	}
	return geometry.Size{Width: c.NodeWidth, Height: c.NodeHeight}
}

// FlowConfig holds the constants of the left-to-right drill-in layout.
type FlowConfig struct {
	NodeWidth      float64
	NodeHeight     float64
	RankSeparation float64
	NodeSeparation float64
}

// DefaultFlowConfig returns the canvas defaults.
func DefaultFlowConfig() FlowConfig {
	return FlowConfig{
		NodeWidth:      260,
		NodeHeight:     90,
		RankSeparation: 200,
		NodeSeparation: 70,
	}
}
