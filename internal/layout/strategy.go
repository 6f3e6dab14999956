package layout

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/zurto/planner/internal/diagram"
)

// Strategy names a layout algorithm.
type Strategy string

const (
	StrategyHierarchical Strategy = "hierarchical"
	StrategyRadial       Strategy = "radial"
)

// ParseStrategy accepts a strategy name; the empty string means hierarchical.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyHierarchical:
		return StrategyHierarchical, nil
	case StrategyRadial:
		return StrategyRadial, nil
	}
	return "", errors.WithHint(
		errors.Newf("unknown layout strategy %q", s),
		"use hierarchical or radial")
}

// Options bundles the configs of every strategy.
type Options struct {
	Hierarchical HierarchicalConfig
	Radial       RadialConfig
	// Routes also computes connector paths.
	Routes bool
}

// DefaultOptions returns default configs without routing.
func DefaultOptions() Options {
	return Options{
		Hierarchical: DefaultHierarchicalConfig(),
		Radial:       DefaultRadialConfig(),
	}
}

// Result is what Apply returns.
type Result struct {
	Strategy Strategy       `json:"strategy"`
	Nodes    []diagram.Node `json:"nodes"`
	Routes   []Route        `json:"routes,omitempty"`
	// Sources and Sinks name the nodes no edge enters and no edge leaves.
	Sources []string `json:"sources,omitempty"`
	Sinks   []string `json:"sinks,omitempty"`
}

// WithEndpoints fills Sources and Sinks from edges.
func (r Result) WithEndpoints(edges []diagram.Edge) Result {
	r.Sources = nodeIDs(SourceNodes(r.Nodes, edges))
	r.Sinks = nodeIDs(SinkNodes(r.Nodes, edges))
	return r
}

func nodeIDs(nodes []diagram.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

// Apply runs the layout named by s, defaulting to hierarchical for unknown values.
func Apply(s Strategy, nodes []diagram.Node, edges []diagram.Edge, canvasWidth, canvasHeight float64, opts Options) Result {
	res := Result{Strategy: s}
	switch s {
	case StrategyRadial:
		res.Nodes = Radial(nodes, edges, canvasWidth, canvasHeight, opts.Radial)
		if opts.Routes {
			res.Routes = RouteRadial(res.Nodes, edges, opts.Radial)
		}
	default:
		res.Strategy = StrategyHierarchical
		res.Nodes = Hierarchical(nodes, edges, canvasWidth, canvasHeight, opts.Hierarchical)
		if opts.Routes {
			res.Routes = RouteHierarchical(res.Nodes, edges, opts.Hierarchical)
		}
	}
	return res.WithEndpoints(edges)
}
