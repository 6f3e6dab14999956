package layout

import (
	"github.com/zurto/planner/internal/diagram"
	"github.com/zurto/planner/internal/geometry"
)

// Route is the rendered connector of one edge.
type Route struct {
	EdgeID string                   `json:"edgeId"`
	Source string                   `json:"source"`
	Target string                   `json:"target"`
	Type   diagram.ConnectionType   `json:"type"`
	From   geometry.ConnectionPoint `json:"from"`
	To     geometry.ConnectionPoint `json:"to"`
	Path   geometry.Path            `json:"points"`
	D      string                   `json:"d"`
}

// RouteHierarchical routes every valid edge between hierarchically placed nodes (centre
// positions) with a 45 degree stub and an axis-aligned finish.
func RouteHierarchical(nodes []diagram.Node, edges []diagram.Edge, cfg HierarchicalConfig) []Route {
	boxOf := hierarchicalBox(cfg)
	return route(nodes, edges, func(e diagram.Edge, src, dst diagram.Node) Route {
		from, to := geometry.BestConnectionPoints(boxOf(src), boxOf(dst), cfg.Prefer45())
		return newRoute(e, from, to, geometry.Smooth45Path(from.Point, to.Point))
	})
}

// RouteRadial routes every valid edge between radially placed nodes (top-left positions)
// with a stepped orthogonal path.
func RouteRadial(nodes []diagram.Node, edges []diagram.Edge, cfg RadialConfig) []Route {
	boxOf := radialBox(cfg)
	return route(nodes, edges, func(e diagram.Edge, src, dst diagram.Node) Route {
		p := geometry.SteppedOrthogonalPath(boxOf(src), boxOf(dst), geometry.DefaultStepOffset)
		return sidedRoute(e, boxOf(src), boxOf(dst), p)
	})
}

// RouteOrthogonal routes every valid edge with one bend between the facing sides of its
// endpoints. Positions are read the way strategy s places nodes.
func RouteOrthogonal(s Strategy, nodes []diagram.Node, edges []diagram.Edge, opts Options) []Route {
	boxOf := hierarchicalBox(opts.Hierarchical)
	if s == StrategyRadial {
		boxOf = radialBox(opts.Radial)
	}
	return route(nodes, edges, func(e diagram.Edge, src, dst diagram.Node) Route {
		return sidedRoute(e, boxOf(src), boxOf(dst), geometry.OrthogonalPath(boxOf(src), boxOf(dst)))
	})
}

// RouteFlow routes the edges of a ChildFlow view from the right side of the source to the
// left side of the target, bending halfway across.
func RouteFlow(nodes []diagram.Node, edges []diagram.Edge, cfg FlowConfig) []Route {
	boxOf := func(n diagram.Node) geometry.BoundingBox {
		return geometry.BoxAt(geometry.Point{X: n.Position.X, Y: n.Position.Y}, geometry.Size{Width: cfg.NodeWidth, Height: cfg.NodeHeight})
	}
	return route(nodes, edges, func(e diagram.Edge, src, dst diagram.Node) Route {
		from, to := EdgeEndpoints(boxOf(src), boxOf(dst))
		midX := (from.X + to.X) / 2
		p := geometry.Path{from, {X: midX, Y: from.Y}, {X: midX, Y: to.Y}, to}
		return newRoute(e,
			geometry.ConnectionPoint{Point: from, Side: geometry.SideRight},
			geometry.ConnectionPoint{Point: to, Side: geometry.SideLeft}, p)
	})
}

func hierarchicalBox(cfg HierarchicalConfig) func(diagram.Node) geometry.BoundingBox {
	size := cfg.size()
	return func(n diagram.Node) geometry.BoundingBox {
		return geometry.BoxAround(geometry.Point{X: n.Position.X, Y: n.Position.Y}, size)
	}
}

func radialBox(cfg RadialConfig) func(diagram.Node) geometry.BoundingBox {
	return func(n diagram.Node) geometry.BoundingBox {
		return geometry.BoxAt(geometry.Point{X: n.Position.X, Y: n.Position.Y}, cfg.Dimensions(n))
	}
}

func sidedRoute(e diagram.Edge, src, dst geometry.BoundingBox, p geometry.Path) Route {
	from := geometry.ConnectionPoint{Point: p.Start(), Side: sideOf(src, p.Start())}
	to := geometry.ConnectionPoint{Point: p.End(), Side: sideOf(dst, p.End())}
	return newRoute(e, from, to, p)
}

func route(nodes []diagram.Node, edges []diagram.Edge, build func(e diagram.Edge, src, dst diagram.Node) Route) []Route {
	byID := make(map[string]diagram.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	valid := diagram.ValidEdges(nodes, edges)
	out := make([]Route, 0, len(valid))
	for _, e := range valid {
		out = append(out, build(e, byID[e.Source], byID[e.Target]))
	}
	return out
}

func newRoute(e diagram.Edge, from, to geometry.ConnectionPoint, p geometry.Path) Route {
	return Route{
		EdgeID: e.ID,
		Source: e.Source,
		Target: e.Target,
		Type:   e.Type,
		From:   from,
		To:     to,
		Path:   p,
		D:      p.SVG(),
	}
}

// sideOf names the box side p lies on.
func sideOf(b geometry.BoundingBox, p geometry.Point) geometry.Side {
	switch {
	case p.X == b.X:
		return geometry.SideLeft
	case p.X == b.Right():
		return geometry.SideRight
	case p.Y == b.Y:
		return geometry.SideTop
	}
	return geometry.SideBottom
}

// SourceNodes returns the nodes no valid edge points to, in input order.
func SourceNodes(nodes []diagram.Node, edges []diagram.Edge) []diagram.Node {
	targets := make(map[string]bool)
	for _, e := range diagram.ValidEdges(nodes, edges) {
		targets[e.Target] = true
	}
	return filterNodes(nodes, targets)
}

// SinkNodes returns the nodes no valid edge leaves from, in input order.
func SinkNodes(nodes []diagram.Node, edges []diagram.Edge) []diagram.Node {
	sources := make(map[string]bool)
	for _, e := range diagram.ValidEdges(nodes, edges) {
		sources[e.Source] = true
	}
	return filterNodes(nodes, sources)
}

func filterNodes(nodes []diagram.Node, exclude map[string]bool) []diagram.Node {
	out := make([]diagram.Node, 0, len(nodes))
	for _, n := range nodes {
		if !exclude[n.ID] {
			out = append(out, n)
		}
	}
	return out
}

// EdgeEndpoints returns the anchor points of a left-to-right edge between two top-left
// positioned boxes: the middle of the source's right side and of the target's left side.
func EdgeEndpoints(src, dst geometry.BoundingBox) (geometry.Point, geometry.Point) {
	return geometry.Point{X: src.Right(), Y: src.Y + src.Height/2},
		geometry.Point{X: dst.X, Y: dst.Y + dst.Height/2}
}
