package layout

import (
	"github.com/zurto/planner/internal/diagram"
	"github.com/zurto/planner/internal/geometry"
	"github.com/zurto/planner/internal/hierarchy"
)

// ChildRadial lays out the drill-in view of parent: the parent in the centre, flagged as
// the view parent, and its descendants on rings. Each ring spans the full circle.
// Descendants whose parent is not in the view land on the first ring.
func ChildRadial(parent diagram.Node, children []diagram.Node, canvasWidth, canvasHeight float64, cfg RadialConfig) []diagram.Node {
	view := childView(parent, children, false)
	tree := hierarchy.Build(view, nil, hierarchy.Options{Root: parent.ID, MaxOrphanDepth: 1})
	// The view parent always takes the main footprint, whatever its kind.
	size := func(n diagram.Node) geometry.Size {
		if n.ID == parent.ID {
			return geometry.Size{Width: cfg.MainNodeWidth, Height: cfg.MainNodeHeight}
		}
		return cfg.Dimensions(n)
	}
	placed := placeRings(tree, canvasWidth/2, canvasHeight/2, cfg, fullSpread, size)
	return markViewParent(withPositions(childView(parent, children, false), placed))
}

// ChildFlow lays out the drill-in view of parent left to right: the parent on the left of
// the centre and each depth in its own column, stacked vertically around the centre line.
// Children without a parent id hang directly off the view parent.
func ChildFlow(parent diagram.Node, children []diagram.Node, canvasWidth, canvasHeight float64, cfg FlowConfig) []diagram.Node {
	cx, cy := canvasWidth/2, canvasHeight/2
	tree := hierarchy.Build(childView(parent, children, true), nil, hierarchy.Options{Root: parent.ID, MaxOrphanDepth: 1})
	levels := tree.Levels()

	placed := map[string]geometry.Point{
		parent.ID: {X: cx - cfg.NodeWidth/2, Y: cy - cfg.NodeHeight/2},
	}
	for depth := 1; depth < len(levels); depth++ {
		members := levels[depth]
		count := float64(len(members))
		total := count*cfg.NodeHeight + (count-1)*cfg.NodeSeparation
		x := cx + float64(depth)*cfg.RankSeparation - cfg.NodeWidth/2
		y := cy - total/2
		for _, n := range members {
			placed[n.ID] = geometry.Point{X: x, Y: y}
			y += cfg.NodeHeight + cfg.NodeSeparation
		}
	}
	return markViewParent(withPositions(childView(parent, children, false), placed))
}

// childView returns parent followed by children, dropping any child that repeats the
// parent's id. With adopt set, children without a parent id are attached to parent.
func childView(parent diagram.Node, children []diagram.Node, adopt bool) []diagram.Node {
	out := make([]diagram.Node, 0, len(children)+1)
	out = append(out, parent)
	for _, c := range children {
		if c.ID == parent.ID {
			continue
		}
		if adopt && c.ParentID == "" {
			c.ParentID = parent.ID
		}
		out = append(out, c)
	}
	return out
}

func markViewParent(nodes []diagram.Node) []diagram.Node {
	for i := range nodes {
		nodes[i].ViewParent = i == 0
	}
	return nodes
}
