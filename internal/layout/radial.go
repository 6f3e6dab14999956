package layout

import (
	"math"
	"sort"

	"github.com/zurto/planner/internal/diagram"
	"github.com/zurto/planner/internal/geometry"
	"github.com/zurto/planner/internal/hierarchy"
	"github.com/zurto/planner/internal/logger"
)

// Radial places the root at the canvas centre and every other node on a ring whose radius
// grows with depth. Positions are top-left corners. Without a root every node goes on one
// ring, see CircleFallback.
func Radial(nodes []diagram.Node, edges []diagram.Edge, canvasWidth, canvasHeight float64, cfg RadialConfig) []diagram.Node {
	if len(nodes) == 0 {
		return []diagram.Node{}
	}
	cx, cy := canvasWidth/2, canvasHeight/2

	opts := hierarchy.DefaultOptions()
	opts.RootPolicy = hierarchy.RequireRoot
	tree := hierarchy.Build(nodes, edges, opts)
	if tree.Root == "" {
		logger.Default.Debug("radial layout without root, using circle", "nodes", len(nodes))
		return CircleFallback(nodes, cx, cy, cfg)
	}

	placed := placeRings(tree, cx, cy, cfg, ringSpread, cfg.Dimensions)

	logger.Default.Debug("radial layout",
		"root", tree.Root,
		"nodes", len(nodes),
		"rings", tree.MaxDepth(),
		"canvas_width", canvasWidth,
		"canvas_height", canvasHeight)
	return withPositions(nodes, placed)
}

// CircleFallback spreads nodes evenly on a single ring around (cx, cy). A single node is centred.
func CircleFallback(nodes []diagram.Node, cx, cy float64, cfg RadialConfig) []diagram.Node {
	out := make([]diagram.Node, len(nodes))
	if len(nodes) == 1 {
		s := cfg.Dimensions(nodes[0])
		out[0] = nodes[0].At(cx-s.Width/2, cy-s.Height/2)
		return out
	}
	step := 360 / float64(len(nodes))
	for i, n := range nodes {
		p := onRing(cx, cy, cfg.RingSpacing, cfg.StartAngle+float64(i)*step, cfg.Dimensions(n))
		out[i] = n.At(p.X, p.Y)
	}
	return out
}

// spreadFunc returns the first angle and the step between neighbours for a ring of count nodes.
type spreadFunc func(count int, cfg RadialConfig) (start, step float64)

// ringSpread claims MinAngle per node, capped at the full circle, centred on StartAngle.
func ringSpread(count int, cfg RadialConfig) (float64, float64) {
	if count == 1 {
		return cfg.StartAngle, 0
	}
	total := math.Min(360, float64(count)*cfg.MinAngle)
	if total >= 360 {
		return cfg.StartAngle - total/2, 360 / float64(count)
	}
	return cfg.StartAngle - total/2, total / float64(count-1)
}

// fullSpread always uses the whole circle starting at StartAngle.
func fullSpread(count int, cfg RadialConfig) (float64, float64) {
	return cfg.StartAngle, 360 / float64(count)
}

// placeRings returns top-left positions for every node in tree. size gives each node's
// footprint.
func placeRings(tree *hierarchy.Tree, cx, cy float64, cfg RadialConfig, spread spreadFunc, size func(diagram.Node) geometry.Size) map[string]geometry.Point {
	levels := tree.Levels()
	placed := make(map[string]geometry.Point)

	root, _ := tree.Node(tree.Root)
	rs := size(root)
	placed[root.ID] = geometry.Point{X: cx - rs.Width/2, Y: cy - rs.Height/2}

	for depth := 1; depth < len(levels); depth++ {
		members := append([]diagram.Node(nil), levels[depth]...)
		if len(members) == 0 {
			continue
		}
		sortByParentAngle(members, tree, placed, cx, cy, size)

		radius := float64(depth) * cfg.RingSpacing
		start, step := spread(len(members), cfg)
		for i, n := range members {
			placed[n.ID] = onRing(cx, cy, radius, start+float64(i)*step, size(n))
		}
	}
	return placed
}

// onRing returns the top-left corner of a box of size s centred on the ring at angle degrees.
func onRing(cx, cy, radius, angle float64, s geometry.Size) geometry.Point {
	rad := angle * math.Pi / 180
	return geometry.Point{
		X: cx + radius*math.Cos(rad) - s.Width/2,
		Y: cy + radius*math.Sin(rad) - s.Height/2,
	}
}

// sortByParentAngle orders a ring by the angle of each node's already placed parent so
// siblings stay together. Nodes without a placed parent go first in their existing order.
func sortByParentAngle(members []diagram.Node, tree *hierarchy.Tree, placed map[string]geometry.Point, cx, cy float64, size func(diagram.Node) geometry.Size) {
	angle := make(map[string]float64, len(members))
	for _, n := range members {
		pid, ok := tree.Parent(n.ID)
		if !ok {
			continue
		}
		pos, ok := placed[pid]
		if !ok {
			continue
		}
		parent, _ := tree.Node(pid)
		c := geometry.BoxAt(pos, size(parent)).Center()
		angle[n.ID] = math.Atan2(c.Y-cy, c.X-cx)
	}
	sort.SliceStable(members, func(i, j int) bool {
		ai, okI := angle[members[i].ID]
		aj, okJ := angle[members[j].ID]
		switch {
		case !okI:
			return okJ
		case !okJ:
			return false
		}
		return ai < aj
	})
}

func withPositions(nodes []diagram.Node, placed map[string]geometry.Point) []diagram.Node {
	out := make([]diagram.Node, len(nodes))
	for i, n := range nodes {
		p := placed[n.ID]
		out[i] = n.At(p.X, p.Y)
	}
	return out
}
