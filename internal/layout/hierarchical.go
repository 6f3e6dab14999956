package layout

import (
	"github.com/zurto/planner/internal/diagram"
	"github.com/zurto/planner/internal/geometry"
	"github.com/zurto/planner/internal/hierarchy"
	"github.com/zurto/planner/internal/logger"
)

// HierarchicalResult is the full outcome of a hierarchical pass.
type HierarchicalResult struct {
	Nodes []diagram.Node
	// Root is the id placed at the top anchor.
	Root string
	// Exhausted lists nodes that still collided after MaxAdjustments shifts and
	// were kept at the last candidate position.
	Exhausted []string
}

// Hierarchical places nodes as a tree growing down from the root. Positions are node centres.
func Hierarchical(nodes []diagram.Node, edges []diagram.Edge, canvasWidth, canvasHeight float64, cfg HierarchicalConfig) []diagram.Node {
	return HierarchicalLayout(nodes, edges, canvasWidth, canvasHeight, cfg).Nodes
}

// HierarchicalLayout is Hierarchical with placement diagnostics.
func HierarchicalLayout(nodes []diagram.Node, edges []diagram.Edge, canvasWidth, canvasHeight float64, cfg HierarchicalConfig) HierarchicalResult {
	if len(nodes) == 0 {
		return HierarchicalResult{Nodes: []diagram.Node{}}
	}

	tree := hierarchy.Build(nodes, edges, hierarchy.DefaultOptions())
	levels := tree.Levels()
	centerX := canvasWidth / 2
	size := cfg.size()

	placed := make(map[string]geometry.Point, len(nodes))
	boxes := make([]geometry.BoundingBox, 0, len(nodes))
	res := HierarchicalResult{Root: tree.Root}

	root := geometry.Point{X: centerX, Y: cfg.TopMargin}
	placed[tree.Root] = root
	boxes = append(boxes, geometry.BoxAround(root, size))

	for level := 1; level < len(levels); level++ {
		members := levels[level]
		y := cfg.TopMargin + float64(level)*cfg.LayerDistance
		startX := centerX - float64(len(members))*cfg.NodeSpacing/2 + cfg.NodeSpacing/2

		for i, n := range members {
			if _, done := placed[n.ID]; done {
				continue
			}
			x, ok := resolveCollision(startX+float64(i)*cfg.NodeSpacing, y, size, boxes, cfg)
			if !ok {
				res.Exhausted = append(res.Exhausted, n.ID)
			}
			p := geometry.Point{X: x, Y: y}
			placed[n.ID] = p
			boxes = append(boxes, geometry.BoxAround(p, size))
		}
	}

	res.Nodes = make([]diagram.Node, len(nodes))
	for i, n := range nodes {
		p := placed[n.ID]
		res.Nodes[i] = n.At(p.X, p.Y)
	}

	logger.Default.Debug("hierarchical layout",
		"root", tree.Root,
		"nodes", len(nodes),
		"levels", len(levels),
		"orphans", len(tree.Orphans()),
		"canvas_width", canvasWidth,
		"canvas_height", canvasHeight,
		"exhausted", len(res.Exhausted))
	return res
}

// resolveCollision shifts x right until the box clears everything placed, giving up after
// cfg.MaxAdjustments shifts. It reports false when the accepted position still collides.
func resolveCollision(x, y float64, size geometry.Size, placed []geometry.BoundingBox, cfg HierarchicalConfig) (float64, bool) {
	shift := cfg.MinNodeSeparation + cfg.NodeWidth
	for attempt := 0; attempt < cfg.MaxAdjustments; attempt++ {
		if !geometry.CollidesAny(geometry.BoxAround(geometry.Point{X: x, Y: y}, size), placed, cfg.MinNodeSeparation) {
			return x, true
		}
		x += shift
	}
	return x, !geometry.CollidesAny(geometry.BoxAround(geometry.Point{X: x, Y: y}, size), placed, cfg.MinNodeSeparation)
}
