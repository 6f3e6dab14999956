// Package hierarchy turns a flat node list into the rooted tree the layout engines place.
//
// The tree is built from explicit parent links plus child_of/depends_on connections for
// nodes that have no explicit parent. Depth is assigned breadth-first from the root;
// nodes the root cannot reach are orphans and are spread across the first few levels.
package hierarchy

import (
	"sort"

	"github.com/zurto/planner/internal/diagram"
)

// RootPolicy controls what happens when no planning or parentless node exists.
type RootPolicy int

const (
	// FirstNodeFallback roots the tree at the first node.
	FirstNodeFallback RootPolicy = iota
	// RequireRoot leaves the tree rootless.
	RequireRoot
)

// Options configures Build.
type Options struct {
	RootPolicy RootPolicy
	// InferFromConnections adds child_of/depends_on edges as parent links for nodes
	// without an explicit parent.
	InferFromConnections bool
	// MaxOrphanDepth caps the round-robin depth given to unreachable nodes.
	MaxOrphanDepth int
	// Root forces the root node when it names a node in the input.
	Root string
}

// DefaultOptions returns the options used by the hierarchical layout.
func DefaultOptions() Options {
	return Options{
		RootPolicy:           FirstNodeFallback,
		InferFromConnections: true,
		MaxOrphanDepth:       3,
	}
}

// Tree is the result of Build. It never aliases the caller's slices.
type Tree struct {
	Root string

	nodes    []diagram.Node
	index    map[string]int
	children map[string][]string
	parent   map[string]string
	depth    map[string]int
	degree   map[string]int
	order    []string // reachable nodes in discovery order, then orphans in input order
	orphans  []string
	maxDepth int
}

// Build computes the tree for nodes and edges.
func Build(nodes []diagram.Node, edges []diagram.Edge, opts Options) *Tree {
	if opts.MaxOrphanDepth <= 0 {
		opts.MaxOrphanDepth = 1
	}
	t := &Tree{
		nodes:    append([]diagram.Node(nil), nodes...),
		index:    make(map[string]int, len(nodes)),
		children: make(map[string][]string, len(nodes)),
		parent:   make(map[string]string, len(nodes)),
		depth:    make(map[string]int, len(nodes)),
		degree:   make(map[string]int, len(nodes)),
	}
	for i := range t.nodes {
		if _, dup := t.index[t.nodes[i].ID]; !dup {
			t.index[t.nodes[i].ID] = i
		}
	}
	if len(t.nodes) == 0 {
		return t
	}

	valid := diagram.ValidEdges(t.nodes, edges)
	for _, e := range valid {
		t.degree[e.Source]++
		t.degree[e.Target]++
	}

	if _, ok := t.index[opts.Root]; ok && opts.Root != "" {
		t.Root = opts.Root
	} else {
		t.Root = selectRoot(t.nodes, opts.RootPolicy)
	}
	t.linkChildren(valid, opts.InferFromConnections)
	if t.Root == "" {
		return t
	}
	t.assignDepths(opts.MaxOrphanDepth)
	return t
}

func selectRoot(nodes []diagram.Node, policy RootPolicy) string {
	for i := range nodes {
		if nodes[i].IsPlanning() {
			return nodes[i].ID
		}
	}
	for i := range nodes {
		if nodes[i].ParentID == "" {
			return nodes[i].ID
		}
	}
	if policy == FirstNodeFallback {
		return nodes[0].ID
	}
	return ""
}

func (t *Tree) linkChildren(edges []diagram.Edge, infer bool) {
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.ParentID == "" || n.ParentID == n.ID {
			continue
		}
		if _, ok := t.index[n.ParentID]; ok {
			t.children[n.ParentID] = append(t.children[n.ParentID], n.ID)
		}
	}

	if infer {
		for _, e := range edges {
			if e.Type != diagram.ChildOf && e.Type != diagram.DependsOn {
				continue
			}
			src := t.nodes[t.index[e.Source]]
			if src.ParentID != "" {
				continue
			}
			if !contains(t.children[e.Target], e.Source) {
				t.children[e.Target] = append(t.children[e.Target], e.Source)
			}
		}
	}

	for id, kids := range t.children {
		sort.SliceStable(kids, func(a, b int) bool {
			return t.degree[kids[a]] > t.degree[kids[b]]
		})
		t.children[id] = kids
	}
}

func (t *Tree) assignDepths(maxOrphan int) {
	t.depth[t.Root] = 0
	t.order = append(t.order, t.Root)
	queue := []string{t.Root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range t.children[id] {
			if _, seen := t.depth[child]; seen {
				continue
			}
			t.depth[child] = t.depth[id] + 1
			t.parent[child] = id
			t.order = append(t.order, child)
			queue = append(queue, child)
		}
	}

	level := 1
	for i := range t.nodes {
		id := t.nodes[i].ID
		if _, seen := t.depth[id]; seen {
			continue
		}
		t.depth[id] = level
		if p := t.nodes[i].ParentID; p != "" {
			if _, ok := t.index[p]; ok {
				t.parent[id] = p
			}
		}
		t.order = append(t.order, id)
		t.orphans = append(t.orphans, id)
		level = min(level+1, maxOrphan)
	}

	for _, d := range t.depth {
		t.maxDepth = max(t.maxDepth, d)
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Node returns the node with the given id.
func (t *Tree) Node(id string) (diagram.Node, bool) {
	i, ok := t.index[id]
	if !ok {
		return diagram.Node{}, false
	}
	return t.nodes[i], true
}

// Depth returns the depth of id, and false when the tree is rootless or id is unknown.
func (t *Tree) Depth(id string) (int, bool) {
	d, ok := t.depth[id]
	return d, ok
}

// Parent returns the node through which id was reached, or its explicit parent for orphans.
func (t *Tree) Parent(id string) (string, bool) {
	p, ok := t.parent[id]
	return p, ok
}

// Children returns the ordered children of id.
func (t *Tree) Children(id string) []string {
	return append([]string(nil), t.children[id]...)
}

// Degree is the number of valid connections touching id.
func (t *Tree) Degree(id string) int { return t.degree[id] }

// Orphans returns the nodes not reachable from the root, in input order.
func (t *Tree) Orphans() []string { return append([]string(nil), t.orphans...) }

// MaxDepth is the deepest assigned level.
func (t *Tree) MaxDepth() int { return t.maxDepth }

// Levels groups nodes by depth. Within a level, reachable nodes come in
// breadth-first discovery order followed by orphans in input order.
func (t *Tree) Levels() [][]diagram.Node {
	if t.Root == "" {
		return nil
	}
	levels := make([][]diagram.Node, t.maxDepth+1)
	for _, id := range t.order {
		d := t.depth[id]
		levels[d] = append(levels[d], t.nodes[t.index[id]])
	}
	return levels
}
