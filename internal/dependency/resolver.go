package dependency

import (
	"github.com/cockroachdb/errors"

	"github.com/zurto/planner/internal/diagram"
)

// ErrCycle is returned when the depends_on graph contains a cycle.
var ErrCycle = errors.New("dependency cycle detected")

// Resolve orders the nodes of d by their depends_on edges (source depends on target) and returns:
// - ordered: node IDs with dependencies first
// - tiers: node IDs grouped by depth (tier 0 = no deps, tier 1 = depend only on tier 0, etc.)
// Within a tier IDs keep diagram order. Other connection types, dangling and self edges are ignored.
func Resolve(d *diagram.Diagram) (ordered []string, tiers [][]string, err error) {
	if d == nil || len(d.Nodes) == 0 {
		return nil, nil, nil
	}

	position := make(map[string]int, len(d.Nodes))
	for i := range d.Nodes {
		if _, dup := position[d.Nodes[i].ID]; !dup {
			position[d.Nodes[i].ID] = i
		}
	}

	// pending[n] = number of unresolved dependencies of n; dependents[t] = nodes waiting on t
	pending := make(map[string]int, len(position))
	dependents := make(map[string][]string)
	for _, e := range diagram.ValidEdges(d.Nodes, d.Edges) {
		if e.Type != diagram.DependsOn && e.Type != "" {
			continue
		}
		pending[e.Source]++
		dependents[e.Target] = append(dependents[e.Target], e.Source)
	}

	var queue []string
	for i := range d.Nodes {
		id := d.Nodes[i].ID
		if position[id] == i && pending[id] == 0 {
			queue = append(queue, id)
		}
	}

	ordered = make([]string, 0, len(position))
	for len(queue) > 0 {
		tiers = append(tiers, queue)
		ordered = append(ordered, queue...)
		var next []string
		for _, u := range queue {
			for _, v := range dependents[u] {
				pending[v]--
				if pending[v] == 0 {
					next = append(next, v)
				}
			}
		}
		sortByPosition(next, position)
		queue = next
	}

	if len(ordered) != len(position) {
		return nil, nil, errors.Wrapf(ErrCycle, "%d of %d nodes unresolved", len(position)-len(ordered), len(position))
	}
	return ordered, tiers, nil
}

func sortByPosition(ids []string, position map[string]int) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && position[ids[j]] < position[ids[j-1]]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
}
