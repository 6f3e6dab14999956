package diagram

import "fmt"

// ValidationError is a structural problem in a diagram. Kind-specific checks belong to
// the generation handlers.
type ValidationError struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	NodeID     string `json:"node_id,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func schemaError(nodeID, msg, suggestion string) ValidationError {
	return ValidationError{Type: "schema_error", Severity: "error", NodeID: nodeID, Message: msg, Suggestion: suggestion}
}

// Validate reports missing ids, duplicate ids, missing kinds and edges that do not
// connect two distinct known nodes. It normalizes in place: nil Properties become empty
// maps and untyped edges become depends_on.
func Validate(d *Diagram) []ValidationError {
	if d == nil {
		return []ValidationError{schemaError("", "diagram is nil", "")}
	}

	var errs []ValidationError
	known := make(map[string]bool, len(d.Nodes))
	for i := range d.Nodes {
		n := &d.Nodes[i]
		switch {
		case n.ID == "":
			errs = append(errs, schemaError("", fmt.Sprintf("node at index %d has empty id", i), "Set node.id"))
		case known[n.ID]:
			errs = append(errs, schemaError(n.ID, "duplicate node id: "+n.ID, "Use unique ids for each node"))
		default:
			known[n.ID] = true
		}
		if n.Kind == "" {
			errs = append(errs, schemaError(n.ID, "node.type is required", "Set node.type (e.g. server, utility, file)"))
		}
		if n.Properties == nil {
			n.Properties = make(map[string]any)
		}
	}

	for i := range d.Edges {
		e := &d.Edges[i]
		switch {
		case e.Source == "" || e.Target == "":
			errs = append(errs, schemaError("", fmt.Sprintf("edge at index %d must have source and target", i),
				"Set edge.source and edge.target to node ids"))
		case e.Source == e.Target:
			errs = append(errs, schemaError(e.Source, "edge connects node to itself: "+e.Source,
				"Remove the connection or point it at another node"))
		case !known[e.Source]:
			errs = append(errs, schemaError("", "edge source node not found: "+e.Source, "Reference an existing node id"))
		case !known[e.Target]:
			errs = append(errs, schemaError("", "edge target node not found: "+e.Target, "Reference an existing node id"))
		}
		if e.Type == "" {
			e.Type = DependsOn
		}
	}
	return errs
}

// ValidEdges returns the edges whose endpoints both exist in nodes and differ.
// Dangling and self-referential edges are dropped silently; order is preserved.
func ValidEdges(nodes []Node, edges []Edge) []Edge {
	ids := make(map[string]bool, len(nodes))
	for i := range nodes {
		ids[nodes[i].ID] = true
	}
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if e.Source == e.Target || !ids[e.Source] || !ids[e.Target] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// NodeByID returns the node with the given id, or nil.
func (d *Diagram) NodeByID(id string) *Node {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i]
		}
	}
	return nil
}

// EdgesFrom returns the edges leaving the given node.
func (d *Diagram) EdgesFrom(id string) []Edge {
	var out []Edge
	for _, e := range d.Edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}
