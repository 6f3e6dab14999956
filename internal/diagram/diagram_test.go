package diagram

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeUnmarshal_ServerDetails(t *testing.T) {
	data := `{"id":"api","label":"API","type":"server","x":10,"y":20,
		"serverType":"express","status":"running","port":3000,"fileName":"ignored.js"}`

	var n Node
	require.NoError(t, json.Unmarshal([]byte(data), &n))

	assert.Equal(t, "api", n.ID)
	assert.Equal(t, KindServer, n.Kind)
	assert.Equal(t, Position{X: 10, Y: 20}, n.Position)
	s, ok := n.Server()
	require.True(t, ok)
	assert.Equal(t, "express", s.ServerType)
	assert.Equal(t, 3000, s.Port)
	_, ok = n.File()
	assert.False(t, ok)
}

func TestNodeUnmarshal_PositionObject(t *testing.T) {
	var n Node
	require.NoError(t, json.Unmarshal([]byte(`{"id":"f","type":"file","parentId":"api",
		"position":{"x":1,"y":2},"fileName":"index","fileExtension":"ts"}`), &n))

	assert.Equal(t, Position{X: 1, Y: 2}, n.Position)
	assert.Equal(t, "api", n.ParentID)
	f, ok := n.File()
	require.True(t, ok)
	assert.Equal(t, FileDetails{FileName: "index", FileExtension: "ts"}, f)
}

func TestNodeMarshal_RoundTripsKindFields(t *testing.T) {
	acc := 0.9
	n := NewNode("plan", "Plan", KindUtility)
	n, ok := n.WithDetails(UtilityDetails{UtilityType: UtilityPlanning, AIAccuracy: &acc})
	require.True(t, ok)

	data, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"utilityType":"planning"`)
	assert.NotContains(t, string(data), "serverType")

	var back Node
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.IsPlanning())
	assert.True(t, back.IsMain())
}

func TestWithDetails_RejectsForeignKind(t *testing.T) {
	n := NewNode("f", "f", KindFile)

	got, ok := n.WithDetails(ServerDetails{Port: 80})
	assert.False(t, ok)
	_, isServer := got.Server()
	assert.False(t, isServer)
}

func TestIsPlanningAndIsMain(t *testing.T) {
	assert.True(t, NewNode("p", "", KindPlanning).IsPlanning())
	assert.True(t, NewNode("s", "", KindServer).IsMain())
	assert.False(t, NewNode("b", "", KindBackend).IsMain())
	assert.False(t, NewNode("u", "", KindUtility).IsPlanning())
}

func TestEdgeUnmarshal_AlternateFieldNames(t *testing.T) {
	var edges []Edge
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id":"e1","source":"a","target":"b","type":"calls"},
		{"id":"e2","sourceId":"a","targetId":"c"},
		{"id":"e3","sourceNodeId":"b","targetNodeId":"c","relationshipType":"depends_on"}
	]`), &edges))

	assert.Equal(t, Edge{ID: "e1", Source: "a", Target: "b", Type: Calls}, edges[0])
	assert.Equal(t, Edge{ID: "e2", Source: "a", Target: "c"}, edges[1])
	assert.Equal(t, Edge{ID: "e3", Source: "b", Target: "c", Type: DependsOn}, edges[2])
}

func TestValidate(t *testing.T) {
	d := &Diagram{
		Nodes: []Node{
			NewNode("a", "A", KindServer),
			NewNode("a", "dup", KindFile),
			{ID: "b"},
		},
		Edges: []Edge{
			{ID: "e1", Source: "a", Target: "b"},
			{ID: "e2", Source: "a", Target: "missing"},
			{ID: "e3", Source: "a"},
			{ID: "e4", Source: "b", Target: "b"},
		},
	}

	errs := Validate(d)

	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	assert.Equal(t, []string{
		"duplicate node id: a",
		"node.type is required",
		"edge target node not found: missing",
		"edge at index 2 must have source and target",
		"edge connects node to itself: b",
	}, msgs)
	assert.Equal(t, DependsOn, d.Edges[0].Type)
	assert.NotNil(t, d.Nodes[0].Properties)
}

func TestValidate_Nil(t *testing.T) {
	errs := Validate(nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "diagram is nil", errs[0].Message)
}

func TestEdgesFrom(t *testing.T) {
	d := &Diagram{Edges: []Edge{
		{ID: "e1", Source: "a", Target: "b"},
		{ID: "e2", Source: "b", Target: "a"},
		{ID: "e3", Source: "a", Target: "c"},
	}}

	got := d.EdgesFrom("a")
	require.Len(t, got, 2)
	assert.Equal(t, "e3", got[1].ID)
	assert.Nil(t, d.NodeByID("a"))
}

func TestValidEdges(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}}
	edges := []Edge{
		{ID: "ok", Source: "a", Target: "b"},
		{ID: "self", Source: "a", Target: "a"},
		{ID: "dangling", Source: "a", Target: "z"},
	}

	got := ValidEdges(nodes, edges)
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].ID)
}

func TestPropertyGetters(t *testing.T) {
	props := map[string]any{
		"name": "web",
		"port": float64(8080),
		"env":  map[string]any{"A": "1", "B": 2},
	}

	assert.Equal(t, "web", PropString(props, "name"))
	assert.Equal(t, 8080, PropInt(props, "port"))
	assert.Equal(t, map[string]string{"A": "1"}, PropStringMap(props, "env"))
	assert.Empty(t, PropString(nil, "name"))
	assert.Zero(t, PropInt(props, "name"))
	assert.Nil(t, PropStringMap(props, "name"))
}
