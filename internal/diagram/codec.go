package diagram

import "encoding/json"

// nodeJSON is the flat wire shape used by the canvas API. Coordinates arrive either
// as a position object or as top-level x/y.
type nodeJSON struct {
	ID           string         `json:"id"`
	Label        string         `json:"label"`
	Kind         Kind           `json:"type"`
	ParentID     string         `json:"parentId,omitempty"`
	Position     *Position      `json:"position,omitempty"`
	X            *float64       `json:"x,omitempty"`
	Y            *float64       `json:"y,omitempty"`
	IsViewParent bool           `json:"isViewParent,omitempty"`
	Properties   map[string]any `json:"properties,omitempty"`

	ServerType    string   `json:"serverType,omitempty"`
	Status        string   `json:"status,omitempty"`
	Port          int      `json:"port,omitempty"`
	CPUUsage      *float64 `json:"cpuUsage,omitempty"`
	MemoryUsage   *float64 `json:"memoryUsage,omitempty"`
	Uptime        string   `json:"uptime,omitempty"`
	LastBuild     string   `json:"lastBuild,omitempty"`
	FileName      string   `json:"fileName,omitempty"`
	FileExtension string   `json:"fileExtension,omitempty"`
	UtilityType   string   `json:"utilityType,omitempty"`
	AIAccuracy    *float64 `json:"aiAccuracy,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (n Node) MarshalJSON() ([]byte, error) {
	pos := n.Position
	w := nodeJSON{
		ID:           n.ID,
		Label:        n.Label,
		Kind:         n.Kind,
		ParentID:     n.ParentID,
		Position:     &pos,
		IsViewParent: n.ViewParent,
		Properties:   n.Properties,
	}
	switch d := n.details.(type) {
	case ServerDetails:
		w.ServerType, w.Status, w.Port = d.ServerType, d.Status, d.Port
		w.CPUUsage, w.MemoryUsage = d.CPUUsage, d.MemoryUsage
		w.Uptime, w.LastBuild = d.Uptime, d.LastBuild
	case FileDetails:
		w.FileName, w.FileExtension = d.FileName, d.FileExtension
	case UtilityDetails:
		w.UtilityType, w.AIAccuracy = d.UtilityType, d.AIAccuracy
	case PlanningDetails:
		w.AIAccuracy = d.AIAccuracy
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler. Fields that do not belong to the node's
// kind are dropped.
func (n *Node) UnmarshalJSON(data []byte) error {
	var w nodeJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*n = Node{
		ID:         w.ID,
		Label:      w.Label,
		Kind:       w.Kind,
		ParentID:   w.ParentID,
		ViewParent: w.IsViewParent,
		Properties: w.Properties,
	}
	if w.Position != nil {
		n.Position = *w.Position
	}
	if w.X != nil {
		n.Position.X = *w.X
	}
	if w.Y != nil {
		n.Position.Y = *w.Y
	}
	switch {
	case w.Kind.IsService():
		n.details = ServerDetails{
			ServerType: w.ServerType, Status: w.Status, Port: w.Port,
			CPUUsage: w.CPUUsage, MemoryUsage: w.MemoryUsage,
			Uptime: w.Uptime, LastBuild: w.LastBuild,
		}
	case w.Kind == KindFile:
		n.details = FileDetails{FileName: w.FileName, FileExtension: w.FileExtension}
	case w.Kind == KindUtility:
		n.details = UtilityDetails{UtilityType: w.UtilityType, AIAccuracy: w.AIAccuracy}
	case w.Kind == KindPlanning:
		n.details = PlanningDetails{AIAccuracy: w.AIAccuracy}
	}
	return nil
}

// UnmarshalJSON accepts both source/target and the canvas API's sourceId/targetId
// (or sourceNodeId/targetNodeId with relationshipType).
func (e *Edge) UnmarshalJSON(data []byte) error {
	var w struct {
		ID               string         `json:"id"`
		Source           string         `json:"source"`
		Target           string         `json:"target"`
		SourceID         string         `json:"sourceId"`
		TargetID         string         `json:"targetId"`
		SourceNodeID     string         `json:"sourceNodeId"`
		TargetNodeID     string         `json:"targetNodeId"`
		Type             ConnectionType `json:"type"`
		RelationshipType ConnectionType `json:"relationshipType"`
		Properties       map[string]any `json:"properties"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = Edge{
		ID:         w.ID,
		Source:     firstNonEmpty(w.Source, w.SourceID, w.SourceNodeID),
		Target:     firstNonEmpty(w.Target, w.TargetID, w.TargetNodeID),
		Type:       ConnectionType(firstNonEmpty(string(w.Type), string(w.RelationshipType))),
		Properties: w.Properties,
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
