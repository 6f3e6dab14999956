package diagram

// Diagram is the root structure of a project canvas: nodes plus the typed connections between them.
type Diagram struct {
	Metadata Metadata `json:"metadata"`
	Nodes    []Node   `json:"nodes"`
	Edges    []Edge   `json:"edges"`
}

// Metadata holds diagram-level information.
type Metadata struct {
	Version     string `json:"version"`
	ProjectID   string `json:"projectId,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Environment string `json:"environment"`
}

// Kind is the node type tag.
type Kind string

const (
	KindServer     Kind = "server"
	KindFile       Kind = "file"
	KindUtility    Kind = "utility"
	KindPlanning   Kind = "planning"
	KindBackend    Kind = "backend"
	KindFrontend   Kind = "frontend"
	KindDatabase   Kind = "database"
	KindAPI        Kind = "api"
	KindDiscordBot Kind = "discord-bot"
)

// IsService reports whether nodes of this kind run as a container and carry ServerDetails.
func (k Kind) IsService() bool {
	switch k {
	case KindServer, KindBackend, KindFrontend, KindDatabase, KindAPI, KindDiscordBot:
		return true
	}
	return false
}

// UtilityPlanning is the utility type of the project planning hub.
const UtilityPlanning = "planning"

// Position holds x,y canvas coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ConnectionType tags an edge.
type ConnectionType string

const (
	DependsOn  ConnectionType = "depends_on"
	ChildOf    ConnectionType = "child_of"
	ConnectsTo ConnectionType = "connects_to"
	Calls      ConnectionType = "calls"
	Generates  ConnectionType = "generates"
	Deploys    ConnectionType = "deploys"
	Implements ConnectionType = "implements"
	References ConnectionType = "references"
	Contains   ConnectionType = "contains"
)

// Edge is a directed relationship between two nodes.
type Edge struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Type       ConnectionType `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Details is the kind-specific payload of a node. Only the types in this package implement it.
type Details interface {
	details()
}

// ServerDetails is carried by server and other service kinds.
type ServerDetails struct {
	ServerType  string   `json:"serverType,omitempty"`
	Status      string   `json:"status,omitempty"` // running, stopped, error, starting, stopping
	Port        int      `json:"port,omitempty"`
	CPUUsage    *float64 `json:"cpuUsage,omitempty"`
	MemoryUsage *float64 `json:"memoryUsage,omitempty"`
	Uptime      string   `json:"uptime,omitempty"`
	LastBuild   string   `json:"lastBuild,omitempty"`
}

// FileDetails is carried by file nodes.
type FileDetails struct {
	FileName      string `json:"fileName,omitempty"`
	FileExtension string `json:"fileExtension,omitempty"`
}

// UtilityDetails is carried by utility nodes.
type UtilityDetails struct {
	UtilityType string   `json:"utilityType,omitempty"`
	AIAccuracy  *float64 `json:"aiAccuracy,omitempty"`
}

// PlanningDetails is carried by planning nodes.
type PlanningDetails struct {
	AIAccuracy *float64 `json:"aiAccuracy,omitempty"`
}

func (ServerDetails) details()   {}
func (FileDetails) details()     {}
func (UtilityDetails) details()  {}
func (PlanningDetails) details() {}

// Node is a positioned entity on the canvas. Kind-specific fields live behind the
// Server/File/Utility/Planning accessors, which only succeed for the matching kind.
type Node struct {
	ID         string
	Label      string
	Kind       Kind
	ParentID   string
	Position   Position
	ViewParent bool
	Properties map[string]any

	details Details
}

// NewNode returns a node of the given kind with zero-valued details for that kind.
func NewNode(id, label string, kind Kind) Node {
	n := Node{ID: id, Label: label, Kind: kind}
	n.details = zeroDetails(kind)
	return n
}

func zeroDetails(kind Kind) Details {
	switch {
	case kind.IsService():
		return ServerDetails{}
	case kind == KindFile:
		return FileDetails{}
	case kind == KindUtility:
		return UtilityDetails{}
	case kind == KindPlanning:
		return PlanningDetails{}
	}
	return nil
}

// WithDetails returns a copy carrying d. It reports false and leaves the node unchanged
// when d does not belong to the node's kind.
func (n Node) WithDetails(d Details) (Node, bool) {
	want := zeroDetails(n.Kind)
	if want == nil || d == nil {
		return n, false
	}
	switch d.(type) {
	case ServerDetails:
		if _, ok := want.(ServerDetails); !ok {
			return n, false
		}
	case FileDetails:
		if _, ok := want.(FileDetails); !ok {
			return n, false
		}
	case UtilityDetails:
		if _, ok := want.(UtilityDetails); !ok {
			return n, false
		}
	case PlanningDetails:
		if _, ok := want.(PlanningDetails); !ok {
			return n, false
		}
	}
	n.details = d
	return n, true
}

// Server returns the server details of a service node.
func (n Node) Server() (ServerDetails, bool) {
	if !n.Kind.IsService() {
		return ServerDetails{}, false
	}
	d, _ := n.details.(ServerDetails)
	return d, true
}

// File returns the details of a file node.
func (n Node) File() (FileDetails, bool) {
	if n.Kind != KindFile {
		return FileDetails{}, false
	}
	d, _ := n.details.(FileDetails)
	return d, true
}

// Utility returns the details of a utility node.
func (n Node) Utility() (UtilityDetails, bool) {
	if n.Kind != KindUtility {
		return UtilityDetails{}, false
	}
	d, _ := n.details.(UtilityDetails)
	return d, true
}

// Planning returns the details of a planning node.
func (n Node) Planning() (PlanningDetails, bool) {
	if n.Kind != KindPlanning {
		return PlanningDetails{}, false
	}
	d, _ := n.details.(PlanningDetails)
	return d, true
}

// IsPlanning reports whether the node is the project's planning hub.
func (n Node) IsPlanning() bool {
	if n.Kind == KindPlanning {
		return true
	}
	u, ok := n.Utility()
	return ok && u.UtilityType == UtilityPlanning
}

// IsMain reports whether the node gets the larger "main" footprint (servers and the planning hub).
func (n Node) IsMain() bool {
	return n.Kind == KindServer || n.IsPlanning()
}

// At returns a copy of the node moved to (x, y).
func (n Node) At(x, y float64) Node {
	n.Position = Position{X: x, Y: y}
	return n
}
