package registry

import (
	"sort"
	"sync"

	"github.com/zurto/planner/internal/compose"
	"github.com/zurto/planner/internal/diagram"
	"github.com/zurto/planner/internal/result"
)

// RefMap maps node IDs to Terraform container addresses (e.g. "db-1" -> "docker_container.db_1").
type RefMap map[string]string

// Artifact is what a handler produces for one node.
type Artifact struct {
	// HCL holds the node's Terraform resource blocks.
	HCL []byte
	// Address is the docker_container address other containers depend on.
	Address string
	// ServiceName keys the compose service.
	ServiceName string
	Service     compose.Service
	// Volumes are named volumes the service mounts.
	Volumes []string
	// Files are extra files keyed by path relative to the output directory (Dockerfiles).
	Files map[string][]byte
}

// ServiceHandler is the interface each node kind handler must implement.
type ServiceHandler interface {
	Kind() diagram.Kind
	Validate(node *diagram.Node) ([]result.Error, []result.Warning)
	Generate(node *diagram.Node, d *diagram.Diagram, refs RefMap) (*Artifact, error)
}

// Default is the global handler registry.
var Default = New()

// Registry holds node kind handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[diagram.Kind]ServiceHandler
}

// New returns a new empty registry.
func New() *Registry {
	return &Registry{handlers: make(map[diagram.Kind]ServiceHandler)}
}

// Register adds a handler for the given kind.
func (r *Registry) Register(kind diagram.Kind, h ServiceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[kind] = h
}

// Get returns the handler for the kind, or nil and false.
func (r *Registry) Get(kind diagram.Kind) (ServiceHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[kind]
	return h, ok
}

// ListSupportedKinds returns all registered kinds, sorted.
func (r *Registry) ListSupportedKinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.handlers))
	for k := range r.handlers {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	return kinds
}
