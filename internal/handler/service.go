package handler

import (
	"github.com/zurto/planner/internal/diagram"
	"github.com/zurto/planner/internal/registry"
	"github.com/zurto/planner/internal/result"
)

const defaultServicePort = 3000

// serviceHandler covers long-running application containers: servers, backends, APIs and bots.
type serviceHandler struct {
	kind diagram.Kind
	// listens is false for kinds that never accept connections (bots).
	listens bool
}

func init() {
	for _, h := range []serviceHandler{
		{kind: diagram.KindServer, listens: true},
		{kind: diagram.KindBackend, listens: true},
		{kind: diagram.KindAPI, listens: true},
		{kind: diagram.KindDiscordBot, listens: false},
	} {
		registry.Default.Register(h.kind, h)
	}
}

func (h serviceHandler) Kind() diagram.Kind { return h.kind }

func (h serviceHandler) Validate(node *diagram.Node) ([]result.Error, []result.Warning) {
	errs := validatePort(node)
	var warns []result.Warning
	s, _ := node.Server()
	if !h.listens && s.Port > 0 {
		warns = append(warns, result.BestPractice(node.ID,
			"bots do not accept connections; the port is not published",
			"Remove the port from the node"))
	}
	if h.listens && s.Port == 0 {
		warns = append(warns, result.BestPractice(node.ID,
			"no port set; defaulting to 3000",
			"Set the node port"))
	}
	if s.Status == "error" {
		warns = append(warns, result.BestPractice(node.ID,
			"service is currently in error state",
			"Check the last build before deploying"))
	}
	return errs, warns
}

func (h serviceHandler) Generate(node *diagram.Node, d *diagram.Diagram, refs RefMap) (*registry.Artifact, error) {
	s, _ := node.Server()
	c := container{
		node:          node,
		project:       projectName(d),
		image:         diagram.PropString(node.Properties, "image"),
		env:           envFrom(node.Properties),
		restartPolicy: "unless-stopped",
	}
	if h.listens {
		c.externalPort = s.Port
		if c.externalPort == 0 {
			c.externalPort = defaultServicePort
		}
		c.internalPort = c.externalPort
		if cp := diagram.PropInt(node.Properties, "container_port"); cp > 0 {
			c.internalPort = cp
		}
	}
	if c.image == "" {
		c.context, c.dockerfile = buildContext(node, d)
	}

	art := c.generate(d, refs)
	if c.image == "" {
		art.Files[c.dockerfile] = Dockerfile(runtimeFor(s.ServerType), c.internalPort)
	}
	return art, nil
}
