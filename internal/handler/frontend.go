package handler

import (
	"github.com/zurto/planner/internal/diagram"
	"github.com/zurto/planner/internal/registry"
	"github.com/zurto/planner/internal/result"
)

const (
	frontendInternalPort = 80
	frontendExternalPort = 8080
)

// frontendHandler builds the web client and serves it from nginx.
type frontendHandler struct{}

func init() {
	registry.Default.Register(diagram.KindFrontend, frontendHandler{})
}

func (frontendHandler) Kind() diagram.Kind { return diagram.KindFrontend }

func (frontendHandler) Validate(node *diagram.Node) ([]result.Error, []result.Warning) {
	errs := validatePort(node)
	var warns []result.Warning
	if s, _ := node.Server(); s.Port == 80 || s.Port == 443 {
		warns = append(warns, result.BestPractice(node.ID,
			"publishing a privileged port on the host",
			"Publish on 8080 and put a reverse proxy in front"))
	}
	return errs, warns
}

func (frontendHandler) Generate(node *diagram.Node, d *diagram.Diagram, refs RefMap) (*registry.Artifact, error) {
	s, _ := node.Server()
	c := container{
		node:          node,
		project:       projectName(d),
		image:         diagram.PropString(node.Properties, "image"),
		internalPort:  frontendInternalPort,
		externalPort:  s.Port,
		env:           envFrom(node.Properties),
		restartPolicy: "unless-stopped",
	}
	if c.externalPort == 0 {
		c.externalPort = frontendExternalPort
	}
	if cp := diagram.PropInt(node.Properties, "container_port"); cp > 0 {
		c.internalPort = cp
	}
	if c.image == "" {
		c.context, c.dockerfile = buildContext(node, d)
	}

	art := c.generate(d, refs)
	if c.image == "" {
		art.Files[c.dockerfile] = Dockerfile(runtimeStatic, c.internalPort)
	}
	return art, nil
}
