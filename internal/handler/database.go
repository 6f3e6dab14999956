package handler

import (
	"strings"

	"github.com/zurto/planner/internal/diagram"
	"github.com/zurto/planner/internal/registry"
	"github.com/zurto/planner/internal/result"
	"github.com/zurto/planner/internal/terraform"
)

type engine struct {
	image     string
	port      int
	dataPath  string
	secretEnv string // env var that must be set for a usable database; empty if none
}

var engines = map[string]engine{
	"postgres": {image: "postgres:16-alpine", port: 5432, dataPath: "/var/lib/postgresql/data", secretEnv: "POSTGRES_PASSWORD"},
	"mysql":    {image: "mysql:8", port: 3306, dataPath: "/var/lib/mysql", secretEnv: "MYSQL_ROOT_PASSWORD"},
	"mongodb":  {image: "mongo:7", port: 27017, dataPath: "/data/db"},
	"redis":    {image: "redis:7-alpine", port: 6379, dataPath: "/data"},
}

// engineFor maps a server type to a database engine, defaulting to postgres.
func engineFor(serverType string) (string, engine) {
	st := strings.ToLower(serverType)
	switch {
	case strings.Contains(st, "mysql"), strings.Contains(st, "maria"):
		return "mysql", engines["mysql"]
	case strings.Contains(st, "mongo"):
		return "mongodb", engines["mongodb"]
	case strings.Contains(st, "redis"):
		return "redis", engines["redis"]
	}
	return "postgres", engines["postgres"]
}

type databaseHandler struct{}

func init() {
	registry.Default.Register(diagram.KindDatabase, databaseHandler{})
}

func (databaseHandler) Kind() diagram.Kind { return diagram.KindDatabase }

func (databaseHandler) Validate(node *diagram.Node) ([]result.Error, []result.Warning) {
	errs := validatePort(node)
	var warns []result.Warning
	s, _ := node.Server()
	name, eng := engineFor(s.ServerType)
	if eng.secretEnv != "" && envFrom(node.Properties)[eng.secretEnv] == "" {
		warns = append(warns, result.BestPractice(node.ID,
			name+" has no password set",
			"Set properties.env."+eng.secretEnv))
	}
	if s.Port > 0 {
		warns = append(warns, result.BestPractice(node.ID,
			"database port is published on the host",
			"Drop the port unless tools outside the network need it"))
	}
	return errs, warns
}

func (databaseHandler) Generate(node *diagram.Node, d *diagram.Diagram, refs RefMap) (*registry.Artifact, error) {
	s, _ := node.Server()
	_, eng := engineFor(s.ServerType)
	c := container{
		node:          node,
		project:       projectName(d),
		image:         diagram.PropString(node.Properties, "image"),
		env:           envFrom(node.Properties),
		restartPolicy: "always",
		volumes:       map[string]string{terraform.SanitizeName(node.ID) + "_data": eng.dataPath},
	}
	if c.image == "" {
		c.image = eng.image
	}
	if s.Port > 0 {
		c.internalPort = eng.port
		c.externalPort = s.Port
	}
	return c.generate(d, refs), nil
}
