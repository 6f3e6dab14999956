package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zurto/planner/internal/diagram"
	"github.com/zurto/planner/internal/registry"
)

func service(id string, kind diagram.Kind, sd diagram.ServerDetails, props map[string]any) diagram.Node {
	n := diagram.NewNode(id, id, kind)
	n, _ = n.WithDetails(sd)
	n.Properties = props
	return n
}

func TestRegistry_Kinds(t *testing.T) {
	assert.Equal(t,
		[]string{"api", "backend", "database", "discord-bot", "frontend", "server"},
		registry.Default.ListSupportedKinds())
	_, ok := registry.Default.Get(diagram.KindFile)
	assert.False(t, ok, "files are not deployed")
}

func TestServiceHandler_SingleServiceBuildsFromRoot(t *testing.T) {
	api := service("api", diagram.KindBackend, diagram.ServerDetails{ServerType: "express", Port: 4000},
		map[string]any{"env": map[string]any{"NODE_ENV": "production"}})
	db := service("db", diagram.KindDatabase, diagram.ServerDetails{ServerType: "postgres"}, nil)
	d := &diagram.Diagram{
		Metadata: diagram.Metadata{Name: "Shop"},
		Nodes:    []diagram.Node{api, db},
		Edges:    []diagram.Edge{{ID: "e", Source: "api", Target: "db", Type: diagram.DependsOn}},
	}

	h, ok := registry.Default.Get(diagram.KindBackend)
	require.True(t, ok)
	errs, warns := h.Validate(&d.Nodes[0])
	assert.Empty(t, errs)
	assert.Empty(t, warns)

	art, err := h.Generate(&d.Nodes[0], d, RefMap{"db": "docker_container.db"})
	require.NoError(t, err)

	hcl := string(art.HCL)
	assert.Equal(t, "docker_container.api", art.Address)
	assert.Contains(t, hcl, `resource "docker_image" "api"`)
	assert.Contains(t, hcl, `name = "shop/api:latest"`)
	assert.Contains(t, hcl, `context    = "."`)
	assert.Contains(t, hcl, `name    = "shop-api"`)
	assert.Contains(t, hcl, "image   = docker_image.api.image_id")
	assert.Contains(t, hcl, `env     = ["NODE_ENV=production"]`)
	assert.Contains(t, hcl, "internal = 4000")
	assert.Contains(t, hcl, "name = docker_network.project.name")
	assert.Contains(t, hcl, "depends_on = [docker_container.db]")

	assert.Equal(t, []string{"4000:4000"}, art.Service.Ports)
	assert.Equal(t, []string{"db"}, art.Service.DependsOn)
	assert.Equal(t, ".", art.Service.Build.Context)
	assert.Equal(t, []string{"shop-net"}, art.Service.Networks)
	require.Contains(t, art.Files, "Dockerfile")
	assert.Contains(t, string(art.Files["Dockerfile"]), "FROM node:20-alpine")
	assert.Contains(t, string(art.Files["Dockerfile"]), "EXPOSE 4000")
}

func TestServiceHandler_SeveralServicesGetOwnContexts(t *testing.T) {
	d := &diagram.Diagram{Nodes: []diagram.Node{
		service("api", diagram.KindAPI, diagram.ServerDetails{ServerType: "fastapi", Port: 8000}, nil),
		service("bot", diagram.KindDiscordBot, diagram.ServerDetails{}, nil),
	}}
	h, _ := registry.Default.Get(diagram.KindAPI)
	art, err := h.Generate(&d.Nodes[0], d, RefMap{})
	require.NoError(t, err)
	assert.Equal(t, "./api", art.Service.Build.Context)
	require.Contains(t, art.Files, "api/Dockerfile")
	assert.Contains(t, string(art.Files["api/Dockerfile"]), "FROM python:3.12-slim")
	assert.NotContains(t, string(art.HCL), "depends_on")

	bot, _ := registry.Default.Get(diagram.KindDiscordBot)
	art, err = bot.Generate(&d.Nodes[1], d, RefMap{})
	require.NoError(t, err)
	assert.Empty(t, art.Service.Ports)
	assert.NotContains(t, string(art.HCL), "ports {")
}

func TestServiceHandler_Validate(t *testing.T) {
	h, _ := registry.Default.Get(diagram.KindServer)

	n := service("s", diagram.KindServer, diagram.ServerDetails{Port: 70000, Status: "error"}, nil)
	errs, warns := h.Validate(&n)
	require.Len(t, errs, 1)
	assert.Equal(t, "validation_error", errs[0].Type)
	assert.Equal(t, "s", errs[0].NodeID)
	assert.Len(t, warns, 1)

	n = service("s", diagram.KindServer, diagram.ServerDetails{}, nil)
	_, warns = h.Validate(&n)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0].Message, "defaulting to 3000")

	bot, _ := registry.Default.Get(diagram.KindDiscordBot)
	n = service("b", diagram.KindDiscordBot, diagram.ServerDetails{Port: 3000}, nil)
	_, warns = bot.Validate(&n)
	assert.Len(t, warns, 1)
}

func TestDatabaseHandler(t *testing.T) {
	db := service("orders-db", diagram.KindDatabase, diagram.ServerDetails{ServerType: "MongoDB", Port: 27018}, nil)
	d := &diagram.Diagram{Metadata: diagram.Metadata{ProjectID: "p1"}, Nodes: []diagram.Node{db}}

	h, _ := registry.Default.Get(diagram.KindDatabase)
	_, warns := h.Validate(&d.Nodes[0])
	assert.Len(t, warns, 1, "published port only; mongo needs no password")

	art, err := h.Generate(&d.Nodes[0], d, RefMap{})
	require.NoError(t, err)
	assert.Equal(t, "mongo:7", art.Service.Image)
	assert.Equal(t, []string{"27018:27017"}, art.Service.Ports)
	assert.Equal(t, []string{"orders_db_data:/data/db"}, art.Service.Volumes)
	assert.Equal(t, []string{"orders_db_data"}, art.Volumes)
	assert.Equal(t, "p1-orders-db", art.Service.ContainerName)
	assert.Contains(t, string(art.HCL), `resource "docker_volume" "orders_db_data"`)
	assert.Contains(t, string(art.HCL), "volume_name    = docker_volume.orders_db_data.name")
	assert.Empty(t, art.Files)
}

func TestDatabaseHandler_PasswordWarning(t *testing.T) {
	h, _ := registry.Default.Get(diagram.KindDatabase)
	n := service("db", diagram.KindDatabase, diagram.ServerDetails{}, nil)
	_, warns := h.Validate(&n)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0].Suggestion, "POSTGRES_PASSWORD")

	n.Properties = map[string]any{"env": map[string]any{"POSTGRES_PASSWORD": "x"}}
	_, warns = h.Validate(&n)
	assert.Empty(t, warns)
}

func TestFrontendHandler(t *testing.T) {
	web := service("web", diagram.KindFrontend, diagram.ServerDetails{ServerType: "react"}, nil)
	d := &diagram.Diagram{Nodes: []diagram.Node{web}}
	h, _ := registry.Default.Get(diagram.KindFrontend)

	art, err := h.Generate(&d.Nodes[0], d, RefMap{})
	require.NoError(t, err)
	assert.Equal(t, []string{"8080:80"}, art.Service.Ports)
	assert.Contains(t, string(art.Files["Dockerfile"]), "FROM nginx:alpine")
}

func TestRuntimeFor(t *testing.T) {
	assert.Equal(t, runtimePython, runtimeFor("Flask"))
	assert.Equal(t, runtimeGo, runtimeFor("gin"))
	assert.Equal(t, runtimeStatic, runtimeFor("nginx"))
	assert.Equal(t, runtimeNode, runtimeFor(""))
}
