package handler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/zurto/planner/internal/compose"
	"github.com/zurto/planner/internal/diagram"
	"github.com/zurto/planner/internal/registry"
	"github.com/zurto/planner/internal/result"
	"github.com/zurto/planner/internal/terraform"
)

// RefMap is an alias for registry.RefMap so handlers can use refs without importing registry in every signature.
// The actual type and interface live in registry to avoid import cycles.
type RefMap = registry.RefMap

// container describes one docker_container and its compose twin.
type container struct {
	node          *diagram.Node
	project       string
	image         string // pulled image; empty means build from context
	context       string
	dockerfile    string
	internalPort  int
	externalPort  int
	env           map[string]string
	volumes       map[string]string // named volume -> mount path
	restartPolicy string
}

// containerName is the runtime container name: project-node, lowercased.
func containerName(project, nodeID string) string {
	name := strings.ToLower(nodeID)
	if project != "" {
		name = strings.ToLower(project) + "-" + name
	}
	return strings.ReplaceAll(name, " ", "-")
}

// projectName returns the diagram's project name for naming containers and networks.
func projectName(d *diagram.Diagram) string {
	if d == nil {
		return "zurto"
	}
	if d.Metadata.Name != "" {
		return strings.ToLower(strings.ReplaceAll(d.Metadata.Name, " ", "-"))
	}
	if d.Metadata.ProjectID != "" {
		return strings.ToLower(d.Metadata.ProjectID)
	}
	return "zurto"
}

// NetworkName is the name of the bridge network shared by a project's containers.
func NetworkName(d *diagram.Diagram) string {
	return projectName(d) + "-net"
}

// dependencyAddrs returns the container addresses the node depends on, in edge order.
func dependencyAddrs(node *diagram.Node, d *diagram.Diagram, refs RefMap) (addrs, services []string) {
	for _, e := range d.EdgesFrom(node.ID) {
		if e.Type != diagram.DependsOn {
			continue
		}
		if addr, ok := refs[e.Target]; ok {
			addrs = append(addrs, addr)
			services = append(services, terraform.SanitizeName(e.Target))
		}
	}
	return addrs, services
}

// buildable reports whether n is a service built from local sources.
func buildable(n *diagram.Node) bool {
	return n.Kind.IsService() && n.Kind != diagram.KindDatabase && diagram.PropString(n.Properties, "image") == ""
}

// buildContext picks where a service's sources live: the project root when it is the only
// buildable service, its own directory otherwise. properties.context overrides both.
func buildContext(node *diagram.Node, d *diagram.Diagram) (ctxDir, dockerfile string) {
	if c := diagram.PropString(node.Properties, "context"); c != "" {
		return c, strings.TrimPrefix(c+"/Dockerfile", "./")
	}
	count := 0
	for i := range d.Nodes {
		if buildable(&d.Nodes[i]) {
			count++
		}
	}
	if count <= 1 {
		return ".", "Dockerfile"
	}
	dir := terraform.SanitizeName(node.ID)
	return "./" + dir, dir + "/Dockerfile"
}

// envFrom reads properties.env (or properties.environment) as a string map.
func envFrom(p map[string]any) map[string]string {
	if env := diagram.PropStringMap(p, "env"); len(env) > 0 {
		return env
	}
	return diagram.PropStringMap(p, "environment")
}

// validatePort checks the node port and properties.container_port.
func validatePort(node *diagram.Node) []result.Error {
	var errs []result.Error
	if s, ok := node.Server(); ok && (s.Port < 0 || s.Port > 65535) {
		errs = append(errs, result.ValidationError(node.ID,
			fmt.Sprintf("port %d is out of range", s.Port), "Use a port between 1 and 65535"))
	}
	if cp := diagram.PropInt(node.Properties, "container_port"); cp < 0 || cp > 65535 {
		errs = append(errs, result.ValidationError(node.ID,
			fmt.Sprintf("container_port %d is out of range", cp), "Use a port between 1 and 65535"))
	}
	return errs
}

// generate renders c as Terraform blocks and a compose service.
func (c container) generate(d *diagram.Diagram, refs RefMap) *registry.Artifact {
	name := terraform.SanitizeName(c.node.ID)
	imageAddr := "docker_image." + name
	art := &registry.Artifact{
		Address:     "docker_container." + name,
		ServiceName: name,
		Files:       make(map[string][]byte),
	}

	var blocks []*hclwrite.Block

	img := terraform.ResourceBlock("docker_image", name)
	if c.image != "" {
		terraform.SetAttributeStr(img.Body(), "name", c.image)
	} else {
		terraform.SetAttributeStr(img.Body(), "name", c.project+"/"+name+":latest")
		build := img.Body().AppendNewBlock("build", nil)
		terraform.SetAttributeStr(build.Body(), "context", c.context)
		terraform.SetAttributeStr(build.Body(), "dockerfile", dockerfileInContext(c.context, c.dockerfile))
	}
	blocks = append(blocks, img)

	volumeNames := sortedKeys(c.volumes)
	for _, v := range volumeNames {
		vb := terraform.ResourceBlock("docker_volume", v)
		terraform.SetAttributeStr(vb.Body(), "name", c.project+"-"+v)
		blocks = append(blocks, vb)
	}

	ctr := terraform.ResourceBlock("docker_container", name)
	body := ctr.Body()
	terraform.SetAttributeStr(body, "name", containerName(c.project, c.node.ID))
	terraform.SetAttributeRef(body, "image", imageAddr, "image_id")
	terraform.SetAttributeStr(body, "restart", c.restartPolicy)
	terraform.SetAttributeList(body, "env", envList(c.env))
	if c.internalPort > 0 {
		ports := body.AppendNewBlock("ports", nil)
		terraform.SetAttributeInt(ports.Body(), "internal", c.internalPort)
		terraform.SetAttributeInt(ports.Body(), "external", c.externalPort)
	}
	for _, v := range volumeNames {
		vol := body.AppendNewBlock("volumes", nil)
		vol.Body().SetAttributeTraversal("volume_name", terraform.RefTraversal("docker_volume."+v, "name"))
		vol.Body().SetAttributeValue("container_path", cty.StringVal(c.volumes[v]))
	}
	net := body.AppendNewBlock("networks_advanced", nil)
	net.Body().SetAttributeTraversal("name", terraform.RefTraversal(terraform.NetworkAddress, "name"))

	addrs, deps := dependencyAddrs(c.node, d, refs)
	terraform.SetAttributeRefs(body, "depends_on", addrs)
	blocks = append(blocks, ctr)
	art.HCL = terraform.BlocksToBytes(blocks...)

	svc := compose.Service{
		ContainerName: containerName(c.project, c.node.ID),
		Restart:       c.restartPolicy,
		Environment:   c.env,
		DependsOn:     deps,
		Networks:      []string{NetworkName(d)},
	}
	if c.image != "" {
		svc.Image = c.image
	} else {
		svc.Build = &compose.Build{Context: c.context}
		if df := dockerfileInContext(c.context, c.dockerfile); df != "Dockerfile" {
			svc.Build.Dockerfile = df
		}
	}
	if c.internalPort > 0 {
		svc.Ports = []string{fmt.Sprintf("%d:%d", c.externalPort, c.internalPort)}
	}
	for _, v := range volumeNames {
		svc.Volumes = append(svc.Volumes, v+":"+c.volumes[v])
		art.Volumes = append(art.Volumes, v)
	}
	art.Service = svc
	return art
}

// dockerfileInContext returns the Dockerfile path relative to the build context.
func dockerfileInContext(ctxDir, dockerfile string) string {
	rel := strings.TrimPrefix(dockerfile, strings.TrimPrefix(ctxDir, "./")+"/")
	if rel == "" {
		return "Dockerfile"
	}
	return rel
}

func envList(env map[string]string) []string {
	keys := sortedKeys(env)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k + "=" + env[k]
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
