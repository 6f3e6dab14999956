package terraform

import (
	"bytes"
)

// DeploymentBuilder collects resource blocks and template content for the final deployment bundle.
type DeploymentBuilder struct {
	network    []byte
	resources  [][]byte
	variables  []byte
	outputs    []byte
	versions   []byte
	tfvars     []byte
	compose    []byte
	extra      map[string][]byte
	emitTfvars bool
}

// NewBuilder returns a new DeploymentBuilder.
func NewBuilder(emitTfvars bool) *DeploymentBuilder {
	return &DeploymentBuilder{
		extra:      make(map[string][]byte),
		emitTfvars: emitTfvars,
	}
}

// SetNetwork sets the network block written at the top of main.tf.
func (b *DeploymentBuilder) SetNetwork(block []byte) {
	b.network = block
}

// AddResource appends a resource block (raw bytes from handler).
func (b *DeploymentBuilder) AddResource(block []byte) {
	if len(block) == 0 {
		return
	}
	b.resources = append(b.resources, block)
}

// SetVariables sets the variables.tf content.
func (b *DeploymentBuilder) SetVariables(content []byte) {
	b.variables = content
}

// SetOutputs sets the outputs.tf content.
func (b *DeploymentBuilder) SetOutputs(content []byte) {
	b.outputs = content
}

// SetVersions sets the versions.tf content (terraform block + provider).
func (b *DeploymentBuilder) SetVersions(content []byte) {
	b.versions = content
}

// SetTfvars sets the terraform.tfvars content (optional).
func (b *DeploymentBuilder) SetTfvars(content []byte) {
	b.tfvars = content
}

// SetCompose sets the docker-compose.yml content.
func (b *DeploymentBuilder) SetCompose(content []byte) {
	b.compose = content
}

// AddFile adds a non-Terraform file such as a Dockerfile. Later calls for the same path win.
func (b *DeploymentBuilder) AddFile(path string, content []byte) {
	b.extra[path] = content
}

// Build returns a map of filename -> content for all files.
func (b *DeploymentBuilder) Build() map[string][]byte {
	out := make(map[string][]byte)
	if len(b.versions) > 0 {
		out["versions.tf"] = b.versions
	}
	if len(b.variables) > 0 {
		out["variables.tf"] = b.variables
	}
	var mainBuf bytes.Buffer
	mainBuf.Write(b.network)
	for _, r := range b.resources {
		if mainBuf.Len() > 0 {
			mainBuf.WriteString("\n")
		}
		mainBuf.Write(r)
	}
	if mainBuf.Len() > 0 {
		out["main.tf"] = mainBuf.Bytes()
	}
	if len(b.outputs) > 0 {
		out["outputs.tf"] = b.outputs
	}
	if b.emitTfvars && len(b.tfvars) > 0 {
		out["terraform.tfvars"] = b.tfvars
	}
	if len(b.compose) > 0 {
		out["docker-compose.yml"] = b.compose
	}
	for path, content := range b.extra {
		out[path] = content
	}
	return out
}
