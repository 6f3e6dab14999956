package terraform

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/zurto/planner/internal/diagram"
)

// NetworkAddress is the Terraform address of the shared project network.
const NetworkAddress = "docker_network.project"

// VersionsTF returns content for versions.tf (terraform block + docker provider).
func VersionsTF() []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	tfBlock := body.AppendNewBlock("terraform", nil)
	tfBody := tfBlock.Body()
	tfBody.SetAttributeValue("required_version", cty.StringVal(">= 1.0"))
	reqProv := tfBody.AppendNewBlock("required_providers", nil)
	reqProv.Body().SetAttributeValue("docker", cty.ObjectVal(map[string]cty.Value{
		"source":  cty.StringVal("kreuzwerker/docker"),
		"version": cty.StringVal("~> 3.0"),
	}))

	body.AppendNewline()
	provBlock := body.AppendNewBlock("provider", []string{"docker"})
	provBlock.Body().SetAttributeTraversal("host", varTraversal("docker_host"))

	return f.Bytes()
}

// VariablesTF returns content for variables.tf.
func VariablesTF() []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	host := body.AppendNewBlock("variable", []string{"docker_host"})
	host.Body().SetAttributeValue("description", cty.StringVal("Docker daemon address"))
	host.Body().SetAttributeRaw("type", hclwrite.TokensForIdentifier("string"))
	host.Body().SetAttributeValue("default", cty.StringVal("unix:///var/run/docker.sock"))

	body.AppendNewline()
	env := body.AppendNewBlock("variable", []string{"environment"})
	env.Body().SetAttributeValue("description", cty.StringVal("Deployment environment"))
	env.Body().SetAttributeRaw("type", hclwrite.TokensForIdentifier("string"))
	env.Body().SetAttributeValue("default", cty.StringVal("development"))

	return f.Bytes()
}

// NetworkTF returns the docker_network block every container joins.
func NetworkTF(name string) []byte {
	block := ResourceBlock("docker_network", "project")
	block.Body().SetAttributeValue("name", cty.StringVal(name))
	block.Body().SetAttributeValue("driver", cty.StringVal("bridge"))
	return BlockToBytes(block)
}

// OutputsTF returns outputs.tf exposing every container's name.
func OutputsTF(containerAddrs []string) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, addr := range containerAddrs {
		if i > 0 {
			body.AppendNewline()
		}
		name := strings.TrimPrefix(addr, "docker_container.")
		out := body.AppendNewBlock("output", []string{name + "_container"})
		out.Body().SetAttributeTraversal("value", RefTraversal(addr, "name"))
	}
	return f.Bytes()
}

// TfvarsFromMetadata generates terraform.tfvars from diagram metadata.
func TfvarsFromMetadata(m *diagram.Metadata) []byte {
	if m == nil || m.Environment == "" {
		return nil
	}
	f := hclwrite.NewEmptyFile()
	f.Body().SetAttributeValue("environment", cty.StringVal(m.Environment))
	return f.Bytes()
}

// varTraversal builds hcl.Traversal for var.name (e.g. var.docker_host).
func varTraversal(name string) hcl.Traversal {
	return hcl.Traversal{
		hcl.TraverseRoot{Name: "var"},
		hcl.TraverseAttr{Name: name},
	}
}
