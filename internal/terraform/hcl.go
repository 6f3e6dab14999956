package terraform

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// SanitizeName converts a node id to a Terraform-safe resource name (e.g. api-1 -> api_1).
// Names that would start with a digit get an "n_" prefix.
func SanitizeName(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := b.String()
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "n_" + name
	}
	return name
}

// ResourceBlock creates a resource "type" "name" { } block; body can be filled by the caller.
func ResourceBlock(resourceType, name string) *hclwrite.Block {
	return hclwrite.NewBlock("resource", []string{resourceType, name})
}

// SetAttributeStr sets a string attribute on a block body.
func SetAttributeStr(body *hclwrite.Body, name, value string) {
	if value != "" {
		body.SetAttributeValue(name, cty.StringVal(value))
	}
}

// SetAttributeBool sets a bool attribute.
func SetAttributeBool(body *hclwrite.Body, name string, value bool) {
	body.SetAttributeValue(name, cty.BoolVal(value))
}

// SetAttributeInt sets an int attribute.
func SetAttributeInt(body *hclwrite.Body, name string, value int) {
	body.SetAttributeValue(name, cty.NumberIntVal(int64(value)))
}

// SetAttributeList sets a list(string) attribute (e.g. env).
func SetAttributeList(body *hclwrite.Body, name string, values []string) {
	if len(values) == 0 {
		return
	}
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.StringVal(v)
	}
	body.SetAttributeValue(name, cty.ListVal(vals))
}

// SetAttributeRef sets an attribute to a reference such as docker_image.api.image_id.
func SetAttributeRef(body *hclwrite.Body, name, addr, attr string) {
	body.SetAttributeTraversal(name, RefTraversal(addr, attr))
}

// SetAttributeRefs sets a tuple of bare references (e.g. depends_on = [docker_container.db]).
func SetAttributeRefs(body *hclwrite.Body, name string, addrs []string) {
	if len(addrs) == 0 {
		return
	}
	tokens := make([]hclwrite.Tokens, len(addrs))
	for i, addr := range addrs {
		tokens[i] = hclwrite.TokensForTraversal(RefTraversal(addr, ""))
	}
	body.SetAttributeRaw(name, hclwrite.TokensForTuple(tokens))
}

// RefTraversal builds hcl.Traversal for a resource address and attribute (e.g. docker_network.project.name).
func RefTraversal(addr, attr string) hcl.Traversal {
	var t hcl.Traversal
	for _, part := range strings.Split(addr, ".") {
		if part == "" {
			continue
		}
		if len(t) == 0 {
			t = append(t, hcl.TraverseRoot{Name: part})
		} else {
			t = append(t, hcl.TraverseAttr{Name: part})
		}
	}
	if attr != "" {
		t = append(t, hcl.TraverseAttr{Name: attr})
	}
	return t
}

// BlockToBytes formats a block and returns its bytes (with newline).
func BlockToBytes(block *hclwrite.Block) []byte {
	f := hclwrite.NewEmptyFile()
	f.Body().AppendBlock(block)
	return f.Bytes()
}

// BlocksToBytes formats several blocks separated by blank lines.
func BlocksToBytes(blocks ...*hclwrite.Block) []byte {
	f := hclwrite.NewEmptyFile()
	for i, b := range blocks {
		if i > 0 {
			f.Body().AppendNewline()
		}
		f.Body().AppendBlock(b)
	}
	return f.Bytes()
}
