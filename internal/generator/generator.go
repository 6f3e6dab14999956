// Package generator turns a project diagram into deployment artifacts: Terraform for the
// docker provider, a docker-compose file and per-service Dockerfiles.
package generator

import (
	"sort"
	"strings"
	"sync"

	"github.com/zurto/planner/internal/compose"
	"github.com/zurto/planner/internal/dependency"
	"github.com/zurto/planner/internal/diagram"
	"github.com/zurto/planner/internal/handler"
	"github.com/zurto/planner/internal/registry"
	"github.com/zurto/planner/internal/result"
	"github.com/zurto/planner/internal/terraform"
)

// Generator renders diagrams into deployment files.
type Generator struct {
	opts Options
	reg  *registry.Registry
}

// New returns a new generator with the given options.
func New(opts Options) *Generator {
	opts.MaxParallel = opts.workers()
	return &Generator{
		opts: opts,
		reg:  registry.Default,
	}
}

// Generate validates the diagram, resolves dependencies, and renders the deployment files.
// Nodes that are not deployable (files, utilities, planning) are skipped.
func (g *Generator) Generate(d *diagram.Diagram) (*result.GenerateResult, error) {
	out := &result.GenerateResult{Success: true}

	// 1. Diagram-level validation
	diagErrs := diagram.Validate(d)
	for _, e := range diagErrs {
		out.Errors = append(out.Errors, result.Error{
			Type: e.Type, Severity: e.Severity, NodeID: e.NodeID,
			Message: e.Message, Suggestion: e.Suggestion,
		})
	}
	if len(out.Errors) > 0 {
		out.Success = false
		return out, nil
	}

	// 2. Resolve dependency order and tiers
	_, tiers, err := dependency.Resolve(d)
	if err != nil {
		out.Success = false
		out.Errors = append(out.Errors, result.Error{
			Type: result.TypeDependency, Severity: "error",
			Message: err.Error(), Suggestion: "Remove circular depends_on connections",
		})
		return out, nil
	}

	// 3. Run handlers tier by tier; within each tier run them in parallel
	refs := make(registry.RefMap)
	nodeByID := make(map[string]*diagram.Node)
	for i := range d.Nodes {
		nodeByID[d.Nodes[i].ID] = &d.Nodes[i]
	}
	var artifacts []*registry.Artifact

	for _, tier := range tiers {
		type nodeResult struct {
			art   *registry.Artifact
			errs  []result.Error
			warns []result.Warning
		}
		results := make([]nodeResult, len(tier))
		sem := make(chan struct{}, g.opts.MaxParallel)
		var wg sync.WaitGroup

		for i, nodeID := range tier {
			node := nodeByID[nodeID]
			if !deployable(node) {
				continue
			}
			h, ok := g.reg.Get(node.Kind)
			if !ok {
				results[i].errs = append(results[i].errs, result.ValidationError(nodeID,
					"unsupported node type: "+string(node.Kind),
					"Use one of: file, utility, planning, "+joinKinds(g.reg.ListSupportedKinds())))
				continue
			}

			wg.Add(1)
			sem <- struct{}{}
			go func(i int, n *diagram.Node) {
				defer wg.Done()
				defer func() { <-sem }()
				res := nodeResult{}
				res.errs, res.warns = h.Validate(n)
				if len(res.errs) == 0 {
					art, genErr := h.Generate(n, d, refs)
					if genErr != nil {
						res.errs = append(res.errs, result.Error{
							Type: result.TypeGeneration, Severity: "error", NodeID: n.ID,
							Message: genErr.Error(),
						})
					} else {
						res.art = art
					}
				}
				results[i] = res
			}(i, node)
		}
		wg.Wait()

		// Collect in tier order so main.tf stays in dependency order
		for i, nodeID := range tier {
			res := results[i]
			out.Errors = append(out.Errors, res.errs...)
			out.Warnings = append(out.Warnings, res.warns...)
			if len(res.errs) > 0 {
				out.Success = false
			}
			if res.art != nil {
				artifacts = append(artifacts, res.art)
				refs[nodeID] = res.art.Address
			}
		}
	}

	if !out.Success {
		return out, nil
	}

	// 4. Build deployment files
	files, err := g.build(d, artifacts)
	if err != nil {
		return nil, err
	}
	out.Files = files
	return out, nil
}

func (g *Generator) build(d *diagram.Diagram, artifacts []*registry.Artifact) (map[string][]byte, error) {
	b := terraform.NewBuilder(g.opts.EmitTfvars)
	b.SetVersions(terraform.VersionsTF())
	b.SetVariables(terraform.VariablesTF())
	b.SetNetwork(terraform.NetworkTF(handler.NetworkName(d)))

	cf := compose.New(d.Metadata.Name)
	cf.AddNetwork(handler.NetworkName(d))
	addrs := make([]string, 0, len(artifacts))
	for _, art := range artifacts {
		b.AddResource(art.HCL)
		addrs = append(addrs, art.Address)
		cf.AddService(art.ServiceName, art.Service)
		for _, v := range art.Volumes {
			cf.AddVolume(v)
		}
		for path, content := range art.Files {
			b.AddFile(path, content)
		}
	}
	b.SetOutputs(terraform.OutputsTF(addrs))
	if g.opts.EmitTfvars {
		b.SetTfvars(terraform.TfvarsFromMetadata(&d.Metadata))
	}

	if g.opts.EmitCompose {
		yml, err := cf.Marshal()
		if err != nil {
			return nil, err
		}
		b.SetCompose(yml)
	}
	b.AddFile(".dockerignore", handler.DockerIgnore())
	return b.Build(), nil
}

// deployable reports whether a node becomes a container.
func deployable(n *diagram.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case diagram.KindFile, diagram.KindUtility, diagram.KindPlanning:
		return false
	}
	return true
}

func joinKinds(kinds []string) string {
	sort.Strings(kinds)
	return strings.Join(kinds, ", ")
}
