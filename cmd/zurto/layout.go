package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/zurto/planner/internal/diagram"
	"github.com/zurto/planner/internal/layout"
)

type canvasFlags struct {
	input    string
	strategy string
	width    float64
	height   float64
}

func (f *canvasFlags) register(cmd *cobra.Command, size bool) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Path to diagram JSON file (or - for stdin)")
	cmd.Flags().StringVar(&f.strategy, "strategy", "hierarchical", "Layout strategy: hierarchical or radial")
	if size {
		cmd.Flags().Float64Var(&f.width, "width", 1200, "Canvas width")
		cmd.Flags().Float64Var(&f.height, "height", 800, "Canvas height")
	}
}

func (a *app) layoutOptions(routes bool) layout.Options {
	return layout.Options{
		Hierarchical: a.cfg.Hierarchical,
		Radial:       a.cfg.Radial,
		Routes:       routes,
	}
}

func layoutCmd(a *app) *cobra.Command {
	var (
		canvas    canvasFlags
		routes    bool
		drill     string
		drillMode string
	)
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Position the nodes of a diagram",
		Long: `Position the nodes of a diagram and print {strategy, nodes, routes} as JSON.

With --drill the named node becomes the centre of a drill-in view of its children,
laid out in rings (--drill-mode radial) or left-to-right ranks (--drill-mode flow).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := readDiagram(cmd, canvas.input)
			if err != nil {
				return err
			}
			strategy, err := layout.ParseStrategy(canvas.strategy)
			if err != nil {
				return err
			}

			if drill != "" {
				res, err := drillIn(d, drill, drillMode, canvas, routes)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			}

			res := layout.Apply(strategy, d.Nodes, d.Edges, canvas.width, canvas.height, a.layoutOptions(routes))
			a.log.Debug("layout applied", "strategy", string(res.Strategy), "nodes", len(res.Nodes), "routes", len(res.Routes))
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	canvas.register(cmd, true)
	cmd.Flags().BoolVar(&routes, "routes", false, "Also compute connector paths")
	cmd.Flags().StringVar(&drill, "drill", "", "Lay out the children of this node id around it")
	cmd.Flags().StringVar(&drillMode, "drill-mode", "radial", "Drill-in layout: radial or flow")
	return cmd
}

// drillIn lays out the direct and transitive children of parentID. Nodes are children
// when their ParentID chain reaches the parent.
func drillIn(d *diagram.Diagram, parentID, mode string, canvas canvasFlags, routes bool) (layout.Result, error) {
	parent := d.NodeByID(parentID)
	if parent == nil {
		return layout.Result{}, errors.Newf("node %q not found", parentID)
	}
	parentOf := make(map[string]string, len(d.Nodes))
	for _, n := range d.Nodes {
		parentOf[n.ID] = n.ParentID
	}
	var children []diagram.Node
	for _, n := range d.Nodes {
		if n.ID != parentID && descends(n.ID, parentID, parentOf) {
			children = append(children, n)
		}
	}

	switch mode {
	case "flow":
		cfg := layout.DefaultFlowConfig()
		nodes := layout.ChildFlow(*parent, children, canvas.width, canvas.height, cfg)
		res := layout.Result{Strategy: "flow", Nodes: nodes}
		if routes {
			res.Routes = layout.RouteFlow(nodes, d.Edges, cfg)
		}
		return res.WithEndpoints(d.Edges), nil
	case "", "radial":
		cfg := layout.ChildRadialConfig()
		nodes := layout.ChildRadial(*parent, children, canvas.width, canvas.height, cfg)
		res := layout.Result{Strategy: layout.StrategyRadial, Nodes: nodes}
		if routes {
			res.Routes = layout.RouteRadial(nodes, d.Edges, cfg)
		}
		return res.WithEndpoints(d.Edges), nil
	}
	return layout.Result{}, errors.WithHint(errors.Newf("unknown drill mode %q", mode), "use radial or flow")
}

func descends(id, ancestor string, parentOf map[string]string) bool {
	seen := map[string]bool{}
	for cur := parentOf[id]; cur != "" && !seen[cur]; cur = parentOf[cur] {
		if cur == ancestor {
			return true
		}
		seen[cur] = true
	}
	return false
}

func routeCmd(a *app) *cobra.Command {
	var (
		canvas canvasFlags
		style  string
	)
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Route the connectors of an already positioned diagram",
		Long: `Route the connectors of a diagram whose nodes already carry positions and print the
routes as JSON. Positions are read as node centres for hierarchical and as top-left
corners for radial, matching what the layout command produces.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := readDiagram(cmd, canvas.input)
			if err != nil {
				return err
			}
			strategy, err := layout.ParseStrategy(canvas.strategy)
			if err != nil {
				return err
			}
			var routes []layout.Route
			switch {
			case style == "orthogonal":
				routes = layout.RouteOrthogonal(strategy, d.Nodes, d.Edges, a.layoutOptions(true))
			case style != "" && style != "default":
				return errors.WithHint(errors.Newf("unknown route style %q", style), "use default or orthogonal")
			case strategy == layout.StrategyRadial:
				routes = layout.RouteRadial(d.Nodes, d.Edges, a.cfg.Radial)
			default:
				routes = layout.RouteHierarchical(d.Nodes, d.Edges, a.cfg.Hierarchical)
			}
			return writeJSON(cmd.OutOrStdout(), routes)
		},
	}
	canvas.register(cmd, false)
	cmd.Flags().StringVar(&style, "style", "default", "Connector style: default (per strategy) or orthogonal")
	return cmd
}
