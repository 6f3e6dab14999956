package main

import (
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/zurto/planner/internal/generator"
)

func generateCmd(a *app) *cobra.Command {
	var (
		input     string
		output    string
		noTfvars  bool
		noCompose bool
		parallel  int
		jsonOut   bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate Terraform, docker-compose and Dockerfiles for a diagram",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := readDiagram(cmd, input)
			if err != nil {
				return err
			}
			if output == "" {
				output = a.cfg.Deploy.OutputDir
			}

			opts := generator.DefaultOptions()
			opts.EmitTfvars = !noTfvars
			opts.EmitCompose = !noCompose
			opts.MaxParallel = parallel
			res, err := generator.New(opts).Generate(d)
			if err != nil {
				return errors.Wrap(err, "generate")
			}

			stderr := cmd.ErrOrStderr()
			if !res.Success {
				if jsonOut {
					if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
						return err
					}
				} else {
					for _, e := range res.Errors {
						fmt.Fprintf(stderr, "ERROR [%s] %s\n", e.NodeID, e.Message)
						if e.Suggestion != "" {
							fmt.Fprintf(stderr, "  suggestion: %s\n", e.Suggestion)
						}
					}
				}
				return errors.Newf("diagram has %d errors", len(res.Errors))
			}
			for _, w := range res.Warnings {
				fmt.Fprintf(stderr, "WARN [%s] %s\n", w.NodeID, w.Message)
			}

			names, err := generator.Write(output, res.Files)
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), "wrote", filepath.Join(output, n))
			}
			a.log.Info("generation complete", "files", len(names), "warnings", len(res.Warnings), "dir", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Path to diagram JSON file (or - for stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (default from config)")
	cmd.Flags().BoolVar(&noTfvars, "no-tfvars", false, "Do not generate terraform.tfvars")
	cmd.Flags().BoolVar(&noCompose, "no-compose", false, "Do not generate docker-compose.yml")
	cmd.Flags().IntVar(&parallel, "parallel", 0, "Max parallel nodes per tier (0 = auto)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output errors as JSON")
	return cmd
}
