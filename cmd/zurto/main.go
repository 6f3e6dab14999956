// Command zurto lays out project diagrams, generates their deployment files and drives
// deployments against the Zurto platform.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/zurto/planner/internal/config"
	"github.com/zurto/planner/internal/diagram"
	"github.com/zurto/planner/internal/logger"
)

// app carries what every subcommand needs after flags are parsed.
type app struct {
	configPath string
	logLevel   string
	quiet      bool

	cfg config.Config
	log *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if hints := errors.GetAllHints(err); len(hints) > 0 {
			for _, h := range hints {
				fmt.Fprintf(os.Stderr, "  hint: %s\n", h)
			}
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "zurto",
		Short:         "Lay out, generate and deploy Zurto project diagrams",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.LogLevel = a.logLevel
			}
			a.cfg = cfg
			a.log = logger.New(cfg.Level(), cmd.ErrOrStderr())
			if a.quiet {
				a.log = logger.Discard
			}
			logger.Default = a.log
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to an HCL config file (default ./"+config.DefaultFile+" when present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Discard log output")

	root.AddCommand(layoutCmd(a))
	root.AddCommand(routeCmd(a))
	root.AddCommand(generateCmd(a))
	root.AddCommand(deployCmd(a))
	return root
}

// readDiagram decodes a diagram from a file path, or stdin for "-".
func readDiagram(cmd *cobra.Command, input string) (*diagram.Diagram, error) {
	if input == "" {
		return nil, errors.WithHint(errors.New("no input diagram"), "pass -i <file> or -i - for stdin")
	}
	var (
		data []byte
		err  error
	)
	if input == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return nil, errors.Wrap(err, "read input")
	}

	var d diagram.Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(err, "parse diagram JSON")
	}
	return &d, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
