package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/zurto/planner/internal/aiclient"
	"github.com/zurto/planner/internal/deploy"
	"github.com/zurto/planner/internal/generator"
)

func deployCmd(a *app) *cobra.Command {
	var (
		projectID   string
		fromStep    string
		retry       bool
		apiURL      string
		environment string
		artifacts   bool
		metricsAddr string
	)
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Run the deployment pipeline for a project",
		Long: `Run the seven step deployment pipeline (validate, planning, generate, docker, build,
deploy, verify) against the platform API. Ctrl-C cancels the run at its next checkpoint.

With --retry the pipeline first runs once and, if a step fails, resumes from that step.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID == "" {
				return errors.WithHint(errors.New("no project"), "pass --project <id>")
			}
			var start deploy.StepID
			if fromStep != "" {
				id, err := deploy.ParseStep(fromStep)
				if err != nil {
					return errors.WithHint(err, "steps: validate, planning, generate, docker, build, deploy, verify")
				}
				start = id
			}
			if apiURL == "" {
				apiURL = a.cfg.Deploy.APIURL
			}
			if environment == "" {
				environment = a.cfg.Deploy.Environment
			}

			client := aiclient.New(apiURL)
			reg := prometheus.NewRegistry()
			metrics, err := deploy.NewMetrics(reg)
			if err != nil {
				return errors.Wrap(err, "register metrics")
			}
			if metricsAddr != "" {
				srv := serveMetrics(metricsAddr, reg)
				defer srv.Close()
			}

			opts := deploy.DefaultOptions()
			opts.Environment = environment
			opts.DelayScale = a.cfg.Deploy.DelayScale
			opts.Logger = a.log
			opts.Metrics = metrics
			opts.OnChange = progressPrinter(cmd.OutOrStdout())
			if artifacts {
				opts.Artifacts = &generator.DiskWriter{
					Source:    client,
					Dir:       a.cfg.Deploy.OutputDir,
					Generator: generator.New(generator.DefaultOptions()),
				}
			}
			o := deploy.New(client, opts)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				o.Cancel()
			}()

			// The orchestrator owns cancellation; the signal context only triggers Cancel.
			runCtx := context.WithoutCancel(ctx)
			err = o.Start(runCtx, projectID, start)
			if err != nil && retry && !errors.Is(err, deploy.ErrCancelled) {
				fmt.Fprintf(cmd.OutOrStdout(), "retrying from failed step\n")
				err = o.RetryFromFailed(runCtx, projectID)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deployment of %s complete\n", projectID)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "Project id")
	cmd.Flags().StringVar(&fromStep, "from-step", "", "Start at this step, keeping completed ones")
	cmd.Flags().BoolVar(&retry, "retry", false, "Retry once from the failed step")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "Platform API base URL (default from config)")
	cmd.Flags().StringVar(&environment, "environment", "", "Target environment (default from config)")
	cmd.Flags().BoolVar(&artifacts, "write-artifacts", false, "Generate the Docker files locally during the docker step")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while running")
	return cmd
}

// progressPrinter prints a line whenever a step changes status or message.
func progressPrinter(w io.Writer) func(deploy.State) {
	var mu sync.Mutex
	last := map[deploy.StepID]string{}
	return func(s deploy.State) {
		mu.Lock()
		defer mu.Unlock()
		for _, st := range s.Steps {
			key := string(st.Status) + "|" + st.Message
			if last[st.ID] == key || st.Status == deploy.StatusPending {
				continue
			}
			last[st.ID] = key
			fmt.Fprintf(w, "[%3.0f%%] %-30s %-9s %s\n", s.OverallProgress, st.Name, st.Status, firstNonEmpty(st.Error, st.Message))
		}
	}
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
