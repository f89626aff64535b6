package main

import (
	"context"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/open-control-systems/servus/components/core"
	"github.com/open-control-systems/servus/components/directory"
	"github.com/open-control-systems/servus/components/directory/dirview"
	"github.com/open-control-systems/servus/components/http/htcore"
	"github.com/open-control-systems/servus/components/storage/stinfluxdb"
	"github.com/open-control-systems/servus/components/system/syssched"
)

type browseOptions struct {
	server   htcore.ServerParams
	influxDB stinfluxdb.DBParams
}

func newBrowseCommand(dirOpts *directoryOptions) *cobra.Command {
	var opts browseOptions

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse continuously and serve the discovered instances over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			closer := &core.FanoutCloser{}
			defer closer.Close()

			dir, err := dirOpts.newDirectory(nil)
			if err != nil {
				return err
			}
			closer.Add("directory", dir)

			return runBrowser(cmd.Context(), closer, dir, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.server.Host, "http-host", "", "HTTP server host, all interfaces if empty")
	flags.IntVar(&opts.server.Port, "http-port", 8080, "HTTP server port, random if zero")
	flags.StringVar(&opts.influxDB.URL, "influxdb-url", os.Getenv("INFLUXDB_URL"),
		"influxDB URL to store the instance events, disabled if empty")
	flags.StringVar(&opts.influxDB.Org, "influxdb-org", os.Getenv("INFLUXDB_ORG"),
		"influxDB organization")
	flags.StringVar(&opts.influxDB.Bucket, "influxdb-bucket", os.Getenv("INFLUXDB_BUCKET"),
		"influxDB bucket")
	flags.StringVar(&opts.influxDB.Token, "influxdb-token", os.Getenv("INFLUXDB_API_TOKEN"),
		"influxDB API token")

	return cmd
}

func runBrowser(
	ctx context.Context,
	closer *core.FanoutCloser,
	dir *directory.Directory,
	opts browseOptions,
) error {
	model := dirview.NewModel(dir)
	closer.Add("dirview-model", model)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	metrics, err := dirview.NewMetrics(reg, dir)
	if err != nil {
		return err
	}
	dir.AddListener(metrics)

	if opts.influxDB.URL != "" {
		dir.AddListener(stinfluxdb.NewEventHandler(ctx, closer, dir, opts.influxDB))
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/instances", dirview.NewTreeHandler(model))
	mux.Handle("/api/v1/snapshot", dirview.NewSnapshotHandler(dir))
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server, err := htcore.NewServer(mux, opts.server)
	if err != nil {
		return err
	}

	runner := syssched.NewAsyncTaskRunner(ctx, model, model, syssched.AsyncTaskRunnerParams{
		UpdateInterval: dirview.BrowseInterval,
	})

	starter := &syssched.FanoutStarter{}
	starter.Add(server)
	starter.Add(runner)

	if err := starter.Start(); err != nil {
		return err
	}

	core.LogInf.Printf("servus: browsing: service=%s backend=%s url=%s\n",
		dir.Name(), dir.Backend(), server.URL())

	<-ctx.Done()

	stopper := &syssched.FanoutStopper{}
	stopper.Add(server)
	stopper.Add(runner)

	return stopper.Stop()
}
