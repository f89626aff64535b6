package main

import (
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-control-systems/servus/components/core"
	"github.com/open-control-systems/servus/components/http/htclient"
	"github.com/open-control-systems/servus/components/system/sysnet"
)

type fetchOptions struct {
	resolveOptions

	path string
}

func newFetchCommand(dirOpts *directoryOptions) *cobra.Command {
	var opts fetchOptions

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Discover the instance and fetch the HTTP resource it serves",
		RunE: func(cmd *cobra.Command, _ []string) error {
			closer := &core.FanoutCloser{}
			defer closer.Close()

			store := sysnet.NewResolveStore()

			dir, err := dirOpts.newDirectory(newResolveObserver(store))
			if err != nil {
				return err
			}
			closer.Add("directory", dir)

			if err := opts.discoverInstance(dir, opts.instance); err != nil {
				return err
			}

			url := "http://" + net.JoinHostPort(dir.Host(opts.instance),
				strconv.Itoa(int(dir.Port(opts.instance)))) + opts.path

			client := htclient.NewResolveClient(newResolver(closer, store))
			fetcher := htclient.NewUrlFetcher(cmd.Context(), client, url, opts.timeout)

			body, err := fetcher.Fetch()
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(body)

			return err
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.path, "path", "/", "HTTP resource path")

	cmd.PreRunE = func(_ *cobra.Command, _ []string) error {
		if !strings.HasPrefix(opts.path, "/") {
			opts.path = "/" + opts.path
		}

		return nil
	}

	return cmd
}
