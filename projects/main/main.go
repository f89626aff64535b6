package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/open-control-systems/servus/components/core"
)

func main() {
	if err := core.SetLogFile(os.Getenv("SERVUS_LOG_PATH")); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to setup log file: ", err)
	}

	appContext, cancelFunc := signal.NotifyContext(context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	defer cancelFunc()

	if err := newRootCommand().ExecuteContext(appContext); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts directoryOptions

	cmd := &cobra.Command{
		Use:          "servus",
		Short:        "Announce and discover services on the local network",
		SilenceUsage: true,
	}

	opts.register(cmd)

	cmd.AddCommand(
		newAnnounceCommand(&opts),
		newDiscoverCommand(&opts),
		newBrowseCommand(&opts),
		newResolveCommand(&opts),
		newFetchCommand(&opts),
	)

	return cmd
}
