package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-control-systems/servus/components/directory"
)

func newDiscoverCommand(dirOpts *directoryOptions) *cobra.Command {
	var opts discoverOptions

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Browse for a while and print the discovered instances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := dirOpts.newDirectory(nil)
			if err != nil {
				return err
			}
			defer dir.Close()

			instances, err := opts.discover(dir)
			if err != nil {
				return err
			}

			for _, instance := range instances {
				printInstance(cmd.OutOrStdout(), dir, instance)
			}

			return nil
		},
	}

	opts.register(cmd)

	return cmd
}

func printInstance(w io.Writer, dir *directory.Directory, instance string) {
	fmt.Fprintf(w, "%s\n", instance)

	for _, key := range dir.InstanceKeys(instance) {
		fmt.Fprintf(w, "    %s = %s\n", key, dir.InstanceValue(instance, key))
	}
}
