package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/open-control-systems/servus/components/core"
	"github.com/open-control-systems/servus/components/storage/stcore"
)

const recordBucket = "servus_record"

type announceOptions struct {
	port     uint16
	instance string
	values   map[string]string
	dbPath   string
}

func newAnnounceCommand(dirOpts *directoryOptions) *cobra.Command {
	var opts announceOptions

	cmd := &cobra.Command{
		Use:   "announce",
		Short: "Announce the service instance until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			closer := &core.FanoutCloser{}
			defer closer.Close()

			record, err := loadRecord(closer, opts)
			if err != nil {
				return err
			}

			dir, err := dirOpts.newDirectory(nil)
			if err != nil {
				return err
			}
			closer.Add("directory", dir)

			for _, key := range slices.Sorted(maps.Keys(record)) {
				dir.Set(key, record[key])
			}

			res := dir.Announce(opts.port, opts.instance)
			switch {
			case res.Pending():
				core.LogWrn.Printf("servus: announce is still in progress: service=%s\n",
					dir.Name())

			case !res.OK():
				return fmt.Errorf("failed to announce: service=%s res=%s", dir.Name(), res)
			}

			fmt.Fprintln(cmd.OutOrStdout(), dir.String())

			<-cmd.Context().Done()

			return nil
		},
	}

	flags := cmd.Flags()
	flags.Uint16VarP(&opts.port, "port", "p", 0, "service port")
	flags.StringVarP(&opts.instance, "instance", "i", "", "instance name, host name if empty")
	flags.StringToStringVar(&opts.values, "set", nil, "announced key=value pairs")
	flags.StringVar(&opts.dbPath, "db", "", "bbolt database to persist the announced values")

	return cmd
}

// loadRecord merges the persisted values with the ones from the command line.
func loadRecord(closer *core.FanoutCloser, opts announceOptions) (map[string]string, error) {
	var db stcore.DB = &stcore.NoopDB{}

	if opts.dbPath != "" {
		bboltDB, err := stcore.NewBboltDB(opts.dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: path=%s: %w", opts.dbPath, err)
		}
		closer.Add("bbolt-db", bboltDB)

		db = stcore.NewBboltDBBucket(bboltDB, recordBucket)
	}

	store := stcore.NewRecordStore(db)

	record, err := store.Load()
	if err != nil {
		return nil, err
	}

	maps.Copy(record, opts.values)

	if err := store.Save(record); err != nil {
		return nil, err
	}

	return record, nil
}
