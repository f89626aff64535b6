package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/open-control-systems/servus/components/directory"
	"github.com/open-control-systems/servus/components/directory/dircore"
	"github.com/open-control-systems/servus/components/system/sysmdns"
)

var errNoService = errors.New("service name is required, e.g. --service _http._tcp")

type directoryOptions struct {
	service string
	backend string
	domain  string
}

func (o *directoryOptions) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVarP(&o.service, "service", "s", "", "mDNS service name, e.g. _http._tcp")
	flags.StringVar(&o.backend, "backend", string(directory.KindZeroconf),
		"transport: zeroconf, dnssd, test or none")
	flags.StringVar(&o.domain, "domain", sysmdns.DefaultDomain, "mDNS domain")
}

func (o *directoryOptions) newDirectory(observer sysmdns.ServiceHandler) (*directory.Directory, error) {
	if o.service == "" {
		return nil, errNoService
	}

	kind, err := directory.ParseKind(o.backend)
	if err != nil {
		return nil, err
	}

	dir := directory.New(o.service, directory.Params{
		Backend:  kind,
		Domain:   o.domain,
		Observer: observer,
	})

	return dir, nil
}

type discoverOptions struct {
	scope      string
	browseTime time.Duration
}

func (o *discoverOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringVar(&o.scope, "scope", dircore.ScopeAll.String(), "discovery scope: all or local")
	flags.DurationVar(&o.browseTime, "time", time.Second*2, "how long to browse")
}

func (o *discoverOptions) discover(dir *directory.Directory) ([]string, error) {
	scope, err := dircore.ParseScope(o.scope)
	if err != nil {
		return nil, err
	}

	return dir.Discover(scope, o.browseTime), nil
}

func (o *discoverOptions) discoverInstance(dir *directory.Directory, instance string) error {
	if instance == "" {
		return errors.New("instance name is required, e.g. --instance growlab")
	}

	instances, err := o.discover(dir)
	if err != nil {
		return err
	}

	for _, name := range instances {
		if name == instance {
			return nil
		}
	}

	return fmt.Errorf("instance not found: service=%s instance=%s", dir.Name(), instance)
}
