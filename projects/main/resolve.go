package main

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/open-control-systems/servus/components/core"
	"github.com/open-control-systems/servus/components/system/sysmdns"
	"github.com/open-control-systems/servus/components/system/sysnet"
)

type resolveOptions struct {
	discoverOptions

	instance string
	timeout  time.Duration
}

func (o *resolveOptions) register(cmd *cobra.Command) {
	o.discoverOptions.register(cmd)

	flags := cmd.Flags()
	flags.StringVarP(&o.instance, "instance", "i", "", "instance name")
	flags.DurationVar(&o.timeout, "timeout", time.Second*5, "host resolving and request timeout")
}

func newResolveCommand(dirOpts *directoryOptions) *cobra.Command {
	var opts resolveOptions

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Discover the instance and resolve its host address",
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

			resolver := newResolver(closer, store)

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			host := dir.Host(opts.instance)

			addr, err := resolver.Resolve(ctx, host)
			if err != nil {
				return fmt.Errorf("failed to resolve host: host=%s: %w", host, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", host, net.JoinHostPort(
				addrIP(addr), strconv.Itoa(int(dir.Port(opts.instance)))))

			return nil
		},
	}

	opts.register(cmd)

	return cmd
}

// newResolver returns the resolver chain: the addresses seen during discovery,
// then the mDNS query for ".local" hosts, then the system resolver.
func newResolver(closer *core.FanoutCloser, store *sysnet.ResolveStore) sysnet.Resolver {
	pionResolver := &sysnet.PionMdnsResolver{}
	closer.Add("pion-mdns-resolver", pionResolver)

	resolver := &sysnet.FanoutResolver{}
	resolver.Add(sysnet.ResolverFunc(func(_ context.Context, host string) (net.Addr, error) {
		return store.Lookup(host)
	}))
	resolver.Add(pionResolver)
	resolver.Add(&sysnet.TCPResolver{})

	return resolver
}

func addrIP(addr net.Addr) string {
	switch a := addr.(type) {
	case *net.IPAddr:
		return a.IP.String()
	case *net.TCPAddr:
		return a.IP.String()
	case *net.UDPAddr:
		return a.IP.String()
	default:
		return addr.String()
	}
}

// newResolveObserver caches the addresses of the hosts seen by the mDNS transport.
func newResolveObserver(store *sysnet.ResolveStore) sysmdns.ServiceHandler {
	return sysmdns.NewResolveServiceHandler(store)
}
