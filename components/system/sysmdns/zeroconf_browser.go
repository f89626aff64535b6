package sysmdns

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/grandcat/zeroconf"

	"github.com/open-control-systems/servus/components/core"
)

// ZeroconfBrowserParams represents various options for zeroconf mDNS browser.
type ZeroconfBrowserParams struct {
	// Service is a mDNS service to lookup for.
	//
	// Examples:
	//  - Lookup for all HTTP services over TCP protocol: "_http._tcp".
	Service string

	// Domain is a mDNS domain.
	//
	// Examples:
	//  - Local domain: "local.".
	Domain string

	// Interval is a duration of a single lookup round.
	//
	// Remarks:
	//  - Services not seen during the whole round are reported as removed.
	Interval time.Duration
}

// ZeroconfBrowser browses the local network for the mDNS services.
//
// References:
//   - https://github.com/grandcat/zeroconf
type ZeroconfBrowser struct {
	params   ZeroconfBrowserParams
	resolver *zeroconf.Resolver
	known    map[string]*basicService
}

// NewZeroconfBrowser is an initialization of ZeroconfBrowser.
//
// Remarks:
//   - Fails if the multicast connections can't be opened.
func NewZeroconfBrowser(params ZeroconfBrowserParams) (*ZeroconfBrowser, error) {
	if params.Interval <= 0 {
		params.Interval = time.Second * 10
	}

	params.Domain = NormalizeDomain(params.Domain)

	resolver, err := zeroconf.NewResolver()
	if err != nil {
		return nil, fmt.Errorf("mdns-zeroconf-browser: failed to create resolver: %w", err)
	}

	return &ZeroconfBrowser{
		params:   params,
		resolver: resolver,
		known:    make(map[string]*basicService),
	}, nil
}

// Browse runs lookup rounds until ctx is canceled.
func (b *ZeroconfBrowser) Browse(ctx context.Context, handler ServiceHandler) error {
	clear(b.known)

	for {
		seen, err := b.browseRound(ctx, handler)
		if err != nil {
			return err
		}

		if ctx.Err() != nil {
			return nil
		}

		for instance, service := range b.known {
			if _, ok := seen[instance]; !ok {
				delete(b.known, instance)
				b.handleRemoved(handler, service)
			}
		}
	}
}

// The resolver shuts down its connections once the browse context is done,
// so every round uses the new one.
func (b *ZeroconfBrowser) browseRound(
	ctx context.Context,
	handler ServiceHandler,
) (map[string]struct{}, error) {
	resolver := b.resolver
	b.resolver = nil

	if resolver == nil {
		r, err := zeroconf.NewResolver()
		if err != nil {
			return nil, fmt.Errorf("mdns-zeroconf-browser: failed to create resolver: %w", err)
		}

		resolver = r
	}

	roundCtx, cancel := context.WithTimeout(ctx, b.params.Interval)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)

	if err := resolver.Browse(roundCtx, b.params.Service, b.params.Domain, entries); err != nil {
		return nil, fmt.Errorf("mdns-zeroconf-browser: browse failed: service=%s"+
			" domain=%s: %w", b.params.Service, b.params.Domain, err)
	}

	seen := make(map[string]struct{})

	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return seen, nil
			}

			b.handleEntry(handler, entry, seen)

		case <-roundCtx.Done():
			return seen, nil
		}
	}
}

func (b *ZeroconfBrowser) handleEntry(
	handler ServiceHandler,
	entry *zeroconf.ServiceEntry,
	seen map[string]struct{},
) {
	if entry == nil || entry.Instance == "" {
		return
	}

	service := &basicService{
		instance: entry.Instance,
		name:     entry.Service,
		hostname: TrimHostname(entry.HostName),
		port:     entry.Port,
		txt:      entry.Text,
		addrs:    append(append([]net.IP{}, entry.AddrIPv4...), entry.AddrIPv6...),
	}

	if entry.TTL == 0 {
		delete(seen, entry.Instance)

		if prev, ok := b.known[entry.Instance]; ok {
			delete(b.known, entry.Instance)
			b.handleRemoved(handler, prev)
		}

		return
	}

	seen[entry.Instance] = struct{}{}

	if prev, ok := b.known[entry.Instance]; ok && prev.equal(service) {
		return
	}

	b.known[entry.Instance] = service

	if err := handler.HandleService(service); err != nil {
		core.LogErr.Printf("mdns-zeroconf-browser: failed to handle service:"+
			" instance=%s: %v\n", service.instance, err)
	}
}

func (*ZeroconfBrowser) handleRemoved(handler ServiceHandler, service Service) {
	if err := handler.HandleServiceRemoved(service); err != nil {
		core.LogErr.Printf("mdns-zeroconf-browser: failed to handle removed service:"+
			" instance=%s: %v\n", service.Instance(), err)
	}
}
