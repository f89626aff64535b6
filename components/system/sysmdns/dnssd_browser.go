package sysmdns

import (
	"context"
	"errors"
	"fmt"

	"github.com/brutella/dnssd"

	"github.com/open-control-systems/servus/components/core"
)

// DnssdBrowserParams represents various options for dnssd mDNS browser.
type DnssdBrowserParams struct {
	// Service is a mDNS service to lookup for, e.g. "_http._tcp".
	Service string

	// Domain is a mDNS domain, e.g. "local.".
	Domain string
}

// DnssdBrowser browses the local network for the mDNS services.
//
// References:
//   - https://github.com/brutella/dnssd
type DnssdBrowser struct {
	params DnssdBrowserParams
}

// NewDnssdBrowser is an initialization of DnssdBrowser.
func NewDnssdBrowser(params DnssdBrowserParams) *DnssdBrowser {
	return &DnssdBrowser{params: params}
}

// Browse looks up the service instances until ctx is canceled.
func (b *DnssdBrowser) Browse(ctx context.Context, handler ServiceHandler) error {
	service := FullServiceName(b.params.Service, b.params.Domain)

	add := func(entry dnssd.BrowseEntry) {
		s := newDnssdService(entry)

		if err := handler.HandleService(s); err != nil {
			core.LogErr.Printf("mdns-dnssd-browser: failed to handle service:"+
				" instance=%s: %v\n", s.instance, err)
		}
	}

	rmv := func(entry dnssd.BrowseEntry) {
		s := newDnssdService(entry)

		if err := handler.HandleServiceRemoved(s); err != nil {
			core.LogErr.Printf("mdns-dnssd-browser: failed to handle removed service:"+
				" instance=%s: %v\n", s.instance, err)
		}
	}

	err := dnssd.LookupType(ctx, service, add, rmv)
	if err == nil || errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return nil
	}

	return fmt.Errorf("mdns-dnssd-browser: lookup failed: service=%s: %w", service, err)
}

func newDnssdService(entry dnssd.BrowseEntry) *basicService {
	return &basicService{
		instance: entry.Name,
		name:     entry.Type,
		hostname: TrimHostname(entry.Host),
		port:     entry.Port,
		txt:      FormatTxtRecords(entry.Text),
		addrs:    entry.IPs,
	}
}
