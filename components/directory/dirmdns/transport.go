package dirmdns

import (
	"github.com/benbjohnson/clock"

	"github.com/open-control-systems/servus/components/directory/dircore"
	"github.com/open-control-systems/servus/components/system/sysmdns"
)

// TransportParams represents options shared by the real mDNS transports.
type TransportParams struct {
	// Service is a mDNS service name, e.g. "_servus._tcp".
	Service string

	// Domain is a mDNS domain, e.g. "local.".
	Domain string

	// Sink to receive the instance changes.
	Sink dircore.EventSink

	// Observer is notified about every discovered service, optional.
	Observer sysmdns.ServiceHandler

	// Clock for the browse deadlines, optional.
	Clock clock.Clock
}

// NewZeroconf creates the backend over the zeroconf library.
//
// Remarks:
//   - Fails if the mDNS resolver can't be created.
func NewZeroconf(params TransportParams) (*Backend, error) {
	browser, err := sysmdns.NewZeroconfBrowser(sysmdns.ZeroconfBrowserParams{
		Service: params.Service,
		Domain:  params.Domain,
	})
	if err != nil {
		return nil, err
	}

	return New(Params{
		Name:      "zeroconf",
		Service:   params.Service,
		Domain:    params.Domain,
		Publisher: &sysmdns.ZeroconfPublisher{},
		Browser:   browser,
		Sink:      params.Sink,
		Observer:  params.Observer,
		Clock:     params.Clock,
	}), nil
}

// NewDnssd creates the backend over the dnssd library.
//
// Remarks:
//   - Fails if the mDNS responder can't be created.
func NewDnssd(params TransportParams) (*Backend, error) {
	publisher, err := sysmdns.NewDnssdPublisher()
	if err != nil {
		return nil, err
	}

	return New(Params{
		Name:      "dnssd",
		Service:   params.Service,
		Domain:    params.Domain,
		Publisher: publisher,
		Browser: sysmdns.NewDnssdBrowser(sysmdns.DnssdBrowserParams{
			Service: params.Service,
			Domain:  params.Domain,
		}),
		Sink:     params.Sink,
		Observer: params.Observer,
		Clock:    params.Clock,
	}), nil
}
