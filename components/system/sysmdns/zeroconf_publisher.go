package sysmdns

import (
	"fmt"

	"github.com/grandcat/zeroconf"
)

// ZeroconfPublisher announces mDNS services with the zeroconf library.
//
// References:
//   - https://github.com/grandcat/zeroconf
type ZeroconfPublisher struct{}

// Publish registers the service on all multicast interfaces.
func (*ZeroconfPublisher) Publish(params PublishParams) (Publication, error) {
	server, err := zeroconf.Register(
		params.Instance,
		params.Service,
		NormalizeDomain(params.Domain),
		params.Port,
		FormatTxtRecords(params.Text),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("mdns-zeroconf-publisher: register failed: instance=%s"+
			" service=%s: %w", params.Instance, params.Service, err)
	}

	return &zeroconfPublication{server: server}, nil
}

// Close is non-operational, every publication owns its own server.
func (*ZeroconfPublisher) Close() error {
	return nil
}

type zeroconfPublication struct {
	server *zeroconf.Server
}

func (p *zeroconfPublication) SetText(text map[string]string) error {
	p.server.SetText(FormatTxtRecords(text))

	return nil
}

func (p *zeroconfPublication) Shutdown() error {
	p.server.Shutdown()

	return nil
}
