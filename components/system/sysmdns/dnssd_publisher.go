package sysmdns

import (
	"context"
	"errors"
	"fmt"

	"github.com/brutella/dnssd"

	"github.com/open-control-systems/servus/components/core"
)

// DnssdPublisher announces mDNS services with the dnssd library.
//
// Remarks:
//   - All publications share a single responder running in the background.
//
// References:
//   - https://github.com/brutella/dnssd
type DnssdPublisher struct {
	responder dnssd.Responder
	cancel    context.CancelFunc
	doneCh    chan struct{}
}

// NewDnssdPublisher creates the responder and starts answering mDNS queries.
func NewDnssdPublisher() (*DnssdPublisher, error) {
	responder, err := dnssd.NewResponder()
	if err != nil {
		return nil, fmt.Errorf("mdns-dnssd-publisher: failed to create responder: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	p := &DnssdPublisher{
		responder: responder,
		cancel:    cancel,
		doneCh:    make(chan struct{}),
	}

	go p.run(ctx)

	return p, nil
}

// Publish adds the service to the responder.
func (p *DnssdPublisher) Publish(params PublishParams) (Publication, error) {
	service, err := dnssd.NewService(dnssd.Config{
		Name:   params.Instance,
		Type:   params.Service,
		Domain: TrimHostname(NormalizeDomain(params.Domain)),
		Text:   LimitTxtValues(params.Text),
		Port:   params.Port,
	})
	if err != nil {
		return nil, fmt.Errorf("mdns-dnssd-publisher: failed to create service:"+
			" instance=%s service=%s: %w", params.Instance, params.Service, err)
	}

	handle, err := p.responder.Add(service)
	if err != nil {
		return nil, fmt.Errorf("mdns-dnssd-publisher: failed to add service:"+
			" instance=%s service=%s: %w", params.Instance, params.Service, err)
	}

	return &dnssdPublication{responder: p.responder, handle: handle}, nil
}

// Close stops the responder.
func (p *DnssdPublisher) Close() error {
	p.cancel()
	<-p.doneCh

	return nil
}

func (p *DnssdPublisher) run(ctx context.Context) {
	defer close(p.doneCh)

	if err := p.responder.Respond(ctx); err != nil && !errors.Is(err, context.Canceled) {
		core.LogErr.Printf("mdns-dnssd-publisher: responder failed: %v\n", err)
	}
}

type dnssdPublication struct {
	responder dnssd.Responder
	handle    dnssd.ServiceHandle
}

func (p *dnssdPublication) SetText(text map[string]string) error {
	p.handle.UpdateText(LimitTxtValues(text), p.responder)

	return nil
}

func (p *dnssdPublication) Shutdown() error {
	p.responder.Remove(p.handle)

	return nil
}
