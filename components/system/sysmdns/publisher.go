package sysmdns

// PublishParams represents various options for the mDNS service publishing.
type PublishParams struct {
	// Instance is a mDNS service instance name, e.g. "Bonsai GrowLab Firmware".
	Instance string

	// Service is a mDNS service name, e.g. "_http._tcp".
	Service string

	// Domain is a mDNS domain, e.g. "local.".
	Domain string

	// Port is a service port.
	Port int

	// Text is a set of txt records to announce with the service.
	Text map[string]string
}

// Publication is a single mDNS service announced on the local network.
type Publication interface {
	// SetText replaces the announced txt records.
	SetText(text map[string]string) error

	// Shutdown sends the goodbye packets and stops answering queries.
	Shutdown() error
}

// Publisher announces mDNS services on the local network.
type Publisher interface {
	// Publish starts announcing the service.
	//
	// Remarks:
	//  - May block while the instance name is probed on the network.
	Publish(params PublishParams) (Publication, error)

	// Close releases the publisher resources.
	Close() error
}
