package sysmdns

// ServiceHandler is a mDNS service handler.
type ServiceHandler interface {
	// HandleService handles the mDNS service discovered or updated over local network.
	HandleService(service Service) error

	// HandleServiceRemoved handles the mDNS service that has left the local network.
	//
	// Remarks:
	//  - Only Instance() and Name() are guaranteed to be set.
	HandleServiceRemoved(service Service) error
}
