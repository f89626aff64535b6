package sysmdns

import (
	"fmt"
	"net"

	"github.com/open-control-systems/servus/components/system/sysnet"
)

// ResolveServiceHandler notifies about resolving results over local network.
type ResolveServiceHandler struct {
	handler sysnet.ResolveHandler
}

// NewResolveServiceHandler is an initialization of ResolveServiceHandler.
func NewResolveServiceHandler(handler sysnet.ResolveHandler) *ResolveServiceHandler {
	return &ResolveServiceHandler{handler: handler}
}

// HandleService handles mDNS service discovered over local network.
func (h *ResolveServiceHandler) HandleService(service Service) error {
	addrs := service.Addrs()
	if len(addrs) < 1 {
		return fmt.Errorf("ignore service: instance=%s service=%s hostname=%s:"+
			" IP address not found",
			service.Instance(), service.Name(), service.Hostname())
	}

	h.handler.HandleResolve(service.Hostname(), &net.IPAddr{IP: addrs[0]})

	return nil
}

// HandleServiceRemoved is non-operational, the host can still serve other instances.
func (*ResolveServiceHandler) HandleServiceRemoved(_ Service) error {
	return nil
}
