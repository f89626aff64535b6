package sysnet

import "net"

// ResolveHandler receives the host addresses learned from the network.
type ResolveHandler interface {
	// HandleResolve is called each time hostname is resolved to addr.
	HandleResolve(hostname string, addr net.Addr)
}
