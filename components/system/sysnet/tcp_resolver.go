package sysnet

import (
	"context"
	"fmt"
	"net"

	"github.com/open-control-systems/servus/components/status"
)

// TCPResolver resolves network addresses with the system resolver.
type TCPResolver struct{}

// Resolve resolves "host:port" into the TCP address, or a plain host into the IP address.
func (*TCPResolver) Resolve(ctx context.Context, address string) (net.Addr, error) {
	if _, _, err := net.SplitHostPort(address); err == nil {
		return net.ResolveTCPAddr("tcp", address)
	}

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("tcp-resolver: lookup failed: host=%s: %w", address, err)
	}

	if len(addrs) < 1 {
		return nil, fmt.Errorf("tcp-resolver: host=%s: %w", address, status.StatusNoData)
	}

	return &addrs[0], nil
}
