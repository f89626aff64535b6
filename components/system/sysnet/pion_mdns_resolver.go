package sysnet

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"

	"golang.org/x/net/ipv4"

	"github.com/pion/mdns"

	"github.com/open-control-systems/servus/components/status"
)

// PionMdnsResolver resolves ".local" host names with the pure Go mDNS library.
//
// The internal Go resolver behaves differently depending on the environment it's
// running in: it can resolve mDNS addresses on the host machine, but fails to do so
// in the container, unless CGO is forced with GODEBUG=netdns=cgo.
type PionMdnsResolver struct {
	mu     sync.Mutex
	conn   *mdns.Conn
	closed bool
}

// Resolve mDNS hostname with pion library.
//
// Remarks:
//   - Can be used from multiple goroutines.
//   - The connection is opened on the first call.
func (r *PionMdnsResolver) Resolve(ctx context.Context, hostname string) (net.Addr, error) {
	if !IsMdnsHostname(hostname) {
		return nil, fmt.Errorf("pion-mdns-resolver: unsupported hostname: %s: %w",
			hostname, status.StatusInvalidArg)
	}

	conn, err := r.getConn()
	if err != nil {
		return nil, err
	}

	_, addr, err := conn.Query(ctx, hostname)
	if err != nil {
		return nil, fmt.Errorf("pion-mdns-resolver: query failed: hostname=%s: %w",
			hostname, err)
	}

	return addr, nil
}

// Close the underlying mDNS connection.
func (r *PionMdnsResolver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true

	if r.conn != nil {
		return r.conn.Close()
	}

	return nil
}

func (r *PionMdnsResolver) getConn() (*mdns.Conn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, fmt.Errorf("pion-mdns-resolver: closed: %w", status.StatusInvalidState)
	}

	if r.conn != nil {
		return r.conn, nil
	}

	// UDP Connection is closed when the mDNS connection is closed.
	udpConn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		return nil, fmt.Errorf("pion-mdns-resolver: failed to create UDP connection: %w", err)
	}

	mdnsConn, err := mdns.Server(ipv4.NewPacketConn(udpConn), &mdns.Config{})
	if err != nil {
		_ = udpConn.Close()

		return nil, fmt.Errorf("pion-mdns-resolver: failed to create mDNS connection: %w", err)
	}

	r.conn = mdnsConn

	return mdnsConn, nil
}

// IsMdnsHostname returns true if hostname belongs to the ".local" domain.
func IsMdnsHostname(hostname string) bool {
	return strings.HasSuffix(strings.TrimSuffix(hostname, "."), ".local")
}
