package sysnet

import (
	"context"
	"net"
	"sync"

	"github.com/open-control-systems/servus/components/core"
	"github.com/open-control-systems/servus/components/status"
)

// ResolveStore caches the result of host resolving.
//
// Remarks:
//   - Addresses are learned from HandleResolve(), e.g. from the mDNS browser.
type ResolveStore struct {
	updateCh chan struct{}

	mu            sync.Mutex
	resolvedAddrs map[string]net.Addr
}

// NewResolveStore is an initialization of ResolveStore.
func NewResolveStore() *ResolveStore {
	return &ResolveStore{
		updateCh:      make(chan struct{}, 1),
		resolvedAddrs: make(map[string]net.Addr),
	}
}

// HandleResolve caches the resolved address.
func (s *ResolveStore) HandleResolve(host string, addr net.Addr) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ra, ok := s.resolvedAddrs[host]
	if !ok {
		core.LogInf.Printf("resolve-store: addr resolved: host=%s addr=%s\n", host, addr)

		s.resolvedAddrs[host] = addr
	} else if ra.String() != addr.String() {
		core.LogInf.Printf("resolve-store: addr changed: host=%s cur=%s new=%s\n",
			host, ra, addr)

		s.resolvedAddrs[host] = addr
	}

	select {
	case s.updateCh <- struct{}{}:
	default:
	}
}

// Resolve resolves the host address to the network address.
//
// Remarks:
//   - Waits for the address until ctx is done.
func (s *ResolveStore) Resolve(ctx context.Context, host string) (net.Addr, error) {
	for {
		if addr, err := s.getAddr(host); err == nil {
			return addr, nil
		}

		select {
		case <-s.updateCh:
		case <-ctx.Done():
			return nil, status.StatusTimeout
		}
	}
}

// Lookup returns the cached address without waiting.
func (s *ResolveStore) Lookup(host string) (net.Addr, error) {
	return s.getAddr(host)
}

// Remove forgets the cached address of the host.
func (s *ResolveStore) Remove(host string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.resolvedAddrs, host)
}

// Len returns the number of cached addresses.
func (s *ResolveStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.resolvedAddrs)
}

func (s *ResolveStore) getAddr(host string) (net.Addr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	addr, ok := s.resolvedAddrs[host]
	if !ok {
		return nil, status.StatusNoData
	}

	return addr, nil
}
