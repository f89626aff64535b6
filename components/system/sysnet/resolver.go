package sysnet

import (
	"context"
	"net"
)

// Resolver resolves host names to network addresses.
type Resolver interface {
	// Resolve hostname.
	Resolve(ctx context.Context, hostname string) (net.Addr, error)
}

// ResolverFunc is a function type that implements the Resolver interface.
type ResolverFunc func(ctx context.Context, hostname string) (net.Addr, error)

// Resolve calls the function itself to fulfill the Resolver interface.
func (f ResolverFunc) Resolve(ctx context.Context, hostname string) (net.Addr, error) {
	return f(ctx, hostname)
}
