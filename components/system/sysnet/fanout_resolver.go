package sysnet

import (
	"context"
	"net"

	"go.uber.org/multierr"

	"github.com/open-control-systems/servus/components/status"
)

// FanoutResolver tries the underlying resolvers in order until one succeeds.
type FanoutResolver struct {
	resolvers []Resolver
}

// Resolve returns the address from the first resolver that succeeds.
//
// Remarks:
//   - If all resolvers fail, the returned error combines all failures.
func (r *FanoutResolver) Resolve(ctx context.Context, hostname string) (net.Addr, error) {
	if len(r.resolvers) == 0 {
		return nil, status.StatusNoData
	}

	var errs error

	for _, resolver := range r.resolvers {
		addr, err := resolver.Resolve(ctx, hostname)
		if err == nil {
			return addr, nil
		}

		errs = multierr.Append(errs, err)

		if ctx.Err() != nil {
			break
		}
	}

	return nil, errs
}

// Add adds resolver to the end of the chain.
func (r *FanoutResolver) Add(resolver Resolver) {
	r.resolvers = append(r.resolvers, resolver)
}
