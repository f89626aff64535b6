package httransport

import (
	"fmt"
	"net"
	"net/http"

	"github.com/open-control-systems/servus/components/system/sysnet"
)

// ResolveRoundTripper resolves the request host with the custom resolver.
type ResolveRoundTripper struct {
	rs sysnet.Resolver
	rt http.RoundTripper
}

// NewResolveRoundTripper is an initialization of ResolveRoundTripper.
//
// Parameters:
//   - rs to resolve HTTP addresses.
//   - rt to perform an actual HTTP transaction.
func NewResolveRoundTripper(rs sysnet.Resolver, rt http.RoundTripper) *ResolveRoundTripper {
	return &ResolveRoundTripper{
		rs: rs,
		rt: rt,
	}
}

// RoundTrip resolves HTTP address and performs HTTP transaction.
//
// Remarks:
//   - The port and the Host header of the original request are kept.
func (r *ResolveRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	hostname := req.URL.Hostname()

	addr, err := r.rs.Resolve(req.Context(), hostname)
	if err != nil {
		return nil, fmt.Errorf(
			"resolve-round-tripper: failed to resolve HTTP address: hostname=%s: %w",
			hostname, err)
	}

	ip := addrIP(addr)
	if ip == nil {
		return nil, fmt.Errorf(
			"resolve-round-tripper: unsupported address: hostname=%s addr=%s", hostname, addr)
	}

	resolved := req.Clone(req.Context())

	if resolved.Host == "" {
		resolved.Host = req.URL.Host
	}

	if port := req.URL.Port(); port != "" {
		resolved.URL.Host = net.JoinHostPort(ip.String(), port)
	} else if ip.To4() == nil {
		resolved.URL.Host = "[" + ip.String() + "]"
	} else {
		resolved.URL.Host = ip.String()
	}

	return r.rt.RoundTrip(resolved)
}

func addrIP(addr net.Addr) net.IP {
	switch a := addr.(type) {
	case *net.IPAddr:
		return a.IP
	case *net.TCPAddr:
		return a.IP
	case *net.UDPAddr:
		return a.IP
	default:
		return net.ParseIP(addr.String())
	}
}
