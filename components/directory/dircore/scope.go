package dircore

import (
	"fmt"
	"os"
	"strings"
)

// Scope restricts the discovery to a set of network interfaces.
type Scope int

const (
	// ScopeAll discovers instances on all network interfaces.
	ScopeAll Scope = iota

	// ScopeLocal discovers only instances running on the local host.
	ScopeLocal
)

// String returns string representation of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeAll:
		return "all"
	case ScopeLocal:
		return "local"
	default:
		return "<none>"
	}
}

// ParseScope parses scope from its string representation.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(s) {
	case "all", "":
		return ScopeAll, nil
	case "local":
		return ScopeLocal, nil
	default:
		return ScopeAll, fmt.Errorf("unknown scope: %q", s)
	}
}

// Hostname returns the name of the local host, or "localhost" if it can't be read.
func Hostname() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return "localhost"
	}

	return hostname
}

// IsLocalHost returns true if host refers to the local machine.
//
// Remarks:
//   - Only the first label of both names is compared, so "bonsai.local." matches
//     the local hostname "bonsai" as well as "bonsai.lan".
func IsLocalHost(host string, localHost string) bool {
	return strings.EqualFold(firstLabel(host), firstLabel(localHost))
}

// InScope returns true if an instance resolved on host is visible for scope.
func InScope(scope Scope, host string, localHost string) bool {
	if scope != ScopeLocal {
		return true
	}

	return IsLocalHost(host, localHost)
}

func firstLabel(host string) string {
	host = strings.TrimSuffix(host, ".")

	if pos := strings.IndexByte(host, '.'); pos >= 0 {
		return host[:pos]
	}

	return host
}
