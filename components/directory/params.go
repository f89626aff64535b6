package directory

import (
	"fmt"
	"strings"

	"github.com/benbjohnson/clock"

	"github.com/open-control-systems/servus/components/directory/dirtest"
	"github.com/open-control-systems/servus/components/system/sysmdns"
)

// TestDriver is a service name that always selects the in-process test backend.
const TestDriver = "_servus._test"

// Kind selects the transport of the directory.
type Kind string

const (
	// KindZeroconf announces and browses with the zeroconf mDNS library.
	KindZeroconf Kind = "zeroconf"

	// KindDnssd announces and browses with the dnssd mDNS library.
	KindDnssd Kind = "dnssd"

	// KindTest uses the in-process network shared between directories.
	KindTest Kind = "test"

	// KindNone disables announcing and browsing.
	KindNone Kind = "none"
)

// ParseKind parses the backend kind, empty string selects KindZeroconf.
func ParseKind(s string) (Kind, error) {
	switch kind := Kind(strings.ToLower(s)); kind {
	case "":
		return KindZeroconf, nil
	case KindZeroconf, KindDnssd, KindTest, KindNone:
		return kind, nil
	default:
		return KindNone, fmt.Errorf("unknown backend: %q", s)
	}
}

// Params represents various options for the directory.
type Params struct {
	// Backend selects the transport, KindZeroconf if empty.
	//
	// Remarks:
	//  - Ignored if the service name is TestDriver.
	Backend Kind

	// Domain is a mDNS domain, "local." if empty.
	Domain string

	// Network is shared by the test backends, a new isolated one is created if nil.
	Network *dirtest.Network

	// Clock for the announce and browse deadlines, the wall clock is used if nil.
	Clock clock.Clock

	// Observer is notified about every service discovered by the mDNS backends,
	// from the transport goroutine, optional.
	Observer sysmdns.ServiceHandler
}
