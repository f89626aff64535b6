package sysmdns

import (
	"testing"

	"github.com/grandcat/zeroconf"
	"github.com/stretchr/testify/require"
)

func newTestZeroconfEntry(instance string, port int, ttl uint32) *zeroconf.ServiceEntry {
	entry := zeroconf.NewServiceEntry(instance, "_foo._tcp", "local.")
	entry.HostName = "bonsai.local."
	entry.Port = port
	entry.TTL = ttl
	entry.Text = []string{"foo=bar"}

	return entry
}

func TestZeroconfBrowserHandleEntry(t *testing.T) {
	browser := &ZeroconfBrowser{known: make(map[string]*basicService)}
	handler := &testServiceHandler{}
	seen := make(map[string]struct{})

	browser.handleEntry(handler, newTestZeroconfEntry("foo", 80, 120), seen)
	require.Equal(t, []string{"foo"}, handler.added)
	require.Contains(t, seen, "foo")
	require.Equal(t, "bonsai.local", browser.known["foo"].Hostname())

	browser.handleEntry(handler, newTestZeroconfEntry("foo", 80, 120), seen)
	require.Equal(t, []string{"foo"}, handler.added)

	browser.handleEntry(handler, newTestZeroconfEntry("foo", 8080, 120), seen)
	require.Equal(t, []string{"foo", "foo"}, handler.added)

	browser.handleEntry(handler, newTestZeroconfEntry("foo", 8080, 0), seen)
	require.Equal(t, []string{"foo"}, handler.removed)
	require.NotContains(t, seen, "foo")
	require.Empty(t, browser.known)

	browser.handleEntry(handler, newTestZeroconfEntry("bar", 80, 0), seen)
	require.Equal(t, []string{"foo"}, handler.removed)
}

func TestZeroconfBrowserDefaults(t *testing.T) {
	if testing.Short() {
		t.Skip("requires multicast network")
	}

	browser, err := NewZeroconfBrowser(ZeroconfBrowserParams{Service: "_foo._tcp"})
	require.NoError(t, err)

	require.Equal(t, DefaultDomain, browser.params.Domain)
	require.Positive(t, browser.params.Interval)
}
