package dirtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/servus/components/directory/dircore"
	"github.com/open-control-systems/servus/components/status"
)

type testBackendSink struct {
	values  map[string]*dircore.ValueStore
	added   []string
	updated []string
	removed []string
}

func newTestBackendSink() *testBackendSink {
	return &testBackendSink{values: make(map[string]*dircore.ValueStore)}
}

func (s *testBackendSink) HandleAdded(instance string, values *dircore.ValueStore) {
	s.values[instance] = values.Clone()
	s.added = append(s.added, instance)
}

func (s *testBackendSink) HandleUpdated(instance string, values *dircore.ValueStore) {
	s.values[instance] = values.Clone()
	s.updated = append(s.updated, instance)
}

func (s *testBackendSink) HandleRemoved(instance string) {
	delete(s.values, instance)
	s.removed = append(s.removed, instance)
}

func TestBackendAnnounceBrowse(t *testing.T) {
	network := NewNetwork()

	announcer := New("_foo._tcp", network, newTestBackendSink())
	record := dircore.NewValueStore(nil)
	record.Set("foo", "bar")

	require.True(t, announcer.Announce(4242, "announcer", record).OK())
	require.True(t, announcer.IsAnnounced())
	require.True(t, announcer.AnnounceResult().OK())
	require.Equal(t, 1, network.Len())

	sink := newTestBackendSink()
	browser := New("_foo._tcp", network, sink)

	require.True(t, browser.BeginBrowsing(dircore.ScopeAll).OK())
	require.True(t, browser.IsBrowsing())
	require.True(t, browser.Browse(0).OK())

	require.Equal(t, []string{"announcer"}, sink.added)
	values := sink.values["announcer"]
	require.Equal(t, "bar", values.Get("foo"))
	require.Equal(t, Host, values.Get(dircore.KeyHost))
	require.Equal(t, "4242", values.Get(dircore.KeyPort))

	require.True(t, browser.Browse(0).OK())
	require.Equal(t, []string{"announcer"}, sink.added)
	require.Equal(t, []string{"announcer"}, sink.updated)

	announcer.Withdraw()
	require.False(t, announcer.IsAnnounced())
	require.Equal(t, 0, network.Len())

	require.True(t, browser.Browse(0).OK())
	require.Equal(t, []string{"announcer"}, sink.removed)
	require.Empty(t, sink.values)
}

func TestBackendAnnounceTwice(t *testing.T) {
	backend := New("_foo._tcp", NewNetwork(), newTestBackendSink())

	require.True(t, backend.Announce(1, "foo", dircore.NewValueStore(nil)).OK())
	require.Equal(t, status.CodePending,
		backend.Announce(2, "foo", dircore.NewValueStore(nil)).Code())
}

func TestBackendRepublish(t *testing.T) {
	network := NewNetwork()

	announcer := New("_foo._tcp", network, newTestBackendSink())
	record := dircore.NewValueStore(nil)
	record.Set("foo", "bar")
	require.True(t, announcer.Announce(1, "foo", record).OK())

	sink := newTestBackendSink()
	browser := New("_foo._tcp", network, sink)
	require.True(t, browser.BeginBrowsing(dircore.ScopeAll).OK())
	require.True(t, browser.Browse(0).OK())
	require.Equal(t, "bar", sink.values["foo"].Get("foo"))

	record.Set("foo", "baz")
	require.Equal(t, "bar", sink.values["foo"].Get("foo"))

	announcer.Republish(record)
	require.True(t, browser.Browse(0).OK())
	require.Equal(t, "baz", sink.values["foo"].Get("foo"))
}

func TestBackendServiceIsolation(t *testing.T) {
	network := NewNetwork()

	announcer := New("_foo._tcp", network, newTestBackendSink())
	require.True(t, announcer.Announce(1, "foo", dircore.NewValueStore(nil)).OK())

	sink := newTestBackendSink()
	browser := New("_bar._tcp", network, sink)
	require.True(t, browser.BeginBrowsing(dircore.ScopeAll).OK())
	require.True(t, browser.Browse(0).OK())
	require.Empty(t, sink.added)
}

func TestBackendSameInstanceLatestWins(t *testing.T) {
	network := NewNetwork()

	first := New("_foo._tcp", network, newTestBackendSink())
	require.True(t, first.Announce(1, "foo", dircore.NewValueStore(nil)).OK())

	second := New("_foo._tcp", network, newTestBackendSink())
	require.True(t, second.Announce(2, "foo", dircore.NewValueStore(nil)).OK())

	sink := newTestBackendSink()
	browser := New("_foo._tcp", network, sink)
	require.True(t, browser.BeginBrowsing(dircore.ScopeAll).OK())
	require.True(t, browser.Browse(0).OK())

	require.Equal(t, []string{"foo"}, sink.added)
	require.Equal(t, "2", sink.values["foo"].Get(dircore.KeyPort))

	second.Withdraw()
	require.True(t, browser.Browse(0).OK())
	require.Empty(t, sink.removed)
	require.Equal(t, "1", sink.values["foo"].Get(dircore.KeyPort))
}

func TestBackendBrowseSession(t *testing.T) {
	network := NewNetwork()

	announcer := New("_foo._tcp", network, newTestBackendSink())
	require.True(t, announcer.Announce(1, "foo", dircore.NewValueStore(nil)).OK())

	sink := newTestBackendSink()
	browser := New("_foo._tcp", network, sink)

	require.True(t, browser.Browse(0).OK())
	require.Empty(t, sink.added)

	require.True(t, browser.BeginBrowsing(dircore.ScopeAll).OK())
	require.Equal(t, status.CodePending, browser.BeginBrowsing(dircore.ScopeAll).Code())

	require.True(t, browser.Browse(0).OK())
	require.Equal(t, []string{"foo"}, sink.added)

	browser.EndBrowsing()
	require.False(t, browser.IsBrowsing())

	require.True(t, browser.BeginBrowsing(dircore.ScopeAll).OK())
	require.True(t, browser.Browse(0).OK())
	require.Equal(t, []string{"foo", "foo"}, sink.added)
}

func TestBackendClose(t *testing.T) {
	network := NewNetwork()

	backend := New("_foo._tcp", network, newTestBackendSink())
	require.True(t, backend.Announce(1, "foo", dircore.NewValueStore(nil)).OK())
	require.True(t, backend.BeginBrowsing(dircore.ScopeAll).OK())

	require.NoError(t, backend.Close())
	require.False(t, backend.IsAnnounced())
	require.False(t, backend.IsBrowsing())
	require.Equal(t, 0, network.Len())
}
