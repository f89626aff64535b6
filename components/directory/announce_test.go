package directory

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/servus/components/directory/dircore"
	"github.com/open-control-systems/servus/components/directory/dirnone"
	"github.com/open-control-systems/servus/components/status"
)

// testAnnounceBackend completes the publication after the given number of
// Process() calls, each call advances the mock clock by its timeout.
type testAnnounceBackend struct {
	dirnone.Backend

	clock     *clock.Mock
	processN  int
	completeN int
	outcome   status.Result
	result    status.Result
	announced bool
	timeouts  []time.Duration
}

func (b *testAnnounceBackend) Name() string {
	return "test-announce"
}

func (b *testAnnounceBackend) Announce(_ uint16, _ string, _ *dircore.ValueStore) status.Result {
	b.result = status.NewResult(status.CodePending)

	return b.result
}

func (b *testAnnounceBackend) AnnounceResult() status.Result {
	return b.result
}

func (b *testAnnounceBackend) Process(timeout time.Duration) status.Result {
	b.timeouts = append(b.timeouts, timeout)
	b.clock.Add(timeout)
	b.processN++

	if b.completeN > 0 && b.processN == b.completeN {
		b.result = b.outcome
		b.announced = b.outcome.OK()
	}

	return status.Result{}
}

func (b *testAnnounceBackend) IsAnnounced() bool {
	return b.announced
}

func newTestAnnounceDirectory(backend *testAnnounceBackend) *Directory {
	return newDirectory("_foo._tcp", backend.clock,
		func(_ dircore.EventSink) (dircore.Backend, error) {
			return backend, nil
		})
}

func TestDirectoryAnnouncePendingThenSuccess(t *testing.T) {
	backend := &testAnnounceBackend{
		clock:     clock.NewMock(),
		completeN: 3,
		outcome:   status.Result{},
	}

	dir := newTestAnnounceDirectory(backend)

	require.True(t, dir.Announce(80, "foo").OK())
	require.True(t, dir.IsAnnounced())
	require.Equal(t, 3, backend.processN)

	for _, timeout := range backend.timeouts {
		require.Equal(t, announceStep, timeout)
	}
}

func TestDirectoryAnnouncePendingThenFailure(t *testing.T) {
	outcome := status.NewResultWithCause(status.CodeNameConflict, errors.New("name conflict"))

	backend := &testAnnounceBackend{
		clock:     clock.NewMock(),
		completeN: 2,
		outcome:   outcome,
	}

	dir := newTestAnnounceDirectory(backend)

	res := dir.Announce(80, "foo")
	require.Equal(t, status.CodeNameConflict, res.Code())
	require.False(t, dir.IsAnnounced())
	require.Equal(t, 2, backend.processN)
}

func TestDirectoryAnnouncePendingTimeout(t *testing.T) {
	mock := clock.NewMock()
	start := mock.Now()

	backend := &testAnnounceBackend{clock: mock}

	dir := newTestAnnounceDirectory(backend)

	require.Equal(t, status.CodePending, dir.Announce(80, "foo").Code())
	require.False(t, dir.IsAnnounced())
	require.Equal(t, dircore.AnnounceTimeout, mock.Now().Sub(start))
	require.Equal(t, int(dircore.AnnounceTimeout/announceStep), backend.processN)
}

func TestDirectoryAnnounceBackendFailureFallback(t *testing.T) {
	dir := newDirectory("_foo._tcp", nil, func(_ dircore.EventSink) (dircore.Backend, error) {
		return nil, errors.New("failed")
	})

	require.Equal(t, "none", dir.Backend())
	require.Equal(t, status.CodeNotSupported, dir.Announce(80, "foo").Code())
}
