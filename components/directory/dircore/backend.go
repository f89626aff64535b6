package dircore

import (
	"time"

	"github.com/open-control-systems/servus/components/status"
)

// AnnounceTimeout is how long Announce waits for the backend to become ready.
const AnnounceTimeout = time.Second

// EventSink receives instance changes from a backend.
//
// Remarks:
//   - Backends call the sink only from the goroutine that called one of the
//     Backend methods, never from transport goroutines.
type EventSink interface {
	// HandleAdded stores the values of a resolved instance and notifies listeners
	// if the instance wasn't known before.
	HandleAdded(instance string, values *ValueStore)

	// HandleUpdated stores the values of an already known instance without
	// notifying listeners.
	HandleUpdated(instance string, values *ValueStore)

	// HandleRemoved forgets the instance and notifies listeners if it was known.
	HandleRemoved(instance string)
}

// Backend owns the transport specific announce and browse machinery.
//
// Remarks:
//   - Methods are called by a single goroutine at a time.
//   - Blocking methods are always bounded by the provided timeout.
type Backend interface {
	// Name returns the backend name, e.g. "zeroconf".
	Name() string

	// Announce starts publishing record under the instance name and port.
	//
	// Remarks:
	//   - Returns status.CodePending if the publication is in flight, the caller
	//     should then call Process() until AnnounceResult() isn't pending.
	Announce(port uint16, instance string, record *ValueStore) status.Result

	// AnnounceResult returns the state of the last publication.
	AnnounceResult() status.Result

	// Process handles pending transport events, waiting up to timeout for the
	// first one.
	Process(timeout time.Duration) status.Result

	// Republish propagates the updated record if it's currently announced.
	Republish(record *ValueStore)

	// Withdraw stops publishing the record.
	Withdraw()

	// IsAnnounced returns true if the backend holds a live publication.
	IsAnnounced() bool

	// BeginBrowsing opens a browse session.
	BeginBrowsing(scope Scope) status.Result

	// Browse handles transport events for timeout and applies them to the sink.
	Browse(timeout time.Duration) status.Result

	// EndBrowsing closes the browse session.
	EndBrowsing()

	// IsBrowsing returns true if a browse session is open.
	IsBrowsing() bool

	// Close withdraws the record, ends browsing and releases the transport.
	Close() error
}
