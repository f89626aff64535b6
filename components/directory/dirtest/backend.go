package dirtest

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/open-control-systems/servus/components/directory/dircore"
	"github.com/open-control-systems/servus/components/status"
)

// Backend simulates announcing and browsing over a shared in-process Network.
//
// Remarks:
//   - Browse computes the difference between the instances announced on the
//     network and the instances seen by this backend, so the results converge
//     immediately without any network delay.
type Backend struct {
	id      uuid.UUID
	service string
	network *Network
	sink    dircore.EventSink

	announced bool
	instance  string
	port      uint16

	browsing bool
	seen     map[string]struct{}
}

// New is an initialization of Backend.
//
// Parameters:
//   - service - service name to announce and browse.
//   - network - directory shared with other test backends.
//   - sink to receive the instance changes.
func New(service string, network *Network, sink dircore.EventSink) *Backend {
	return &Backend{
		id:      uuid.New(),
		service: service,
		network: network,
		sink:    sink,
		seen:    make(map[string]struct{}),
	}
}

// Name returns "test".
func (*Backend) Name() string {
	return "test"
}

// Announce publishes record on the network.
func (b *Backend) Announce(port uint16, instance string, record *dircore.ValueStore) status.Result {
	if b.announced {
		return status.NewResult(status.CodePending)
	}

	b.port = port
	b.instance = instance
	b.announced = true

	b.network.announce(b.id, b.service, instance, port, record)

	return status.Result{}
}

// AnnounceResult always returns success, announcing completes immediately.
func (*Backend) AnnounceResult() status.Result {
	return status.Result{}
}

// Process is non-operational, the network has no pending events.
func (*Backend) Process(_ time.Duration) status.Result {
	return status.Result{}
}

// Republish replaces the announced record.
func (b *Backend) Republish(record *dircore.ValueStore) {
	if !b.announced {
		return
	}

	b.network.update(b.id, record)
}

// Withdraw removes the announcement from the network.
func (b *Backend) Withdraw() {
	b.network.withdraw(b.id)

	b.announced = false
	b.instance = ""
	b.port = 0
}

// IsAnnounced returns true if the record is published on the network.
func (b *Backend) IsAnnounced() bool {
	return b.announced
}

// BeginBrowsing opens a browse session.
func (b *Backend) BeginBrowsing(_ dircore.Scope) status.Result {
	if b.browsing {
		return status.NewResult(status.CodePending)
	}

	clear(b.seen)
	b.browsing = true

	return status.Result{}
}

// Browse reports the instances added to and removed from the network since the
// previous call.
//
// Remarks:
//   - The timeout is ignored, the network state is read immediately.
func (b *Backend) Browse(_ time.Duration) status.Result {
	if !b.browsing {
		return status.Result{}
	}

	current := b.network.instances(b.service)

	for _, name := range slices.Sorted(maps.Keys(b.seen)) {
		if _, ok := current[name]; !ok {
			delete(b.seen, name)
			b.sink.HandleRemoved(name)
		}
	}

	for _, name := range slices.Sorted(maps.Keys(current)) {
		if _, ok := b.seen[name]; ok {
			b.sink.HandleUpdated(name, current[name])

			continue
		}

		b.seen[name] = struct{}{}
		b.sink.HandleAdded(name, current[name])
	}

	return status.Result{}
}

// EndBrowsing closes the browse session.
func (b *Backend) EndBrowsing() {
	b.browsing = false
	clear(b.seen)
}

// IsBrowsing returns true if a browse session is open.
func (b *Backend) IsBrowsing() bool {
	return b.browsing
}

// Close withdraws the announcement and ends browsing.
func (b *Backend) Close() error {
	b.Withdraw()
	b.EndBrowsing()

	return nil
}
