package dirtest

import (
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/open-control-systems/servus/components/directory/dircore"
)

// Host is the host name reported for every instance announced on the Network.
const Host = "localhost"

// Network is an in-process directory of announced instances shared by the test
// backends of a single test run.
//
// Remarks:
//   - Can be used from multiple goroutines.
type Network struct {
	mu            sync.Mutex
	seq           uint64
	announcements map[uuid.UUID]*announcement
}

type announcement struct {
	seq      uint64
	service  string
	instance string
	port     uint16
	record   *dircore.ValueStore
}

// NewNetwork is an initialization of Network.
func NewNetwork() *Network {
	return &Network{
		announcements: make(map[uuid.UUID]*announcement),
	}
}

// Len returns the number of live announcements for all services.
func (n *Network) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.announcements)
}

func (n *Network) announce(
	id uuid.UUID,
	service string,
	instance string,
	port uint16,
	record *dircore.ValueStore,
) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.seq++

	n.announcements[id] = &announcement{
		seq:      n.seq,
		service:  service,
		instance: instance,
		port:     port,
		record:   record.Clone(),
	}
}

func (n *Network) update(id uuid.UUID, record *dircore.ValueStore) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	a, ok := n.announcements[id]
	if !ok {
		return false
	}

	a.record = record.Clone()

	return true
}

func (n *Network) withdraw(id uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.announcements, id)
}

// instances returns the resolved values of every instance announced for service.
//
// Remarks:
//   - If multiple announcers use the same instance name, the latest one wins.
func (n *Network) instances(service string) map[string]*dircore.ValueStore {
	n.mu.Lock()
	defer n.mu.Unlock()

	latest := make(map[string]*announcement)

	for _, a := range n.announcements {
		if a.service != service {
			continue
		}

		if prev, ok := latest[a.instance]; !ok || prev.seq < a.seq {
			latest[a.instance] = a
		}
	}

	instances := make(map[string]*dircore.ValueStore, len(latest))

	for name, a := range latest {
		values := a.record.Clone()
		values.Set(dircore.KeyHost, Host)
		values.Set(dircore.KeyPort, strconv.Itoa(int(a.port)))

		instances[name] = values
	}

	return instances
}
