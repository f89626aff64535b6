package directory

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/open-control-systems/servus/components/core"
	"github.com/open-control-systems/servus/components/directory/dircore"
	"github.com/open-control-systems/servus/components/directory/dirmdns"
	"github.com/open-control-systems/servus/components/directory/dirnone"
	"github.com/open-control-systems/servus/components/directory/dirtest"
	"github.com/open-control-systems/servus/components/status"
)

const announceStep = time.Millisecond * 10

// Directory announces the local record and discovers the remote instances of
// a single service.
//
// Remarks:
//   - All methods can be called from multiple goroutines, calls are serialized.
//   - Listeners are notified from Browse() and Discover() after the lock is
//     released, so they may call the read accessors.
type Directory struct {
	name      string
	clock     clock.Clock
	listeners dircore.ListenerRegistry

	mu      sync.Mutex
	backend dircore.Backend
	record  *dircore.ValueStore
	sink    *tableSink
}

// New creates the directory for the service name, e.g. "_servus._tcp".
//
// Remarks:
//   - Never fails, if the transport can't be created the directory falls back
//     to the disabled backend.
func New(name string, params Params) *Directory {
	return newDirectory(name, params.Clock, func(sink dircore.EventSink) (dircore.Backend, error) {
		backend, err := newBackend(name, params, sink)
		if err != nil {
			return nil, fmt.Errorf("backend=%s: %w", params.Backend, err)
		}

		return backend, nil
	})
}

func newDirectory(
	name string,
	clk clock.Clock,
	createBackend func(sink dircore.EventSink) (dircore.Backend, error),
) *Directory {
	if clk == nil {
		clk = clock.New()
	}

	d := &Directory{
		name:   name,
		clock:  clk,
		record: dircore.NewValueStore(nil),
		sink: &tableSink{
			service:   name,
			instances: dircore.NewInstanceTable(),
		},
	}

	backend, err := createBackend(d.sink)
	if err != nil {
		core.LogWrn.Printf("directory: failed to create backend, announcing and browsing"+
			" are disabled: service=%s %v\n", name, err)

		backend = &dirnone.Backend{}
	}

	d.backend = backend

	return d
}

func newBackend(name string, params Params, sink dircore.EventSink) (dircore.Backend, error) {
	kind := params.Backend
	if name == TestDriver {
		kind = KindTest
	}

	switch kind {
	case KindTest:
		network := params.Network
		if network == nil {
			network = dirtest.NewNetwork()
		}

		return dirtest.New(name, network, sink), nil

	case KindNone:
		return &dirnone.Backend{}, nil

	case KindDnssd:
		return dirmdns.NewDnssd(dirmdns.TransportParams{
			Service:  name,
			Domain:   params.Domain,
			Sink:     sink,
			Observer: params.Observer,
			Clock:    params.Clock,
		})

	case KindZeroconf, "":
		return dirmdns.NewZeroconf(dirmdns.TransportParams{
			Service:  name,
			Domain:   params.Domain,
			Sink:     sink,
			Observer: params.Observer,
			Clock:    params.Clock,
		})

	default:
		return nil, fmt.Errorf("unknown backend: %q: %w", kind, status.StatusInvalidArg)
	}
}

// Name returns the service name.
func (d *Directory) Name() string {
	return d.name
}

// Backend returns the name of the transport, e.g. "zeroconf".
func (d *Directory) Backend() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.backend.Name()
}

// Set sets the value of the local record, re-publishing it if announced.
func (d *Directory) Set(key string, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.record.Set(key, value)
	d.backend.Republish(d.record)
}

// Get returns the value of the local record, or an empty string if the key is unknown.
func (d *Directory) Get(key string) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.record.Get(key)
}

// Keys returns the keys of the local record in ascending order.
func (d *Directory) Keys() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.record.Keys()
}

// Announce starts publishing the local record.
//
// Parameters:
//   - port - port of the announced service.
//   - instance - instance name, the host name is used if empty.
//
// Remarks:
//   - Returns status.CodePending if already announced, or if the transport
//     didn't complete the publication within dircore.AnnounceTimeout.
func (d *Directory) Announce(port uint16, instance string) status.Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.backend.IsAnnounced() {
		return status.NewResult(status.CodePending)
	}

	if instance == "" {
		instance = dircore.Hostname()
	}

	result := d.backend.Announce(port, instance, d.record)
	if !result.Pending() {
		d.logAnnounce(port, instance, result)

		return result
	}

	deadline := d.clock.Now().Add(dircore.AnnounceTimeout)

	for {
		remaining := deadline.Sub(d.clock.Now())
		if remaining <= 0 {
			core.LogWrn.Printf("directory: announce still pending: service=%s instance=%s"+
				" timeout=%s\n", d.name, instance, dircore.AnnounceTimeout)

			return status.NewResult(status.CodePending)
		}

		if r := d.backend.Process(min(remaining, announceStep)); !r.OK() {
			d.logAnnounce(port, instance, r)

			return r
		}

		if r := d.backend.AnnounceResult(); !r.Pending() {
			d.logAnnounce(port, instance, r)

			return r
		}
	}
}

// Withdraw stops publishing the local record.
func (d *Directory) Withdraw() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.backend.Withdraw()
}

// IsAnnounced returns true if the local record is published.
func (d *Directory) IsAnnounced() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.backend.IsAnnounced()
}

// BeginBrowsing opens a browse session.
//
// Remarks:
//   - Returns status.CodePending if already browsing.
//   - The known instances are forgotten when the new session starts.
func (d *Directory) BeginBrowsing(scope dircore.Scope) status.Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.beginBrowsing(scope)
}

// Browse handles the transport events for timeout and notifies the listeners
// about the instance changes.
//
// Remarks:
//   - Negative timeout is treated as zero.
//   - Does nothing if not browsing.
func (d *Directory) Browse(timeout time.Duration) status.Result {
	d.mu.Lock()
	result, notes := d.browse(timeout)
	d.mu.Unlock()

	d.notify(notes)

	return result
}

// EndBrowsing closes the browse session, the discovered instances are kept.
func (d *Directory) EndBrowsing() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.backend.EndBrowsing()
}

// IsBrowsing returns true if a browse session is open.
func (d *Directory) IsBrowsing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.backend.IsBrowsing()
}

// Discover browses for browseTime and returns the discovered instances.
//
// Remarks:
//   - If a browse session is already open, it's left open.
func (d *Directory) Discover(scope dircore.Scope, browseTime time.Duration) []string {
	d.mu.Lock()

	result := d.beginBrowsing(scope)
	if !result.OK() && !result.Pending() {
		instances := d.sink.instances.Names()
		d.mu.Unlock()

		return instances
	}

	_, notes := d.browse(browseTime)

	if !result.Pending() {
		d.backend.EndBrowsing()
	}

	instances := d.sink.instances.Names()

	d.mu.Unlock()

	d.notify(notes)

	return instances
}

// Instances returns the discovered instance names in ascending order.
func (d *Directory) Instances() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.sink.instances.Names()
}

// InstanceKeys returns the keys of the discovered instance in ascending order.
func (d *Directory) InstanceKeys(instance string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	values, ok := d.sink.instances.Get(instance)
	if !ok {
		return nil
	}

	return values.Keys()
}

// ContainsKey returns true if the discovered instance has the key.
func (d *Directory) ContainsKey(instance string, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	values, ok := d.sink.instances.Get(instance)
	if !ok {
		return false
	}

	return values.Contains(key)
}

// InstanceValue returns the value of the discovered instance, or an empty string.
func (d *Directory) InstanceValue(instance string, key string) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	values, ok := d.sink.instances.Get(instance)
	if !ok {
		return ""
	}

	return values.Get(key)
}

// Host returns the host name of the discovered instance.
func (d *Directory) Host(instance string) string {
	return d.InstanceValue(instance, dircore.KeyHost)
}

// Port returns the port of the discovered instance, or 0 if unknown or malformed.
func (d *Directory) Port(instance string) uint16 {
	port, err := strconv.ParseUint(d.InstanceValue(instance, dircore.KeyPort), 10, 16)
	if err != nil {
		return 0
	}

	return uint16(port)
}

// Snapshot returns a copy of all discovered instances and their values.
func (d *Directory) Snapshot() map[string]map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.sink.instances.Snapshot()
}

// AddListener registers the listener, adding the same listener twice has no effect.
//
// Remarks:
//   - A listener of a non-comparable type (e.g. a struct value with a slice field)
//     is ignored with a warning, use a pointer instead.
func (d *Directory) AddListener(listener dircore.Listener) {
	if err := d.listeners.Add(listener); err != nil {
		core.LogWrn.Printf("directory: failed to add listener: service=%s: %v\n", d.name, err)
	}
}

// RemoveListener unregisters the listener.
func (d *Directory) RemoveListener(listener dircore.Listener) {
	d.listeners.Remove(listener)
}

// String returns the state of the directory and the local record.
func (d *Directory) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var b strings.Builder

	b.WriteString("Servus instance")

	if d.backend.IsAnnounced() {
		b.WriteString(" announced")
	} else {
		b.WriteString(" not announced")
	}

	if d.backend.IsBrowsing() {
		b.WriteString(" browsing")
	} else {
		b.WriteString(" not browsing")
	}

	fmt.Fprintf(&b, ", implementation %s", d.backend.Name())

	for _, key := range d.record.Keys() {
		fmt.Fprintf(&b, "\n    %s = %s", key, d.record.Get(key))
	}

	return b.String()
}

// Close withdraws the local record, ends browsing and releases the transport.
func (d *Directory) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.backend.Close()
}

func (d *Directory) beginBrowsing(scope dircore.Scope) status.Result {
	wasBrowsing := d.backend.IsBrowsing()

	result := d.backend.BeginBrowsing(scope)
	if result.OK() && !wasBrowsing {
		d.sink.instances.Clear()
	}

	if !result.OK() && !result.Pending() {
		core.LogWrn.Printf("directory: failed to begin browsing: service=%s backend=%s:"+
			" %s\n", d.name, d.backend.Name(), result)
	}

	return result
}

func (d *Directory) browse(timeout time.Duration) (status.Result, []notification) {
	if timeout < 0 {
		timeout = 0
	}

	result := d.backend.Browse(timeout)

	return result, d.sink.takeNotes()
}

func (d *Directory) notify(notes []notification) {
	if len(notes) == 0 {
		return
	}

	listeners := d.listeners.Snapshot()

	for _, note := range notes {
		for _, listener := range listeners {
			if note.added {
				listener.InstanceAdded(note.instance)
			} else {
				listener.InstanceRemoved(note.instance)
			}
		}
	}
}

func (d *Directory) logAnnounce(port uint16, instance string, result status.Result) {
	if result.OK() {
		core.LogInf.Printf("directory: announced: service=%s instance=%s port=%d backend=%s\n",
			d.name, instance, port, d.backend.Name())

		return
	}

	core.LogWrn.Printf("directory: announce failed: service=%s instance=%s backend=%s: %s\n",
		d.name, instance, d.backend.Name(), result)
}
