package dirmdns

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/open-control-systems/servus/components/core"
	"github.com/open-control-systems/servus/components/directory/dircore"
	"github.com/open-control-systems/servus/components/status"
	"github.com/open-control-systems/servus/components/system/sysmdns"
)

// Params represents various options for the mDNS backend.
type Params struct {
	// Name of the backend, e.g. "zeroconf".
	Name string

	// Service is a mDNS service name, e.g. "_servus._tcp".
	Service string

	// Domain is a mDNS domain, e.g. "local.".
	Domain string

	// Publisher to announce the local record.
	Publisher sysmdns.Publisher

	// Browser to discover the remote instances.
	Browser sysmdns.Browser

	// Sink to receive the instance changes.
	Sink dircore.EventSink

	// Observer is notified about every discovered service from the transport
	// goroutine, optional.
	Observer sysmdns.ServiceHandler

	// Clock for the browse deadlines, the wall clock is used if nil.
	Clock clock.Clock

	// LocalHost is a local host name for the local scope, dircore.Hostname() if empty.
	LocalHost string
}

// Backend announces and browses the service over the mDNS transport.
//
// Remarks:
//   - Publishing and browsing happen in the background goroutines, their results
//     are queued and applied only from Process() and Browse().
type Backend struct {
	params Params
	queue  *dircore.EventQueue[event]

	// liveGen mirrors announceGen for the publish goroutines.
	mu      sync.Mutex
	liveGen uint64

	announceGen    uint64
	announcing     bool
	announceResult status.Result
	publication    sysmdns.Publication
	record         *dircore.ValueStore
	recordDirty    bool

	browseGen  uint64
	browsing   bool
	cancel     context.CancelFunc
	doneCh     chan struct{}
	translator *dircore.Translator
	pending    []dircore.Event
	browseErr  error
}

// New is an initialization of Backend.
func New(params Params) *Backend {
	if params.Clock == nil {
		params.Clock = clock.New()
	}

	if params.LocalHost == "" {
		params.LocalHost = dircore.Hostname()
	}

	params.Domain = sysmdns.NormalizeDomain(params.Domain)

	return &Backend{
		params: params,
		queue:  dircore.NewEventQueue[event](params.Clock),
	}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return b.params.Name
}

// Announce starts publishing record in the background.
//
// Remarks:
//   - Returns status.CodePending, the publication result is reported by
//     AnnounceResult() once Process() handles it.
func (b *Backend) Announce(port uint16, instance string, record *dircore.ValueStore) status.Result {
	if b.announcing || b.publication != nil {
		return status.NewResult(status.CodePending)
	}

	b.announceGen++
	b.setLiveGen(b.announceGen)
	b.announcing = true
	b.announceResult = status.NewResult(status.CodePending)
	b.record = record.Clone()
	b.recordDirty = false

	params := sysmdns.PublishParams{
		Instance: instance,
		Service:  b.params.Service,
		Domain:   b.params.Domain,
		Port:     int(port),
		Text:     record.Map(),
	}

	go b.publish(b.announceGen, params)

	return b.announceResult
}

// AnnounceResult returns the state of the last publication.
func (b *Backend) AnnounceResult() status.Result {
	return b.announceResult
}

// Process handles the queued transport events, waiting up to timeout for the first one.
func (b *Backend) Process(timeout time.Duration) status.Result {
	b.handleEvents(b.queue.Poll(timeout))

	return status.Result{}
}

// Republish updates the txt records of the live publication.
func (b *Backend) Republish(record *dircore.ValueStore) {
	if !b.announcing && b.publication == nil {
		return
	}

	b.record = record.Clone()

	if b.publication == nil {
		b.recordDirty = true

		return
	}

	b.updateText()
}

// Withdraw stops publishing the record.
//
// Remarks:
//   - The publication in flight is shut down by the publish goroutine as soon
//     as it completes, a completed one still in the queue is shut down here.
func (b *Backend) Withdraw() {
	b.announceGen++
	b.setLiveGen(b.announceGen)
	b.announcing = false
	b.announceResult = status.Result{}
	b.recordDirty = false

	b.handleEvents(b.queue.Drain())

	if b.publication == nil {
		return
	}

	if err := b.publication.Shutdown(); err != nil {
		core.LogWrn.Printf("directory-%s: withdraw failed: service=%s: %v\n",
			b.params.Name, b.params.Service, err)
	}

	b.publication = nil
}

// IsAnnounced returns true if the publication is live.
func (b *Backend) IsAnnounced() bool {
	return b.publication != nil
}

// BeginBrowsing starts the browser in the background.
func (b *Backend) BeginBrowsing(scope dircore.Scope) status.Result {
	if b.browsing {
		return status.NewResult(status.CodePending)
	}

	b.browseGen++
	b.browsing = true
	b.browseErr = nil
	b.pending = nil
	b.translator = dircore.NewTranslator(b.params.Sink, scope, b.params.LocalHost)

	ctx, cancel := context.WithCancel(context.Background())

	b.cancel = cancel
	b.doneCh = make(chan struct{})

	var handler sysmdns.ServiceHandler = &serviceHandler{gen: b.browseGen, queue: b.queue}

	if b.params.Observer != nil {
		fanout := &sysmdns.FanoutServiceHandler{}
		fanout.Add(handler)
		fanout.Add(b.params.Observer)

		handler = fanout
	}

	go b.browse(ctx, b.browseGen, b.doneCh, handler)

	return status.Result{}
}

// Browse handles the transport events for timeout and applies them to the sink.
//
// Remarks:
//   - Events of a single call are coalesced per instance.
//   - Returns status.CodePollError and ends browsing if the browser failed.
func (b *Backend) Browse(timeout time.Duration) status.Result {
	if !b.browsing {
		return status.Result{}
	}

	deadline := b.params.Clock.Now().Add(timeout)

	for {
		remaining := deadline.Sub(b.params.Clock.Now())

		b.handleEvents(b.queue.Poll(remaining))

		if b.browseErr != nil || remaining <= 0 {
			break
		}
	}

	pending := b.pending
	b.pending = nil

	b.translator.Apply(pending)

	if err := b.browseErr; err != nil {
		core.LogErr.Printf("directory-%s: browsing failed: service=%s: %v\n",
			b.params.Name, b.params.Service, err)

		b.EndBrowsing()

		return status.NewResultWithCause(status.CodePollError, err)
	}

	return status.Result{}
}

// EndBrowsing stops the browser and waits for its goroutine to finish.
func (b *Backend) EndBrowsing() {
	if !b.browsing {
		return
	}

	b.browseGen++
	b.browsing = false
	b.pending = nil
	b.browseErr = nil

	b.cancel()
	<-b.doneCh

	b.cancel = nil
	b.doneCh = nil
}

// IsBrowsing returns true if the browser is running.
func (b *Backend) IsBrowsing() bool {
	return b.browsing
}

// Close withdraws the record, ends browsing and releases the publisher.
func (b *Backend) Close() error {
	b.Withdraw()
	b.EndBrowsing()

	return b.params.Publisher.Close()
}

func (b *Backend) publish(gen uint64, params sysmdns.PublishParams) {
	publication, err := b.params.Publisher.Publish(params)

	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.liveGen {
		b.shutdownStale(publication)

		return
	}

	b.queue.Push(event{
		kind:        eventPublished,
		gen:         gen,
		publication: publication,
		err:         err,
	})
}

func (b *Backend) browse(
	ctx context.Context,
	gen uint64,
	doneCh chan struct{},
	handler sysmdns.ServiceHandler,
) {
	defer close(doneCh)

	err := b.params.Browser.Browse(ctx, handler)
	if err == nil && ctx.Err() == nil {
		err = errors.New("browser stopped unexpectedly")
	}

	if err != nil {
		b.queue.Push(event{
			kind: eventBrowseFailed,
			gen:  gen,
			err:  fmt.Errorf("%w: %w", status.StatusPollError, err),
		})
	}
}

func (b *Backend) handleEvents(events []event) {
	for _, ev := range events {
		switch ev.kind {
		case eventPublished:
			b.handlePublished(ev)

		case eventService:
			if ev.gen == b.browseGen && b.browsing {
				b.pending = append(b.pending, ev.service)
			}

		case eventBrowseFailed:
			if ev.gen == b.browseGen && b.browsing && b.browseErr == nil {
				b.browseErr = ev.err
			}
		}
	}
}

func (b *Backend) handlePublished(ev event) {
	if ev.gen != b.announceGen || !b.announcing {
		b.shutdownStale(ev.publication)

		return
	}

	b.announcing = false

	if ev.err != nil {
		core.LogErr.Printf("directory-%s: announce failed: service=%s: %v\n",
			b.params.Name, b.params.Service, ev.err)

		b.announceResult = status.FromError(ev.err)

		return
	}

	b.publication = ev.publication
	b.announceResult = status.Result{}

	core.LogInf.Printf("directory-%s: announced: service=%s\n",
		b.params.Name, b.params.Service)

	if b.recordDirty {
		b.recordDirty = false
		b.updateText()
	}
}

func (b *Backend) setLiveGen(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.liveGen = gen
}

func (b *Backend) shutdownStale(publication sysmdns.Publication) {
	if publication == nil {
		return
	}

	if err := publication.Shutdown(); err != nil {
		core.LogWrn.Printf("directory-%s: failed to shutdown stale publication: %v\n",
			b.params.Name, err)
	}
}

func (b *Backend) updateText() {
	if err := b.publication.SetText(b.record.Map()); err != nil {
		core.LogWrn.Printf("directory-%s: failed to update record: service=%s: %v\n",
			b.params.Name, b.params.Service, err)
	}
}
