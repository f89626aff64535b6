package dirmdns

import (
	"github.com/open-control-systems/servus/components/directory/dircore"
	"github.com/open-control-systems/servus/components/system/sysmdns"
)

type eventKind int

const (
	eventPublished eventKind = iota
	eventService
	eventBrowseFailed
)

// event is reported by the transport goroutines and handled by the goroutine
// calling the Backend methods.
type event struct {
	kind eventKind

	// gen is a generation of the publication or the browse session the event
	// belongs to, events of the older generations are dropped.
	gen uint64

	publication sysmdns.Publication
	err         error
	service     dircore.Event
}

// serviceHandler converts the discovered services into the queued events.
type serviceHandler struct {
	gen   uint64
	queue *dircore.EventQueue[event]
}

func (h *serviceHandler) HandleService(service sysmdns.Service) error {
	h.queue.Push(event{
		kind: eventService,
		gen:  h.gen,
		service: dircore.Event{
			Kind:     dircore.EventAdded,
			Instance: service.Instance(),
			Host:     service.Hostname(),
			Port:     service.Port(),
			Values:   sysmdns.ParseTxtRecords(service.TxtRecords()),
		},
	})

	return nil
}

func (h *serviceHandler) HandleServiceRemoved(service sysmdns.Service) error {
	h.queue.Push(event{
		kind: eventService,
		gen:  h.gen,
		service: dircore.Event{
			Kind:     dircore.EventRemoved,
			Instance: service.Instance(),
		},
	})

	return nil
}
