package dircore

import (
	"strconv"

	"github.com/open-control-systems/servus/components/core"
)

// EventKind is a kind of instance change reported by a transport.
type EventKind int

const (
	// EventAdded is reported when an instance was resolved.
	EventAdded EventKind = iota

	// EventRemoved is reported when an instance disappeared.
	EventRemoved
)

// String returns string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventRemoved:
		return "removed"
	default:
		return "<none>"
	}
}

// Event is a single instance change reported by a transport.
type Event struct {
	Kind     EventKind
	Instance string
	Host     string
	Port     int
	Values   map[string]string
}

// Coalesce keeps the last event of every instance.
//
// Remarks:
//   - Instances are returned in the order they were first seen.
//   - An add followed by a remove of the same instance results in a single remove.
func Coalesce(events []Event) []Event {
	if len(events) < 2 {
		return events
	}

	index := make(map[string]int, len(events))
	result := make([]Event, 0, len(events))

	for _, ev := range events {
		if n, ok := index[ev.Instance]; ok {
			result[n] = ev

			continue
		}

		index[ev.Instance] = len(result)
		result = append(result, ev)
	}

	return result
}

// Translator applies transport events to the sink.
type Translator struct {
	sink      EventSink
	scope     Scope
	localHost string
}

// NewTranslator is an initialization of Translator.
//
// Parameters:
//   - sink to receive the instance changes.
//   - scope to filter the resolved instances.
//   - localHost - local host name used for ScopeLocal filtering.
func NewTranslator(sink EventSink, scope Scope, localHost string) *Translator {
	return &Translator{
		sink:      sink,
		scope:     scope,
		localHost: localHost,
	}
}

// Apply coalesces events and applies them to the sink in delivery order.
func (t *Translator) Apply(events []Event) {
	for _, ev := range Coalesce(events) {
		switch ev.Kind {
		case EventAdded:
			t.handleAdded(ev)

		case EventRemoved:
			t.sink.HandleRemoved(ev.Instance)
		}
	}
}

func (t *Translator) handleAdded(ev Event) {
	if ev.Instance == "" {
		return
	}

	if ev.Host == "" {
		core.LogWrn.Printf("directory-translator: ignore instance: instance=%s:"+
			" host not resolved\n", ev.Instance)

		return
	}

	if !InScope(t.scope, ev.Host, t.localHost) {
		return
	}

	values := NewValueStore(ev.Values)
	values.Set(KeyHost, ev.Host)
	values.Set(KeyPort, strconv.Itoa(ev.Port))

	t.sink.HandleAdded(ev.Instance, values)
}
