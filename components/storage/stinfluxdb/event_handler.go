package stinfluxdb

import (
	"context"
	"maps"
	"time"

	"github.com/benbjohnson/clock"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/open-control-systems/servus/components/core"
)

// Measurement is the influxDB measurement of the instance events.
const Measurement = "servus_instance"

// EventHandler stores the instance added and removed events in influxDB.
//
// References:
//   - https://docs.influxdata.com/influxdb/cloud/get-started
//   - https://docs.influxdata.com/influxdb/cloud/api-guide/client-libraries/go/
type EventHandler struct {
	ctx         context.Context
	source      InstanceSource
	dbClient    influxdb2.Client
	writeClient api.WriteAPIBlocking
	timeout     time.Duration
	clock       clock.Clock
}

// NewEventHandler initializes influxDB handler.
//
// Parameters:
//   - ctx - parent context.
//   - closer - to register the handler for the underlying resource deallocation.
//   - source - to read the values of the added instances.
//   - params - various influxDB configuration parameters.
func NewEventHandler(
	ctx context.Context,
	closer *core.FanoutCloser,
	source InstanceSource,
	params DBParams,
) *EventHandler {
	dbClient := influxdb2.NewClient(params.URL, params.Token)

	handler := newEventHandler(ctx, source, dbClient.WriteAPIBlocking(params.Org, params.Bucket),
		params.WriteTimeout, clock.New())
	handler.dbClient = dbClient

	closer.Add("influxdb-event-handler", handler)

	return handler
}

func newEventHandler(
	ctx context.Context,
	source InstanceSource,
	writeClient api.WriteAPIBlocking,
	timeout time.Duration,
	clk clock.Clock,
) *EventHandler {
	if timeout <= 0 {
		timeout = time.Second * 5
	}

	return &EventHandler{
		ctx:         ctx,
		source:      source,
		writeClient: writeClient,
		timeout:     timeout,
		clock:       clk,
	}
}

// InstanceAdded stores the added instance with its address.
func (h *EventHandler) InstanceAdded(instance string) {
	h.write("added", instance, map[string]string{
		"host": h.source.Host(instance),
	}, map[string]any{
		"event": "added",
		"port":  int64(h.source.Port(instance)),
	})
}

// InstanceRemoved stores the removed instance.
func (h *EventHandler) InstanceRemoved(instance string) {
	h.write("removed", instance, nil, map[string]any{
		"event": "removed",
	})
}

// Close stops writing data to the DB.
func (h *EventHandler) Close() error {
	if h.dbClient != nil {
		h.dbClient.Close()
	}

	return nil
}

func (h *EventHandler) write(
	event string,
	instance string,
	tags map[string]string,
	fields map[string]any,
) {
	allTags := map[string]string{
		"service":  h.source.Name(),
		"instance": instance,
	}

	maps.Copy(allTags, tags)

	point := influxdb2.NewPoint(Measurement, allTags, fields, h.clock.Now())

	ctx, cancel := context.WithTimeout(h.ctx, h.timeout)
	defer cancel()

	if err := h.writeClient.WritePoint(ctx, point); err != nil {
		core.LogErr.Printf("influxdb-event-handler: failed to write to DB: event=%s"+
			" instance=%s: %v\n", event, instance, err)
	}
}
