package dirview

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/open-control-systems/servus/components/directory"
)

// Metrics exports the instance changes as prometheus metrics.
//
// Remarks:
//   - The instance gauge is read from the directory on each scrape, a new
//     browse session clears the instances without removal events.
type Metrics struct {
	added   prometheus.Counter
	removed prometheus.Counter
}

// NewMetrics creates the metrics of dir and registers them in reg.
func NewMetrics(reg prometheus.Registerer, dir *directory.Directory) (*Metrics, error) {
	labels := prometheus.Labels{"service": dir.Name()}

	instances := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name:        "servus_instances",
		Help:        "Number of currently discovered instances",
		ConstLabels: labels,
	}, func() float64 {
		return float64(len(dir.Instances()))
	})

	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "servus_instance_events_total",
		Help:        "Total number of instance added and removed events",
		ConstLabels: labels,
	}, []string{"event"})

	for _, collector := range []prometheus.Collector{instances, events} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}

	return &Metrics{
		added:   events.WithLabelValues("added"),
		removed: events.WithLabelValues("removed"),
	}, nil
}

// InstanceAdded counts the added instance.
func (m *Metrics) InstanceAdded(_ string) {
	m.added.Inc()
}

// InstanceRemoved counts the removed instance.
func (m *Metrics) InstanceRemoved(_ string) {
	m.removed.Inc()
}
