package stinfluxdb

import "time"

// DBParams provides various configuration options for influxDB.
type DBParams struct {
	URL    string
	Org    string
	Token  string
	Bucket string

	// WriteTimeout bounds a single write, 5 seconds if zero.
	WriteTimeout time.Duration
}

// InstanceSource provides the values of the discovered instances.
type InstanceSource interface {
	// Name returns the service name.
	Name() string

	// Host returns the host name of the discovered instance.
	Host(instance string) string

	// Port returns the port of the discovered instance.
	Port(instance string) uint16
}
