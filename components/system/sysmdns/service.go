package sysmdns

import "net"

// Service is a single mDNS service discovered on the local network.
type Service interface {
	// Instance returns mDNS service instance name, e.g. "Bonsai GrowLab Firmware".
	Instance() string

	// Service returns mDNS service name, e.g. "_http._tcp".
	Name() string

	// Hostname returns host machine DNS name without the trailing dot,
	// e.g. "bonsai-growlab.local".
	Hostname() string

	// Port returns service port, e.g. 80.
	Port() int

	// TxtRecords returns service txt records, e.g. ["api_base_path=/api/", "api_version=v1"]
	TxtRecords() []string

	// Host machine IP addresses.
	Addrs() []net.IP
}

type basicService struct {
	instance string
	name     string
	hostname string
	port     int
	txt      []string
	addrs    []net.IP
}

func (s *basicService) Instance() string {
	return s.instance
}

func (s *basicService) Name() string {
	return s.name
}

func (s *basicService) Hostname() string {
	return s.hostname
}

func (s *basicService) Port() int {
	return s.port
}

func (s *basicService) TxtRecords() []string {
	return s.txt
}

func (s *basicService) Addrs() []net.IP {
	return s.addrs
}

func (s *basicService) equal(o *basicService) bool {
	if s.hostname != o.hostname || s.port != o.port || len(s.txt) != len(o.txt) {
		return false
	}

	for n := range s.txt {
		if s.txt[n] != o.txt[n] {
			return false
		}
	}

	return true
}
