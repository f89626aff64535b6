package sysmdns

import "strings"

// DefaultDomain is the mDNS domain used when nothing else is configured.
const DefaultDomain = "local."

// NormalizeDomain returns domain with the trailing dot, or DefaultDomain if empty.
func NormalizeDomain(domain string) string {
	domain = strings.TrimPrefix(domain, ".")
	if domain == "" {
		return DefaultDomain
	}

	if !strings.HasSuffix(domain, ".") {
		domain += "."
	}

	return domain
}

// FullServiceName joins service and domain into the fully qualified name.
//
// Examples:
//   - "_http._tcp", "local" => "_http._tcp.local."
func FullServiceName(service string, domain string) string {
	return strings.TrimSuffix(service, ".") + "." + NormalizeDomain(domain)
}

// TrimHostname removes the trailing dot from the host name.
func TrimHostname(hostname string) string {
	return strings.TrimSuffix(hostname, ".")
}
