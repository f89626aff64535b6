package dirnone

import (
	"time"

	"github.com/open-control-systems/servus/components/directory/dircore"
	"github.com/open-control-systems/servus/components/status"
)

// Backend is a non-operational backend used when no transport is available.
//
// Remarks:
//   - Every mutating operation returns status.CodeNotSupported.
type Backend struct{}

// Name returns "none".
func (*Backend) Name() string {
	return "none"
}

// Announce is non-operational.
func (*Backend) Announce(_ uint16, _ string, _ *dircore.ValueStore) status.Result {
	return status.NewResult(status.CodeNotSupported)
}

// AnnounceResult is non-operational.
func (*Backend) AnnounceResult() status.Result {
	return status.NewResult(status.CodeNotSupported)
}

// Process is non-operational.
func (*Backend) Process(_ time.Duration) status.Result {
	return status.NewResult(status.CodeNotSupported)
}

// Republish is non-operational.
func (*Backend) Republish(_ *dircore.ValueStore) {}

// Withdraw is non-operational.
func (*Backend) Withdraw() {}

// IsAnnounced always returns false.
func (*Backend) IsAnnounced() bool {
	return false
}

// BeginBrowsing is non-operational.
func (*Backend) BeginBrowsing(_ dircore.Scope) status.Result {
	return status.NewResult(status.CodeNotSupported)
}

// Browse is non-operational.
func (*Backend) Browse(_ time.Duration) status.Result {
	return status.NewResult(status.CodeNotSupported)
}

// EndBrowsing is non-operational.
func (*Backend) EndBrowsing() {}

// IsBrowsing always returns false.
func (*Backend) IsBrowsing() bool {
	return false
}

// Close is non-operational.
func (*Backend) Close() error {
	return nil
}
