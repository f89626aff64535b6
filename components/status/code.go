package status

import "errors"

var (
	// StatusError indicates a failure of an operation.
	StatusError = errors.New("operation failed")

	// StatusNoData indicates that the requested data doesn't exist.
	StatusNoData = errors.New("no data")

	// StatusTimeout indicates that an operation didn't complete in time.
	StatusTimeout = errors.New("timeout")

	// StatusInvalidArg indicates that an argument is malformed.
	StatusInvalidArg = errors.New("invalid argument")

	// StatusInvalidState indicates that an operation can't be performed due to invalid state.
	StatusInvalidState = errors.New("invalid state")

	// StatusNotSupported indicates that an operation isn't supported.
	StatusNotSupported = errors.New("not supported")

	// StatusPending indicates that an operation is still in progress.
	StatusPending = errors.New("operation pending")

	// StatusPollError indicates an I/O failure while waiting for transport events.
	StatusPollError = errors.New("poll error")

	// StatusTransport indicates a failure reported by the underlying transport.
	StatusTransport = errors.New("transport error")
)
