package status

import (
	"errors"
	"fmt"
	"syscall"
)

// Code is a numeric outcome of a directory operation.
//
// Remarks:
//   - Zero is success.
//   - Codes -1..-3 are generic directory outcomes.
//   - Codes in the DNS-SD range (-65537..-65563) are transport failures.
//   - Positive codes are errno values.
type Code int32

const (
	// CodeSuccess is returned when an operation completed.
	CodeSuccess Code = 0

	// CodePending is returned when an operation did not complete yet, or when
	// a second start was attempted while the first one is still active.
	CodePending Code = -1

	// CodeNotSupported is returned when no usable backend is available.
	CodeNotSupported Code = -2

	// CodePollError is returned when waiting for transport events failed.
	CodePollError Code = -3
)

// DNS-SD transport codes.
//
// References:
//   - https://developer.apple.com/documentation/dnssd/1823426-anonymous
const (
	CodeUnknown           Code = -65537
	CodeNoSuchName        Code = -65538
	CodeNoMemory          Code = -65539
	CodeBadParam          Code = -65540
	CodeBadReference      Code = -65541
	CodeBadState          Code = -65542
	CodeBadFlags          Code = -65543
	CodeUnsupported       Code = -65544
	CodeNotInitialized    Code = -65545
	CodeAlreadyRegistered Code = -65547
	CodeNameConflict      Code = -65548
	CodeInvalid           Code = -65549
	CodeFirewall          Code = -65550
	CodeIncompatible      Code = -65551
	CodeBadInterfaceIndex Code = -65552
	CodeRefused           Code = -65553
	CodeNoSuchRecord      Code = -65554
	CodeNoAuth            Code = -65555
	CodeNoSuchKey         Code = -65556
	CodeNATTraversal      Code = -65557
	CodeDoubleNAT         Code = -65558
	CodeBadTime           Code = -65559
)

var codeText = map[Code]string{
	CodeSuccess:           "success",
	CodePending:           "operation pending",
	CodeNotSupported:      "no ZeroConf support available",
	CodePollError:         "error polling for events",
	CodeUnknown:           "unknown error",
	CodeNoSuchName:        "name not found",
	CodeNoMemory:          "out of memory",
	CodeBadParam:          "bad parameter",
	CodeBadReference:      "bad reference",
	CodeBadState:          "bad state",
	CodeBadFlags:          "bad flags",
	CodeUnsupported:       "unsupported",
	CodeNotInitialized:    "not initialized",
	CodeAlreadyRegistered: "already registered",
	CodeNameConflict:      "name conflict",
	CodeInvalid:           "invalid value",
	CodeFirewall:          "firewall",
	CodeIncompatible:      "client library incompatible with daemon",
	CodeBadInterfaceIndex: "bad interface index",
	CodeRefused:           "refused",
	CodeNoSuchRecord:      "no such record",
	CodeNoAuth:            "no authentication",
	CodeNoSuchKey:         "no such key",
	CodeNATTraversal:      "NAT traversal",
	CodeDoubleNAT:         "double NAT",
	CodeBadTime:           "bad time",
}

// String returns the human readable description of the code.
func (c Code) String() string {
	if text, ok := codeText[c]; ok {
		return text
	}

	if c > 0 {
		return syscall.Errno(c).Error()
	}

	return fmt.Sprintf("code %d", int32(c))
}

// Result is the outcome of a directory operation.
//
// The zero value is a successful result.
type Result struct {
	code  Code
	cause error
}

// NewResult creates a result with the provided code.
func NewResult(code Code) Result {
	return Result{code: code}
}

// NewResultWithCause creates a result with the provided code, keeping the
// underlying error for diagnostics.
func NewResultWithCause(code Code, cause error) Result {
	return Result{code: code, cause: cause}
}

// FromError converts a transport error into a result.
//
// Remarks:
//   - nil is converted into success.
//   - errno values are passed through as positive codes.
//   - Any other error becomes CodeUnknown.
func FromError(err error) Result {
	if err == nil {
		return Result{}
	}

	var resErr *ResultError
	if errors.As(err, &resErr) {
		return resErr.Result
	}

	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return NewResultWithCause(Code(errno), err)
	}

	return NewResultWithCause(CodeUnknown, err)
}

// Code returns the numeric outcome.
func (r Result) Code() Code {
	return r.code
}

// OK returns true if the result represents success.
func (r Result) OK() bool {
	return r.code == CodeSuccess
}

// Pending returns true if the operation is still in progress.
func (r Result) Pending() bool {
	return r.code == CodePending
}

// Cause returns the underlying transport error, if any.
func (r Result) Cause() error {
	return r.cause
}

// String returns the human readable description of the result.
func (r Result) String() string {
	if r.cause != nil {
		return fmt.Sprintf("%s (%d): %v", r.code, int32(r.code), r.cause)
	}

	return fmt.Sprintf("%s (%d)", r.code, int32(r.code))
}

// Err returns nil for success and a *ResultError otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}

	return &ResultError{Result: r}
}

// ResultError is an error view of a failed Result.
type ResultError struct {
	Result Result
}

// Error returns the result description.
func (e *ResultError) Error() string {
	return e.Result.String()
}

// Unwrap returns the underlying transport error.
func (e *ResultError) Unwrap() error {
	return e.Result.cause
}

// Is matches the error against the status sentinels.
func (e *ResultError) Is(target error) bool {
	switch e.Result.code {
	case CodePending:
		return target == StatusPending
	case CodeNotSupported:
		return target == StatusNotSupported
	case CodePollError:
		return target == StatusPollError
	default:
		return target == StatusTransport || target == StatusError
	}
}
