package syssched

// ErrorHandler handles the errors of the periodic tasks.
type ErrorHandler interface {
	// HandleError is called from the runner goroutine each time the task fails.
	HandleError(err error)
}
