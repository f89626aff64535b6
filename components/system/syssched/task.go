package syssched

// Task is a unit of work run periodically by AsyncTaskRunner.
type Task interface {
	// Run performs a single iteration, it shouldn't block for long.
	Run() error
}
