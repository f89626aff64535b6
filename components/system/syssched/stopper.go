package syssched

// Stopper stops the background execution and waits until it's finished.
type Stopper interface {
	Stop() error
}
