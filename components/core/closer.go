package core

// Closer releases resources owned by a component.
type Closer interface {
	// Close releases the resources. Calling Close more than once should be safe.
	Close() error
}

// FuncCloser adapts a function to the Closer interface.
type FuncCloser func() error

// Close calls f.
func (f FuncCloser) Close() error {
	return f()
}
