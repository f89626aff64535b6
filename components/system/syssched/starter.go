package syssched

// Starter starts the background execution.
type Starter interface {
	Start() error
}
