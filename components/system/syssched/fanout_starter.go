package syssched

import "fmt"

// FanoutStarter to start all at once.
type FanoutStarter struct {
	starters []Starter
}

// Start starts all the registered starters, stopping at the first failure.
func (s *FanoutStarter) Start() error {
	for n, starter := range s.starters {
		if err := starter.Start(); err != nil {
			return fmt.Errorf("fanout-starter: failed to start: index=%d: %w", n, err)
		}
	}

	return nil
}

// Add adds the starter to be started on Start() call.
func (s *FanoutStarter) Add(starter Starter) {
	s.starters = append(s.starters, starter)
}
