package syssched

import "golang.org/x/sync/errgroup"

// FanoutStopper stops the registered stoppers concurrently.
type FanoutStopper struct {
	stoppers []Stopper
}

// Stop stops all stoppers and waits for them, the first error is returned.
func (s *FanoutStopper) Stop() error {
	var group errgroup.Group

	for _, stopper := range s.stoppers {
		group.Go(stopper.Stop)
	}

	return group.Wait()
}

// Add registers stopper to be stopped on Stop() call.
func (s *FanoutStopper) Add(stopper Stopper) {
	s.stoppers = append(s.stoppers, stopper)
}
