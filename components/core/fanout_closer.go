package core

import "go.uber.org/multierr"

// FanoutCloser propagates the close call to the registered closers.
//
// Remarks:
//   - Closers are closed in the reverse order of registration.
type FanoutCloser struct {
	closers []node
}

// Add registers closer with id to be closed on Close() call.
func (c *FanoutCloser) Add(id string, closer Closer) {
	c.closers = append(c.closers, node{id: id, c: closer})
}

// Close closes all registered closers and returns the combined error.
func (c *FanoutCloser) Close() error {
	var err error

	for n := len(c.closers) - 1; n >= 0; n-- {
		node := c.closers[n]

		if e := node.c.Close(); e != nil {
			LogErr.Printf("fanout-closer: failed to close: id=%s err=%v\n", node.id, e)

			err = multierr.Append(err, e)
		}
	}

	c.closers = nil

	return err
}

type node struct {
	id string
	c  Closer
}
