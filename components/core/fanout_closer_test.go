package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type testFanoutCloserCloser struct {
	err   error
	order *[]string
	id    string
}

func (c *testFanoutCloserCloser) Close() error {
	*c.order = append(*c.order, c.id)

	return c.err
}

func TestFanoutCloserReverseOrder(t *testing.T) {
	var order []string

	closer := &FanoutCloser{}
	closer.Add("a", &testFanoutCloserCloser{id: "a", order: &order})
	closer.Add("b", &testFanoutCloserCloser{id: "b", order: &order})
	closer.Add("c", FuncCloser(func() error {
		order = append(order, "c")

		return nil
	}))

	require.Nil(t, closer.Close())
	require.Equal(t, []string{"c", "b", "a"}, order)
}

func TestFanoutCloserCombineErrors(t *testing.T) {
	var order []string

	errFoo := errors.New("foo")
	errBar := errors.New("bar")

	closer := &FanoutCloser{}
	closer.Add("foo", &testFanoutCloserCloser{id: "foo", err: errFoo, order: &order})
	closer.Add("ok", &testFanoutCloserCloser{id: "ok", order: &order})
	closer.Add("bar", &testFanoutCloserCloser{id: "bar", err: errBar, order: &order})

	err := closer.Close()
	require.Error(t, err)
	require.ErrorIs(t, err, errFoo)
	require.ErrorIs(t, err, errBar)
	require.Len(t, multierr.Errors(err), 2)
	require.Len(t, order, 3)
}

func TestFanoutCloserCloseTwice(t *testing.T) {
	var order []string

	closer := &FanoutCloser{}
	closer.Add("a", &testFanoutCloserCloser{id: "a", order: &order})

	require.Nil(t, closer.Close())
	require.Nil(t, closer.Close())
	require.Equal(t, []string{"a"}, order)
}
