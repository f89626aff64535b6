package sysnet

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/servus/components/status"
)

func TestFanoutResolverEmpty(t *testing.T) {
	resolver := FanoutResolver{}

	addr, err := resolver.Resolve(context.Background(), "foo.local")
	require.Nil(t, addr)
	require.ErrorIs(t, err, status.StatusNoData)
}

func TestFanoutResolverFirstSuccess(t *testing.T) {
	netAddr := &net.IPAddr{IP: net.IPv4(192, 168, 4, 2)}
	calls := 0

	resolver := FanoutResolver{}
	resolver.Add(ResolverFunc(func(_ context.Context, _ string) (net.Addr, error) {
		calls++

		return nil, status.StatusNoData
	}))
	resolver.Add(ResolverFunc(func(_ context.Context, _ string) (net.Addr, error) {
		calls++

		return netAddr, nil
	}))
	resolver.Add(ResolverFunc(func(_ context.Context, _ string) (net.Addr, error) {
		calls++

		return nil, status.StatusError
	}))

	addr, err := resolver.Resolve(context.Background(), "foo.local")
	require.NoError(t, err)
	require.Equal(t, netAddr.String(), addr.String())
	require.Equal(t, 2, calls)
}

func TestFanoutResolverAllFailed(t *testing.T) {
	resolver := FanoutResolver{}
	resolver.Add(ResolverFunc(func(_ context.Context, _ string) (net.Addr, error) {
		return nil, status.StatusNoData
	}))
	resolver.Add(ResolverFunc(func(_ context.Context, _ string) (net.Addr, error) {
		return nil, status.StatusTimeout
	}))

	addr, err := resolver.Resolve(context.Background(), "foo.local")
	require.Nil(t, addr)
	require.ErrorIs(t, err, status.StatusNoData)
	require.ErrorIs(t, err, status.StatusTimeout)
}

func TestIsMdnsHostname(t *testing.T) {
	require.True(t, IsMdnsHostname("bonsai.local"))
	require.True(t, IsMdnsHostname("bonsai.local."))
	require.False(t, IsMdnsHostname("bonsai.example.org"))
	require.False(t, IsMdnsHostname("localhost"))
}

func TestPionMdnsResolverUnsupportedHostname(t *testing.T) {
	resolver := &PionMdnsResolver{}
	defer func() {
		require.NoError(t, resolver.Close())
	}()

	addr, err := resolver.Resolve(context.Background(), "bonsai.example.org")
	require.Nil(t, addr)
	require.ErrorIs(t, err, status.StatusInvalidArg)
}

func TestPionMdnsResolverClosed(t *testing.T) {
	resolver := &PionMdnsResolver{}
	require.NoError(t, resolver.Close())

	addr, err := resolver.Resolve(context.Background(), "bonsai.local")
	require.Nil(t, addr)
	require.ErrorIs(t, err, status.StatusInvalidState)
}
