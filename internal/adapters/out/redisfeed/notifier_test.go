package redisfeed

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"fleetops/internal/core/ports"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan ports.Change) ports.Change {
	t.Helper()
	select {
	case c := <-ch:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("no change received")
		return ports.Change{}
	}
}

func TestNotifier_PublishSubscribe(t *testing.T) {
	mr := miniredis.RunT(t)
	n := New(mr.Addr(), slog.Default())
	t.Cleanup(func() { _ = n.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, n.Ping(ctx))

	orders, err := n.Subscribe(ctx, ports.CollectionOrders)
	require.NoError(t, err)

	require.NoError(t, n.Publish(ctx,
		ports.Change{Collection: ports.CollectionUsers, ID: "S1", Kind: ports.ChangeUpdated},
		ports.Change{Collection: ports.CollectionOrders, ID: "O1", Kind: ports.ChangeCreated},
	))

	got := receive(t, orders)
	require.Equal(t, ports.Change{Collection: ports.CollectionOrders, ID: "O1", Kind: ports.ChangeCreated}, got)
}

func TestNotifier_SkipsMalformedPayload(t *testing.T) {
	mr := miniredis.RunT(t)
	n := New(mr.Addr(), slog.Default())
	t.Cleanup(func() { _ = n.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	users, err := n.Subscribe(ctx, ports.CollectionUsers)
	require.NoError(t, err)

	mr.Publish(channelPrefix+ports.CollectionUsers, "garbage")
	require.NoError(t, n.Publish(ctx, ports.Change{Collection: ports.CollectionUsers, ID: "S2"}))

	got := receive(t, users)
	require.Equal(t, "S2", got.ID)
	require.Equal(t, ports.ChangeUpdated, got.Kind)
}

func TestNotifier_ClosesOnCancel(t *testing.T) {
	mr := miniredis.RunT(t)
	n := New(mr.Addr(), slog.Default())
	t.Cleanup(func() { _ = n.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := n.Subscribe(ctx, ports.CollectionLogs)
	require.NoError(t, err)

	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
