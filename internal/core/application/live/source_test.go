package live_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fleetops/internal/core/application/live"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/domain/model/shipper"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFeed hands out one channel per subscription.
type fakeFeed struct {
	mu   sync.Mutex
	subs map[string]chan ports.Change
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{subs: make(map[string]chan ports.Change)}
}

func (f *fakeFeed) Subscribe(_ context.Context, collection string) (<-chan ports.Change, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan ports.Change, 8)
	f.subs[collection] = ch
	return ch, nil
}

func (f *fakeFeed) send(collection, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs[collection] <- ports.Change{Collection: collection, ID: id}
}

func (f *fakeFeed) subscribed(collection string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.subs[collection]
	return ok
}

// counter is a loader returning the number of calls so far.
type counter struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *counter) load(context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	c.calls++
	return c.calls, nil
}

func identity(v int) int { return v }

func TestSource_Current_LoadsOnce(t *testing.T) {
	// Given
	c := &counter{}
	src := live.NewSource("numbers", "numbers", c.load, identity)

	// When
	first, err := src.Current(t.Context())
	require.NoError(t, err)
	second, err := src.Current(t.Context())
	require.NoError(t, err)

	// Then
	assert.Equal(t, 1, first.Value)
	assert.Equal(t, first, second)
	assert.Equal(t, uint64(1), second.Version)
}

func TestSource_Refresh_KeepsPreviousOnFailure(t *testing.T) {
	c := &counter{}
	src := live.NewSource("numbers", "numbers", c.load, identity)
	_, err := src.Refresh(t.Context())
	require.NoError(t, err)

	c.err = errors.New("store offline")
	_, err = src.Refresh(t.Context())

	require.EqualError(t, err, "store offline")
	snap, err := src.Current(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Value)
}

func TestSource_Refresh_DropsOutdatedLoad(t *testing.T) {
	// Given
	entered := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	load := func(context.Context) (string, error) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			close(entered)
			<-release
			return "before write", nil
		}
		return "after write", nil
	}
	src := live.NewSource("labels", "labels", load, func(string) int { return 1 })

	slow := make(chan live.Snapshot[string], 1)
	go func() {
		snap, err := src.Refresh(t.Context())
		assert.NoError(t, err)
		slow <- snap
	}()
	<-entered

	// When
	fresh, err := src.Refresh(t.Context())
	require.NoError(t, err)
	close(release)
	late := <-slow

	// Then
	assert.Equal(t, "after write", fresh.Value)
	assert.Equal(t, fresh, late)
	current, err := src.Current(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "after write", current.Value)
	assert.Equal(t, uint64(1), current.Version)
}

func TestSource_Run_ReloadsOnChange(t *testing.T) {
	// Given
	c := &counter{}
	feed := newFakeFeed()
	src := live.NewSource("numbers", "numbers", c.load, identity)
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	updates := src.Subscribe(ctx)
	done := make(chan error, 1)
	go func() { done <- src.Run(ctx, feed) }()

	// When
	require.Eventually(t, func() bool { return feed.subscribed("numbers") }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, (<-updates).Value)
	feed.send("numbers", "N1")

	// Then
	select {
	case snap := <-updates:
		assert.GreaterOrEqual(t, snap.Value, 2)
		assert.Equal(t, uint64(snap.Value), snap.Version)
	case <-time.After(time.Second):
		t.Fatal("no snapshot after change")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestSource_Subscribe_DeliversCurrentAndCloses(t *testing.T) {
	c := &counter{}
	src := live.NewSource("numbers", "numbers", c.load, identity)
	_, err := src.Refresh(t.Context())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(t.Context())

	updates := src.Subscribe(ctx)
	assert.Equal(t, 1, (<-updates).Value)

	cancel()
	require.Eventually(t, func() bool {
		_, open := <-updates
		return !open
	}, time.Second, 5*time.Millisecond)
}

type fakeOrders struct {
	orders []*order.Order
}

func (f *fakeOrders) Get(context.Context, kernel.ID) (*order.Order, error) {
	return nil, errors.New("ledger must not read through")
}

func (f *fakeOrders) List(context.Context, ports.OrderFilter) ([]*order.Order, error) {
	return f.orders, nil
}

func mkOrder(t *testing.T, id string, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.RestoreParams{ID: kernel.MustID(id), Status: status})
	require.NoError(t, err)
	return o
}

func TestOrderLedger(t *testing.T) {
	ledger := live.NewOrderLedger(&fakeOrders{orders: []*order.Order{
		mkOrder(t, "O3", order.Pending),
		mkOrder(t, "O2", order.Completed),
		mkOrder(t, "O1", order.Pending),
	}})

	t.Run("get_from_snapshot", func(t *testing.T) {
		o, err := ledger.Get(t.Context(), kernel.MustID("O2"))

		require.NoError(t, err)
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("get_missing", func(t *testing.T) {
		_, err := ledger.Get(t.Context(), kernel.MustID("O9"))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("list_filters", func(t *testing.T) {
		got, err := ledger.List(t.Context(), ports.OrderFilter{Status: order.Pending, Limit: 1})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "O3", got[0].ID().String())
	})
}

type fakeShippers struct {
	shippers []*shipper.Shipper
}

func (f *fakeShippers) Get(context.Context, kernel.ID) (*shipper.Shipper, error) {
	return nil, errors.New("directory must not read through")
}

func (f *fakeShippers) ListShippers(context.Context) ([]*shipper.Shipper, error) {
	return f.shippers, nil
}

func TestFleetDirectory(t *testing.T) {
	// Given
	alice, err := shipper.RestoreShipper(shipper.RestoreParams{ID: kernel.MustID("S1"), Name: "Alice"})
	require.NoError(t, err)
	nameless, err := shipper.RestoreShipper(shipper.RestoreParams{ID: kernel.MustID("S2")})
	require.NoError(t, err)
	dir := live.NewFleetDirectory(&fakeShippers{shippers: []*shipper.Shipper{alice, nameless}})

	// When
	names, err := dir.Names(t.Context())
	require.NoError(t, err)
	roster, err := dir.ListShippers(t.Context())
	require.NoError(t, err)
	got, err := dir.Get(t.Context(), kernel.MustID("S2"))
	require.NoError(t, err)

	// Then
	assert.Len(t, roster, 2)
	assert.Equal(t, "S2", got.ID().String())
	assert.Equal(t, map[string]string{"S1": "Alice"}, names.Map())
	_, err = dir.Get(t.Context(), kernel.MustID("S3"))
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
