package docstore_test

import (
	"context"
	"testing"
	"time"

	"fleetops/internal/adapters/out/docstore"
	"fleetops/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_Accessors(t *testing.T) {
	f := docstore.Fields{
		"name":     "Lan",
		"type":     float64(2),
		"legacy":   "3",
		"fraction": 2.5,
		"locked":   true,
		"current":  nil,
	}

	assert.Equal(t, "Lan", f.String("name"))
	assert.Equal(t, "2", f.String("type"))
	assert.Empty(t, f.String("missing"))
	assert.Equal(t, 2, f.Int("type"))
	assert.Equal(t, 3, f.Int("legacy"))
	assert.Equal(t, 0, f.Int("fraction"))
	assert.True(t, f.Bool("locked"))
	assert.False(t, f.Bool("name"))
	assert.True(t, f.Has("name"))
	assert.False(t, f.Has("current"))
	assert.False(t, f.Has("missing"))
}

func TestFields_Clone(t *testing.T) {
	f := docstore.Fields{"a": "1"}

	c := f.Clone()
	c["a"] = "2"

	assert.Equal(t, "1", f["a"])
}

func TestTime_RoundTrip(t *testing.T) {
	at := time.Date(2024, 6, 1, 9, 30, 0, 120000000, time.FixedZone("ICT", 7*3600))

	stored := docstore.FormatTime(at)

	assert.Equal(t, "2024-06-01T02:30:00.120000Z", stored)
	assert.True(t, at.Equal(docstore.ParseTime(stored)))
	assert.Equal(t, time.UnixMilli(1717200000000).UTC(), docstore.ParseTime(float64(1717200000000)))
	assert.True(t, docstore.ParseTime("yesterday").IsZero())
	assert.True(t, docstore.ParseTime(nil).IsZero())
}

func TestLocalNotifier(t *testing.T) {
	// Given
	n := docstore.NewLocalNotifier()
	ctx, cancel := context.WithCancel(t.Context())
	orders, err := n.Subscribe(ctx, ports.CollectionOrders)
	require.NoError(t, err)
	users, err := n.Subscribe(ctx, ports.CollectionUsers)
	require.NoError(t, err)

	// When
	require.NoError(t, n.Publish(t.Context(),
		ports.Change{Collection: ports.CollectionOrders, ID: "O1"},
		ports.Change{Collection: ports.CollectionUsers, ID: "S1"},
	))

	// Then
	assert.Equal(t, "O1", (<-orders).ID)
	assert.Equal(t, "S1", (<-users).ID)

	cancel()
	require.Eventually(t, func() bool {
		_, open := <-orders
		return !open
	}, time.Second, 5*time.Millisecond)
}
