package docstore

import (
	"context"
	"sync"

	"fleetops/internal/core/ports"
)

// Notifier announces committed writes and lets live views watch them.
type Notifier interface {
	ports.ChangeFeed
	ports.ChangePublisher
}

// subscriberBuffer is how many changes a subscriber may lag behind before
// changes are dropped for it.
const subscriberBuffer = 64

// LocalNotifier fans changes out to subscribers in the same process.
type LocalNotifier struct {
	mu   sync.Mutex
	subs map[string]map[chan ports.Change]struct{}
}

// NewLocalNotifier creates an empty notifier.
func NewLocalNotifier() *LocalNotifier {
	return &LocalNotifier{subs: make(map[string]map[chan ports.Change]struct{})}
}

// Subscribe streams changes to collection until ctx is done.
func (n *LocalNotifier) Subscribe(ctx context.Context, collection string) (<-chan ports.Change, error) {
	ch := make(chan ports.Change, subscriberBuffer)

	n.mu.Lock()
	if n.subs[collection] == nil {
		n.subs[collection] = make(map[chan ports.Change]struct{})
	}
	n.subs[collection][ch] = struct{}{}
	n.mu.Unlock()

	go func() {
		<-ctx.Done()
		n.mu.Lock()
		delete(n.subs[collection], ch)
		close(ch)
		n.mu.Unlock()
	}()

	return ch, nil
}

// Publish delivers changes without blocking. A subscriber whose buffer is full
// misses the change.
func (n *LocalNotifier) Publish(_ context.Context, changes ...ports.Change) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, c := range changes {
		for ch := range n.subs[c.Collection] {
			select {
			case ch <- c:
			default:
			}
		}
	}
	return nil
}
