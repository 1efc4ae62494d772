package ports

import "context"

// Document collections of the fleet database.
const (
	CollectionOrders    = "orders"
	CollectionUsers     = "users"
	CollectionLogs      = "logs"
	CollectionInventory = "inventory"
)

// ChangeKind tells what happened to a document.
type ChangeKind int

const (
	ChangeUpdated ChangeKind = iota
	ChangeCreated
	ChangeDeleted
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCreated:
		return "created"
	case ChangeDeleted:
		return "deleted"
	default:
		return "updated"
	}
}

// ParseChangeKind reads the String form; anything unrecognised is an update.
func ParseChangeKind(raw string) ChangeKind {
	switch raw {
	case "created":
		return ChangeCreated
	case "deleted":
		return ChangeDeleted
	default:
		return ChangeUpdated
	}
}

// Change announces that a document was written.
type Change struct {
	Collection string
	ID         string
	Kind       ChangeKind
}

// ChangeFeed delivers document changes as they are committed.
type ChangeFeed interface {
	// Subscribe streams changes to collection until ctx is done, then closes
	// the channel. Slow subscribers may miss changes; every change means
	// "re-read", so a missed one is covered by the next.
	Subscribe(ctx context.Context, collection string) (<-chan Change, error)
}

// ChangePublisher announces committed changes to subscribers.
type ChangePublisher interface {
	Publish(ctx context.Context, changes ...Change) error
}
