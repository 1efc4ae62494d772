package postgres

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"fleetops/internal/adapters/out/docstore"
	"fleetops/internal/core/ports"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	pkgerrors "github.com/pkg/errors"
)

// ChangeChannel is the NOTIFY channel the documents trigger writes to.
const ChangeChannel = "document_changes"

// PgNotifier turns documents trigger notifications into ports.Change values.
// The trigger fires on commit for every writer of the table, so Publish has
// nothing to do.
type PgNotifier struct {
	dsn    string
	local  *docstore.LocalNotifier
	logger *slog.Logger
}

// NewPgNotifier creates a notifier; call Listen to start receiving.
func NewPgNotifier(dsn string, logger *slog.Logger) *PgNotifier {
	return &PgNotifier{
		dsn:    dsn,
		local:  docstore.NewLocalNotifier(),
		logger: logger.With("component", "pg_notifier"),
	}
}

// Subscribe implements ports.ChangeFeed.
func (n *PgNotifier) Subscribe(ctx context.Context, collection string) (<-chan ports.Change, error) {
	return n.local.Subscribe(ctx, collection)
}

// Publish implements ports.ChangePublisher. Changes reach subscribers through
// the trigger.
func (n *PgNotifier) Publish(context.Context, ...ports.Change) error {
	return nil
}

// Listen holds a dedicated connection on ChangeChannel until ctx is done,
// reconnecting with exponential backoff when the connection drops.
func (n *PgNotifier) Listen(ctx context.Context) error {
	retry := backoff.NewExponentialBackOff()
	retry.MaxElapsedTime = 0
	retry.MaxInterval = 30 * time.Second

	for {
		err := n.listenOnce(ctx, retry.Reset)
		if ctx.Err() != nil {
			return nil
		}

		wait := retry.NextBackOff()
		n.logger.Warn("change listener disconnected", "error", err, "retry_in", wait)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

func (n *PgNotifier) listenOnce(ctx context.Context, connected func()) error {
	conn, err := pgx.Connect(ctx, n.dsn)
	if err != nil {
		return pkgerrors.Wrap(err, "connect")
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+ChangeChannel); err != nil {
		return pkgerrors.Wrap(err, "listen")
	}
	connected()
	n.logger.Info("listening for document changes", "channel", ChangeChannel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return pkgerrors.Wrap(err, "wait for notification")
		}

		change, err := decodeChange(notification.Payload)
		if err != nil {
			n.logger.Warn("skipping malformed change", "payload", notification.Payload, "error", err)
			continue
		}
		_ = n.local.Publish(ctx, change)
	}
}

type changePayload struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
	Kind       string `json:"kind"`
}

func decodeChange(payload string) (ports.Change, error) {
	var p changePayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return ports.Change{}, err
	}
	if p.Collection == "" || p.ID == "" {
		return ports.Change{}, pkgerrors.New("collection and id are required")
	}
	return ports.Change{
		Collection: p.Collection,
		ID:         p.ID,
		Kind:       ports.ParseChangeKind(p.Kind),
	}, nil
}
