// Package memstore is an in-process document store.
//
// Documents are kept JSON-encoded, so every read returns a private copy and
// values come back with the same types the Postgres store produces. Writes
// are applied immediately; the store has no transactions.
package memstore

import (
	"cmp"
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"fleetops/internal/adapters/out/docstore"

	"github.com/pkg/errors"
)

type record struct {
	fields    []byte
	updatedAt time.Time
}

// Store is a goroutine-safe in-memory docstore.Store.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]record
	now         func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		collections: make(map[string]map[string]record),
		now:         time.Now,
	}
}

// Get implements docstore.Store.
func (s *Store) Get(_ context.Context, collection, id string) (docstore.Document, error) {
	s.mu.RLock()
	rec, ok := s.collections[collection][id]
	s.mu.RUnlock()

	if !ok {
		return docstore.Document{}, errors.Wrapf(docstore.ErrDocumentNotFound, "%s/%s", collection, id)
	}
	return decode(collection, id, rec)
}

// Find implements docstore.Store.
func (s *Store) Find(_ context.Context, q docstore.Query) ([]docstore.Document, error) {
	where, err := normalizeFilters(q.Where)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	docs := make([]docstore.Document, 0, len(s.collections[q.Collection]))
	for id, rec := range s.collections[q.Collection] {
		doc, err := decode(q.Collection, id, rec)
		if err != nil {
			s.mu.RUnlock()
			return nil, err
		}
		if matches(doc.Fields, where) {
			docs = append(docs, doc)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(docs, func(a, b docstore.Document) int {
		if q.OrderBy != "" {
			c := compareValues(a.Fields[q.OrderBy], b.Fields[q.OrderBy])
			if q.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs, nil
}

// Create implements docstore.Store.
func (s *Store) Create(_ context.Context, doc docstore.Document) error {
	raw, err := json.Marshal(doc.Fields)
	if err != nil {
		return errors.Wrapf(err, "encode %s/%s", doc.Collection, doc.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[doc.Collection]
	if docs == nil {
		docs = make(map[string]record)
		s.collections[doc.Collection] = docs
	}
	if _, taken := docs[doc.ID]; taken {
		return errors.Wrapf(docstore.ErrDocumentExists, "%s/%s", doc.Collection, doc.ID)
	}
	docs[doc.ID] = record{fields: raw, updatedAt: s.now().UTC()}
	return nil
}

// Update implements docstore.Store.
func (s *Store) Update(_ context.Context, collection, id string, patch docstore.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.collections[collection][id]
	if !ok {
		return errors.Wrapf(docstore.ErrDocumentNotFound, "%s/%s", collection, id)
	}

	var fields docstore.Fields
	if err := json.Unmarshal(rec.fields, &fields); err != nil {
		return errors.Wrapf(err, "decode %s/%s", collection, id)
	}
	if fields == nil {
		fields = docstore.Fields{}
	}
	for k, v := range patch {
		fields[k] = v
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return errors.Wrapf(err, "encode %s/%s", collection, id)
	}
	s.collections[collection][id] = record{fields: raw, updatedAt: s.now().UTC()}
	return nil
}

// Delete implements docstore.Store.
func (s *Store) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], id)
	return nil
}

func decode(collection, id string, rec record) (docstore.Document, error) {
	var fields docstore.Fields
	if err := json.Unmarshal(rec.fields, &fields); err != nil {
		return docstore.Document{}, errors.Wrapf(err, "decode %s/%s", collection, id)
	}
	if fields == nil {
		fields = docstore.Fields{}
	}
	return docstore.Document{
		Collection: collection,
		ID:         id,
		Fields:     fields,
		UpdatedAt:  rec.updatedAt,
	}, nil
}

// normalizeFilters gives filter values the types stored values decode to.
func normalizeFilters(where []docstore.Filter) ([]docstore.Filter, error) {
	out := make([]docstore.Filter, 0, len(where))
	for _, f := range where {
		raw, err := json.Marshal(f.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "encode filter %s", f.Field)
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errors.Wrapf(err, "decode filter %s", f.Field)
		}
		out = append(out, docstore.Filter{Field: f.Field, Value: v})
	}
	return out, nil
}

func matches(fields docstore.Fields, where []docstore.Filter) bool {
	for _, f := range where {
		v, ok := fields[f.Field]
		if !ok || !equalValues(v, f.Value) {
			return false
		}
	}
	return true
}

func equalValues(a, b any) bool {
	switch av := a.(type) {
	case nil, string, float64, bool:
		return a == b
	default:
		raw, _ := json.Marshal(av)
		other, _ := json.Marshal(b)
		return string(raw) == string(other)
	}
}

// compareValues orders values the way Postgres orders jsonb: null, then
// strings, then numbers, then booleans.
func compareValues(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch av := a.(type) {
	case string:
		return cmp.Compare(av, b.(string))
	case float64:
		return cmp.Compare(av, b.(float64))
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	default:
		return 0
	}
}

func rank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case string:
		return 1
	case float64:
		return 2
	case bool:
		return 3
	default:
		return 4
	}
}
