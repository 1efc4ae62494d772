// Package docstore describes the document database the fleet data lives in:
// schemaless documents grouped in collections, read by id or by simple
// queries and changed by partial updates.
//
// Two stores implement it: memstore (in process, used in tests and demo
// mode) and postgres.GormStore (JSONB documents). Field values follow JSON
// semantics in both: numbers are float64, timestamps are strings written by
// FormatTime, and an explicit nil stores null.
package docstore

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrDocumentNotFound is returned when reading or updating a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrDocumentExists is returned when creating a document whose id is taken.
	ErrDocumentExists = errors.New("document already exists")
	// ErrTxIsDone is returned when using a transaction after Commit or Rollback.
	ErrTxIsDone = errors.New("transaction already finished")
)

// Fields is the content of a document.
type Fields map[string]any

// Document is one stored record.
type Document struct {
	Collection string
	ID         string
	Fields     Fields
	UpdatedAt  time.Time
}

// Filter keeps documents whose Field equals Value. Missing fields never match.
type Filter struct {
	Field string
	Value any
}

// Query selects documents from one collection.
type Query struct {
	Collection string
	Where      []Filter
	// OrderBy sorts by a field; empty keeps store order (by id).
	OrderBy string
	Desc    bool
	// Limit caps the result; zero means no limit.
	Limit int
}

// Store reads and writes documents.
type Store interface {
	// Get returns ErrDocumentNotFound for a missing document.
	Get(ctx context.Context, collection, id string) (Document, error)

	// Find runs a query. Documents missing the OrderBy field sort as null,
	// which is lower than any value.
	Find(ctx context.Context, q Query) ([]Document, error)

	// Create stores a new document or returns ErrDocumentExists.
	Create(ctx context.Context, doc Document) error

	// Update merges patch into the top-level fields of an existing document.
	// A nil value stores null. Missing documents give ErrDocumentNotFound.
	Update(ctx context.Context, collection, id string, patch Fields) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
}

// Tx is a Store whose writes become visible together on Commit.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// TxStore is a Store that can run transactions.
type TxStore interface {
	Store
	BeginTx(ctx context.Context) (Tx, error)
}

// timeLayout is fixed width so stored timestamps sort as strings.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// FormatTime encodes t for storage.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// ParseTime reads a stored timestamp: FormatTime output, any RFC 3339 string,
// or epoch milliseconds as a number. Anything else gives the zero time.
func ParseTime(raw any) time.Time {
	switch v := raw.(type) {
	case string:
		if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v)); err == nil {
			return t.UTC()
		}
	case float64:
		return time.UnixMilli(int64(v)).UTC()
	case int64:
		return time.UnixMilli(v).UTC()
	case time.Time:
		return v.UTC()
	}
	return time.Time{}
}

// String returns the field as a string. Numbers are formatted; anything else
// gives "".
func (f Fields) String(field string) string {
	switch v := f[field].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

// Int returns the field as an integer. Numeric strings are accepted;
// anything else gives 0.
func (f Fields) Int(field string) int {
	switch v := f[field].(type) {
	case float64:
		if v == math.Trunc(v) {
			return int(v)
		}
	case int:
		return v
	case int64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}

// Bool returns the field as a boolean; anything but true gives false.
func (f Fields) Bool(field string) bool {
	v, _ := f[field].(bool)
	return v
}

// Has reports whether the field is present and not null.
func (f Fields) Has(field string) bool {
	v, ok := f[field]
	return ok && v != nil
}

// Clone copies the top level of f.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
