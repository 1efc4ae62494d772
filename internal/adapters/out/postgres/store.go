// Package postgres stores fleet documents in a Postgres table with a JSONB
// column and streams their changes with LISTEN/NOTIFY.
//
// Key Features:
//   - docstore.Store over GORM with partial JSONB updates (fields || patch)
//   - docstore.TxStore: transactions for the transactional assignment mode
//   - PgNotifier: change feed fed by the documents trigger, so writes made by
//     other services are seen too
//   - Connect: startup connection with exponential backoff
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fleetops/internal/adapters/out/docstore"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentRow is one row of the documents table.
type DocumentRow struct {
	Collection string    `gorm:"column:collection;primaryKey"`
	ID         string    `gorm:"column:id;primaryKey"`
	Fields     string    `gorm:"column:fields;type:jsonb;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null"`
}

// TableName sets the table name for GORM.
func (DocumentRow) TableName() string {
	return "documents"
}

// GormStore implements docstore.TxStore on the documents table.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore creates a store on db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

// BeginTx starts a transaction. Writes made through the returned Tx are
// visible to others, and announced by the trigger, only after Commit.
func (s *GormStore) BeginTx(ctx context.Context) (docstore.Tx, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, pkgerrors.Wrap(tx.Error, "begin")
	}
	return &gormTx{GormStore: &GormStore{db: tx, now: s.now}, tx: tx}, nil
}

// Get implements docstore.Store.
func (s *GormStore) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	var row DocumentRow
	err := s.db.WithContext(ctx).First(&row, "collection = ? AND id = ?", collection, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return docstore.Document{}, pkgerrors.Wrapf(docstore.ErrDocumentNotFound, "%s/%s", collection, id)
	}
	if err != nil {
		return docstore.Document{}, pkgerrors.Wrapf(err, "get %s/%s", collection, id)
	}
	return toDocument(row)
}

// Find implements docstore.Store.
func (s *GormStore) Find(ctx context.Context, q docstore.Query) ([]docstore.Document, error) {
	db := s.db.WithContext(ctx).Where("collection = ?", q.Collection)

	for _, f := range q.Where {
		containment, err := json.Marshal(map[string]any{f.Field: f.Value})
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "encode filter %s", f.Field)
		}
		db = db.Where("fields @> ?::jsonb", string(containment))
	}

	if q.OrderBy != "" {
		direction := "ASC NULLS FIRST"
		if q.Desc {
			direction = "DESC NULLS LAST"
		}
		db = db.Order(clause.Expr{SQL: fmt.Sprintf("fields -> ?::text %s", direction), Vars: []any{q.OrderBy}})
	}
	db = db.Order("id")

	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}

	var rows []DocumentRow
	if err := db.Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrapf(err, "find %s", q.Collection)
	}

	docs := make([]docstore.Document, 0, len(rows))
	for _, row := range rows {
		doc, err := toDocument(row)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Create implements docstore.Store.
func (s *GormStore) Create(ctx context.Context, doc docstore.Document) error {
	fields, err := json.Marshal(orEmpty(doc.Fields))
	if err != nil {
		return pkgerrors.Wrapf(err, "encode %s/%s", doc.Collection, doc.ID)
	}

	row := DocumentRow{
		Collection: doc.Collection,
		ID:         doc.ID,
		Fields:     string(fields),
		UpdatedAt:  s.now().UTC(),
	}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if result.Error != nil {
		return pkgerrors.Wrapf(result.Error, "create %s/%s", doc.Collection, doc.ID)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.Wrapf(docstore.ErrDocumentExists, "%s/%s", doc.Collection, doc.ID)
	}
	return nil
}

// Update implements docstore.Store with a single statement merging patch
// into the stored fields.
func (s *GormStore) Update(ctx context.Context, collection, id string, patch docstore.Fields) error {
	encoded, err := json.Marshal(orEmpty(patch))
	if err != nil {
		return pkgerrors.Wrapf(err, "encode %s/%s", collection, id)
	}

	result := s.db.WithContext(ctx).Exec(
		"UPDATE documents SET fields = fields || ?::jsonb, updated_at = ? WHERE collection = ? AND id = ?",
		string(encoded), s.now().UTC(), collection, id,
	)
	if result.Error != nil {
		return pkgerrors.Wrapf(result.Error, "update %s/%s", collection, id)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.Wrapf(docstore.ErrDocumentNotFound, "%s/%s", collection, id)
	}
	return nil
}

// Delete implements docstore.Store.
func (s *GormStore) Delete(ctx context.Context, collection, id string) error {
	err := s.db.WithContext(ctx).Where("collection = ? AND id = ?", collection, id).Delete(&DocumentRow{}).Error
	return pkgerrors.Wrapf(err, "delete %s/%s", collection, id)
}

type gormTx struct {
	*GormStore
	tx *gorm.DB
}

func (t *gormTx) Commit() error {
	return pkgerrors.Wrap(t.tx.Commit().Error, "commit")
}

func (t *gormTx) Rollback() error {
	return pkgerrors.Wrap(t.tx.Rollback().Error, "rollback")
}

func toDocument(row DocumentRow) (docstore.Document, error) {
	var fields docstore.Fields
	if err := json.Unmarshal([]byte(row.Fields), &fields); err != nil {
		return docstore.Document{}, pkgerrors.Wrapf(err, "decode %s/%s", row.Collection, row.ID)
	}
	if fields == nil {
		fields = docstore.Fields{}
	}
	return docstore.Document{
		Collection: row.Collection,
		ID:         row.ID,
		Fields:     fields,
		UpdatedAt:  row.UpdatedAt.UTC(),
	}, nil
}

func orEmpty(f docstore.Fields) docstore.Fields {
	if f == nil {
		return docstore.Fields{}
	}
	return f
}
