package store

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// documentRow is one JSON document in the shared documents table.
type documentRow struct {
	ID         uint   `gorm:"primaryKey"`
	Collection string `gorm:"size:64;index:idx_collection_doc"`
	DocID      string `gorm:"size:64;index:idx_collection_doc"`
	Body       string `gorm:"type:longtext"`
}

func (documentRow) TableName() string {
	return "documents"
}

// SQLStore keeps documents as JSON bodies in a relational table and filters
// them in process, matching MemoryStore semantics.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Migrate creates the documents table.
func (s *SQLStore) Migrate() error {
	return s.db.AutoMigrate(&documentRow{})
}

func (s *SQLStore) Collection(name string) Collection {
	return &sqlCollection{db: s.db, name: name}
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLStore) Name() string { return "sql" }

type sqlCollection struct {
	db   *gorm.DB
	name string
}

type loadedRow struct {
	id  uint
	doc Document
}

func (c *sqlCollection) load(ctx context.Context, q Document) ([]loadedRow, error) {
	var rows []documentRow
	if err := c.db.WithContext(ctx).
		Where("collection = ?", c.name).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]loadedRow, 0, len(rows))
	for _, r := range rows {
		var d Document
		if err := json.Unmarshal([]byte(r.Body), &d); err != nil {
			return nil, fmt.Errorf("decode document %d: %w", r.ID, err)
		}
		if Matches(d, q) {
			out = append(out, loadedRow{id: r.ID, doc: d})
		}
	}
	return out, nil
}

func (c *sqlCollection) InsertOne(ctx context.Context, doc any) error {
	d, err := ToDocument(doc)
	if err != nil {
		return err
	}
	body, err := json.Marshal(d)
	if err != nil {
		return err
	}

	docID, _ := d["id"].(string)
	row := documentRow{Collection: c.name, DocID: docID, Body: string(body)}
	return c.db.WithContext(ctx).Create(&row).Error
}

func (c *sqlCollection) FindOne(ctx context.Context, query Document) (Document, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return nil, err
	}
	rows, err := c.load(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoDocuments
	}
	return rows[0].doc, nil
}

func (c *sqlCollection) Find(query Document) *Cursor {
	q, err := normalizeQuery(query)
	if err != nil {
		return errCursor(err)
	}

	return newCursor(q, func(ctx context.Context, opts FindOptions) ([]Document, error) {
		rows, err := c.load(ctx, q)
		if err != nil {
			return nil, err
		}
		docs := make([]Document, 0, len(rows))
		for _, r := range rows {
			docs = append(docs, r.doc)
		}
		return applyOptions(docs, opts), nil
	})
}

func (c *sqlCollection) UpdateOne(ctx context.Context, query Document, set Document) (int64, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return 0, err
	}
	s, err := ToDocument(set)
	if err != nil {
		return 0, err
	}

	rows, err := c.load(ctx, q)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	target := rows[0]
	for k, v := range s {
		target.doc[k] = v
	}
	body, err := json.Marshal(target.doc)
	if err != nil {
		return 0, err
	}

	res := c.db.WithContext(ctx).
		Model(&documentRow{}).
		Where("id = ?", target.id).
		Update("body", string(body))
	return res.RowsAffected, res.Error
}

func (c *sqlCollection) DeleteOne(ctx context.Context, query Document) (int64, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return 0, err
	}
	rows, err := c.load(ctx, q)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	res := c.db.WithContext(ctx).Delete(&documentRow{}, rows[0].id)
	return res.RowsAffected, res.Error
}

func (c *sqlCollection) CountDocuments(ctx context.Context, query Document) (int64, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return 0, err
	}
	rows, err := c.load(ctx, q)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}
