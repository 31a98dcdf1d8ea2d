package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"time"
)

const (
	Ascending  = 1
	Descending = -1
)

// ErrNoDocuments is returned by FindOne when nothing matches.
var ErrNoDocuments = errors.New("store: no documents in result")

// Document is a JSON-shaped record: nested maps, slices, strings, float64
// numbers, bools and nil.
type Document map[string]any

type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	Name() string
}

type Collection interface {
	InsertOne(ctx context.Context, doc any) error
	FindOne(ctx context.Context, query Document) (Document, error)
	Find(query Document) *Cursor
	// UpdateOne sets the top-level fields of set on the first match and
	// reports how many documents matched (0 or 1).
	UpdateOne(ctx context.Context, query Document, set Document) (int64, error)
	DeleteOne(ctx context.Context, query Document) (int64, error)
	CountDocuments(ctx context.Context, query Document) (int64, error)
}

// ToDocument converts a struct or map into its JSON document form.
func ToDocument(v any) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc == nil {
		return nil, errors.New("document must be an object")
	}
	return doc, nil
}

// normalizeQuery accepts a nil query as "match everything".
func normalizeQuery(q Document) (Document, error) {
	if len(q) == 0 {
		return Document{}, nil
	}
	return ToDocument(q)
}

// Decode fills out from doc.
func Decode(doc Document, out any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return json.Unmarshal(data, out)
}

// Matches reports whether doc satisfies query. Every query key present in
// doc must hold an equal value; keys the document lacks do not exclude it.
func Matches(doc, query Document) bool {
	for k, want := range query {
		got, ok := doc[k]
		if !ok {
			continue
		}
		if !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Document:
		return cloneDocument(t)
	case map[string]any:
		return map[string]any(cloneDocument(Document(t)))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func cloneDocument(d Document) Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

// Cursor is a lazy find. Nothing runs until All.
type Cursor struct {
	exec  func(ctx context.Context, opts FindOptions) ([]Document, error)
	opts  FindOptions
	query Document
}

type FindOptions struct {
	SortField string
	SortOrder int
	Skip      int64
	Limit     int64
}

func newCursor(query Document, exec func(ctx context.Context, opts FindOptions) ([]Document, error)) *Cursor {
	return &Cursor{exec: exec, query: query}
}

// errCursor defers a query normalization failure to All.
func errCursor(err error) *Cursor {
	return newCursor(nil, func(context.Context, FindOptions) ([]Document, error) {
		return nil, err
	})
}

func (c *Cursor) Sort(field string, order int) *Cursor {
	c.opts.SortField = field
	c.opts.SortOrder = order
	return c
}

func (c *Cursor) Skip(n int64) *Cursor {
	c.opts.Skip = n
	return c
}

func (c *Cursor) Limit(n int64) *Cursor {
	c.opts.Limit = n
	return c
}

func (c *Cursor) All(ctx context.Context) ([]Document, error) {
	return c.exec(ctx, c.opts)
}

// applyOptions sorts, skips and limits docs in place for the scanning
// backends. The sort is stable so insertion order breaks ties.
func applyOptions(docs []Document, opts FindOptions) []Document {
	if opts.SortField != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			c := compareValues(docs[i][opts.SortField], docs[j][opts.SortField])
			if opts.SortOrder < 0 {
				return c > 0
			}
			return c < 0
		})
	}
	if opts.Skip > 0 {
		if opts.Skip >= int64(len(docs)) {
			return []Document{}
		}
		docs = docs[opts.Skip:]
	}
	if opts.Limit > 0 && opts.Limit < int64(len(docs)) {
		docs = docs[:opts.Limit]
	}
	return docs
}

// compareValues orders missing values first, then numbers, timestamps and
// strings by value. Mismatched kinds compare equal.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			return cmpOrdered(av, bv)
		}
	case string:
		if bv, ok := b.(string); ok {
			at, aerr := time.Parse(time.RFC3339Nano, av)
			bt, berr := time.Parse(time.RFC3339Nano, bv)
			if aerr == nil && berr == nil {
				return at.Compare(bt)
			}
			return cmpOrdered(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	}
	return 0
}

func cmpOrdered[T float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
