package store

import (
	"context"
	"sync"
)

// MemoryStore keeps every collection in process. Documents are deep-copied
// on the way in and out so callers never share state with the store.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]Document)}
}

func (s *MemoryStore) Collection(name string) Collection {
	return &memoryCollection{store: s, name: name}
}

func (s *MemoryStore) Ping(context.Context) error  { return nil }
func (s *MemoryStore) Close(context.Context) error { return nil }
func (s *MemoryStore) Name() string                { return "memory" }

type memoryCollection struct {
	store *MemoryStore
	name  string
}

func (c *memoryCollection) InsertOne(_ context.Context, doc any) error {
	d, err := ToDocument(doc)
	if err != nil {
		return err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.store.collections[c.name] = append(c.store.collections[c.name], d)
	return nil
}

func (c *memoryCollection) FindOne(_ context.Context, query Document) (Document, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return nil, err
	}

	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	for _, d := range c.store.collections[c.name] {
		if Matches(d, q) {
			return cloneDocument(d), nil
		}
	}
	return nil, ErrNoDocuments
}

func (c *memoryCollection) Find(query Document) *Cursor {
	q, err := normalizeQuery(query)
	if err != nil {
		return errCursor(err)
	}

	return newCursor(q, func(_ context.Context, opts FindOptions) ([]Document, error) {
		c.store.mu.RLock()
		var out []Document
		for _, d := range c.store.collections[c.name] {
			if Matches(d, q) {
				out = append(out, cloneDocument(d))
			}
		}
		c.store.mu.RUnlock()
		return applyOptions(out, opts), nil
	})
}

func (c *memoryCollection) UpdateOne(_ context.Context, query Document, set Document) (int64, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return 0, err
	}
	s, err := ToDocument(set)
	if err != nil {
		return 0, err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	for _, d := range c.store.collections[c.name] {
		if Matches(d, q) {
			for k, v := range s {
				d[k] = v
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (c *memoryCollection) DeleteOne(_ context.Context, query Document) (int64, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return 0, err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	docs := c.store.collections[c.name]
	for i, d := range docs {
		if Matches(d, q) {
			c.store.collections[c.name] = append(docs[:i:i], docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (c *memoryCollection) CountDocuments(_ context.Context, query Document) (int64, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return 0, err
	}

	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	var n int64
	for _, d := range c.store.collections[c.name] {
		if Matches(d, q) {
			n++
		}
	}
	return n, nil
}
