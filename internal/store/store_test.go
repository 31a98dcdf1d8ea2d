package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	doc := Document{"id": "a1", "topic": "cryptography", "score": float64(40)}

	tests := []struct {
		name  string
		query Document
		want  bool
	}{
		{"empty query", Document{}, true},
		{"equal value", Document{"id": "a1"}, true},
		{"all keys equal", Document{"id": "a1", "topic": "cryptography"}, true},
		{"different value", Document{"id": "a2"}, false},
		{"absent key does not exclude", Document{"user_id": "bob"}, true},
		{"absent key with mismatch", Document{"user_id": "bob", "id": "zz"}, false},
		{"number", Document{"score": float64(40)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(doc, tt.query))
		})
	}
}

func TestToDocument(t *testing.T) {
	type rec struct {
		ID    string   `json:"id"`
		Score int      `json:"score"`
		Tags  []string `json:"tags"`
	}

	d, err := ToDocument(rec{ID: "r1", Score: 7, Tags: []string{"x"}})
	require.NoError(t, err)
	assert.Equal(t, "r1", d["id"])
	assert.Equal(t, float64(7), d["score"])
	assert.Equal(t, []any{"x"}, d["tags"])

	var back rec
	require.NoError(t, Decode(d, &back))
	assert.Equal(t, 7, back.Score)

	_, err = ToDocument([]int{1})
	assert.Error(t, err)
}

func TestApplyOptions(t *testing.T) {
	docs := []Document{
		{"id": "a", "created_at": "2026-01-02T10:00:00Z", "n": float64(2)},
		{"id": "b", "created_at": "2026-01-02T09:00:00.5Z", "n": float64(3)},
		{"id": "c", "n": float64(1)},
		{"id": "d", "created_at": "2026-01-03T00:00:00Z", "n": float64(2)},
	}
	ids := func(ds []Document) []string {
		var out []string
		for _, d := range ds {
			out = append(out, d["id"].(string))
		}
		return out
	}

	sorted := applyOptions(append([]Document(nil), docs...), FindOptions{SortField: "created_at", SortOrder: Descending})
	assert.Equal(t, []string{"d", "a", "b", "c"}, ids(sorted))

	sorted = applyOptions(append([]Document(nil), docs...), FindOptions{SortField: "n", SortOrder: Ascending})
	assert.Equal(t, []string{"c", "a", "d", "b"}, ids(sorted))

	page := applyOptions(append([]Document(nil), docs...), FindOptions{Skip: 1, Limit: 2})
	assert.Equal(t, []string{"b", "c"}, ids(page))

	assert.Empty(t, applyOptions(append([]Document(nil), docs...), FindOptions{Skip: 10}))
}

func TestCloneDocument_Deep(t *testing.T) {
	orig := Document{"nested": map[string]any{"k": "v"}, "list": []any{"a"}}
	cp := cloneDocument(orig)
	cp["nested"].(map[string]any)["k"] = "changed"
	cp["list"].([]any)[0] = "b"

	assert.Equal(t, "v", orig["nested"].(map[string]any)["k"])
	assert.Equal(t, "a", orig["list"].([]any)[0])
}

func TestMongoFilter(t *testing.T) {
	assert.Empty(t, mongoFilter(nil))

	f := mongoFilter(Document{"id": "x"})
	and, ok := f["$and"]
	require.True(t, ok)
	assert.Len(t, and, 1)
}
