package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemoryStore_GetMissing verifies a missing key reports ErrNotFound.
func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestMemoryStore_PutGet verifies a stored record round-trips.
func TestMemoryStore_PutGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "p1", Record{"Name": "Widget", "Quantity": int64(5)}))

	rec, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", rec["Name"])
	assert.Equal(t, int64(5), rec["Quantity"])
}

// TestMemoryStore_UpdateMergesFields verifies a partial update touches only
// the supplied attributes.
func TestMemoryStore_UpdateMergesFields(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "p1", Record{"Name": "Widget", "Quantity": int64(5)}))
	require.NoError(t, store.Update(ctx, "p1", Record{"Quantity": int64(9)}))

	rec, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", rec["Name"], "untouched attribute should survive")
	assert.Equal(t, int64(9), rec["Quantity"])
}

// TestMemoryStore_UpdateMissing verifies updating an absent key fails instead
// of creating it.
func TestMemoryStore_UpdateMissing(t *testing.T) {
	store := NewMemoryStore()

	err := store.Update(context.Background(), "nope", Record{"Quantity": int64(1)})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound, "failed update must not create the record")
}

// TestMemoryStore_DeleteIsIdempotent verifies deleting twice is not an error.
func TestMemoryStore_DeleteIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "p1", Record{"Name": "Widget"}))
	require.NoError(t, store.Delete(ctx, "p1"))
	require.NoError(t, store.Delete(ctx, "p1"))

	_, err := store.Get(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestMemoryStore_Scan verifies every stored record is returned.
func TestMemoryStore_Scan(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a", Record{"Name": "A"}))
	require.NoError(t, store.Put(ctx, "b", Record{"Name": "B"}))

	records, err := store.Scan(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

// TestMemoryStore_GetReturnsCopy verifies callers cannot mutate stored state
// through a returned record.
func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "p1", Record{"Name": "Widget"}))

	rec, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	rec["Name"] = "Tampered"

	fresh, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", fresh["Name"])
}

// TestEncodeDecode verifies struct round-tripping through a record.
func TestEncodeDecode(t *testing.T) {
	type widget struct {
		ProductID string `json:"ProductID"`
		Quantity  int64  `json:"Quantity"`
	}

	rec, err := Encode(widget{ProductID: "w1", Quantity: 12})
	require.NoError(t, err)

	var out widget
	require.NoError(t, Decode(rec, &out))
	assert.Equal(t, "w1", out.ProductID)
	assert.Equal(t, int64(12), out.Quantity)
}
