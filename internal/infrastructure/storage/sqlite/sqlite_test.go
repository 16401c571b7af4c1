package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"stockroom/internal/domain/resource"
)

func newTestRepository(t *testing.T) *ResourceRepository {
	t.Helper()

	repo, err := NewResourceRepository(filepath.Join(t.TempDir(), "stockroom.db"), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestCreate_AssignsSequentialIDs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, "items", resource.Fields{"name": "Widget"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, "items", resource.Fields{"name": "Gadget"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestCreate_NeverReusesIDs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, "items", resource.Fields{"name": "Widget"})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, "items", first.ID))

	second, err := repo.Create(ctx, "items", resource.Fields{"name": "Gadget"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestCreate_SequencesArePerCollection(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	item, err := repo.Create(ctx, "items", resource.Fields{"name": "Widget"})
	require.NoError(t, err)
	note, err := repo.Create(ctx, "notes", resource.Fields{"title": "Hello"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), item.ID)
	assert.Equal(t, int64(1), note.ID)
}

func TestList_InsertionOrder(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, name := range []string{"Widget", "Gadget", "Sprocket"} {
		_, err := repo.Create(ctx, "items", resource.Fields{"name": name})
		require.NoError(t, err)
	}

	records, err := repo.List(ctx, "items")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Widget", records[0].Fields["name"])
	assert.Equal(t, "Gadget", records[1].Fields["name"])
	assert.Equal(t, "Sprocket", records[2].Fields["name"])
}

func TestList_EmptyCollection(t *testing.T) {
	repo := newTestRepository(t)

	records, err := repo.List(context.Background(), "items")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestGet_RoundTripsFieldValues(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "items", resource.Fields{
		"name":  "Widget",
		"stock": float64(5),
		"done":  true,
		"note":  nil,
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "items", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Fields["name"])
	assert.Equal(t, float64(5), got.Fields["stock"])
	assert.Equal(t, true, got.Fields["done"])
	assert.Contains(t, got.Fields, "note")
	assert.Nil(t, got.Fields["note"])
}

func TestGet_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Get(context.Background(), "items", 42)
	assert.ErrorIs(t, err, resource.ErrNotFound)
}

func TestReplace_Persists(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "items", resource.Fields{"name": "Widget", "stock": float64(5)})
	require.NoError(t, err)

	_, err = repo.Replace(ctx, "items", created.ID, resource.Fields{"name": "Widget", "stock": float64(3)})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "items", created.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(3), got.Fields["stock"])
}

func TestReplace_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Replace(context.Background(), "items", 42, resource.Fields{"name": "x"})
	assert.ErrorIs(t, err, resource.ErrNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.Delete(context.Background(), "items", 42)
	assert.ErrorIs(t, err, resource.ErrNotFound)
}

func TestReopen_KeepsRecordsAndSequence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stockroom.db")
	ctx := context.Background()

	repo, err := NewResourceRepository(path, slog.Default())
	require.NoError(t, err)

	first, err := repo.Create(ctx, "items", resource.Fields{"name": "Widget"})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, "items", first.ID))
	require.NoError(t, repo.Close())

	reopened, err := NewResourceRepository(path, slog.Default())
	require.NoError(t, err)
	defer reopened.Close()

	// The sequence survives the restart; the deleted id stays retired.
	second, err := reopened.Create(ctx, "items", resource.Fields{"name": "Gadget"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	records, err := reopened.List(ctx, "items")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Gadget", records[0].Fields["name"])
}
