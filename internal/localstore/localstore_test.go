package localstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockledger/pkg/models"
)

func TestLoadAbsentSnapshot(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "snapshot.json"))

	_, found, err := store.Load()

	require.NoError(t, err)
	assert.False(t, found)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "snapshot.json")
	store := New(path)

	snapshot := models.Snapshot{
		Items: []models.Item{
			{
				ID:               uuid.New(),
				Type:             models.ItemTypeProduct,
				Code:             "PD1",
				Name:             "PUMP",
				RegistrationDate: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
				Transactions: []models.Transaction{
					{
						ID:           uuid.New(),
						Type:         models.MovementInbound,
						Quantity:     1,
						Date:         time.Date(2026, 3, 1, 9, 5, 0, 0, time.UTC),
						SerialNumber: "SN00001",
					},
				},
			},
		},
		UpdatedAt: time.Date(2026, 3, 1, 9, 10, 0, 0, time.UTC),
	}

	require.NoError(t, store.Save(snapshot))

	loaded, found, err := store.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, snapshot, loaded)
}

func TestSaveOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	store := New(filepath.Join(dir, "snapshot.json"))

	first := models.Snapshot{Items: []models.Item{{ID: uuid.New(), Code: "CT1", Name: "WIDGET", Type: models.ItemTypePart}}}
	second := models.Snapshot{Items: []models.Item{{ID: uuid.New(), Code: "CT2", Name: "BRACKET", Type: models.ItemTypePart}}}

	require.NoError(t, store.Save(first))
	require.NoError(t, store.Save(second))

	loaded, found, err := store.Load()
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "CT2", loaded.Items[0].Code)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, _, err := New(path).Load()
	assert.Error(t, err)
}
