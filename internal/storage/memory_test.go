package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InQaaaaGit/subd_redirect.git/internal/models"
)

func TestMemorySource_Load(t *testing.T) {
	entries := []models.Shorthand{
		{Short: "gh", Long: "https://github.com"},
		{Short: "go", Long: "https://go.dev"},
	}
	source := NewMemorySource(entries)

	loaded, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)

	// Изменение результата не влияет на источник
	loaded[0].Long = "https://changed.example"
	again, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://github.com", again[0].Long)
}

func TestMemorySource_LoadEmpty(t *testing.T) {
	loaded, err := NewMemorySource(nil).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestMemorySource_LoadReservedName(t *testing.T) {
	source := NewMemorySource([]models.Shorthand{{Short: "list", Long: "https://x.com"}})

	_, err := source.Load(context.Background())
	assert.ErrorIs(t, err, ErrReservedName)
}

func TestMemorySource_LoadEmptyValues(t *testing.T) {
	entries := []models.Shorthand{{Short: "gh", Long: ""}, {Short: "", Long: "/docs"}}

	loaded, err := NewMemorySource(entries).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)
}
