package storage

import (
	"context"
	"fmt"
	"slices"

	"github.com/InQaaaaGit/subd_redirect.git/internal/models"
)

// MemorySource реализует ShorthandSource над фиксированным набором записей.
// При каждом Load записи проверяются на зарезервированное имя, как содержимое файла.
type MemorySource struct {
	entries []models.Shorthand
}

// NewMemorySource создает новый экземпляр MemorySource
func NewMemorySource(entries []models.Shorthand) *MemorySource {
	return &MemorySource{entries: slices.Clone(entries)}
}

// Load возвращает копию записей
func (ms *MemorySource) Load(ctx context.Context) ([]models.Shorthand, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	entries := slices.Clone(ms.entries)
	if entries == nil {
		entries = []models.Shorthand{}
	}
	if err := checkReservedName(entries); err != nil {
		return nil, err
	}
	return entries, nil
}
