package storage

import (
	"context"

	"github.com/InQaaaaGit/subd_redirect.git/internal/models"
)

// ShorthandSource интерфейс для источника сокращений.
// Источник только читается: сервис никогда не изменяет его содержимое.
type ShorthandSource interface {
	// Load читает источник целиком и возвращает записи в исходном порядке.
	// Ошибка оборачивает ErrRead, ErrParse или ErrReservedName.
	Load(ctx context.Context) ([]models.Shorthand, error)
}
