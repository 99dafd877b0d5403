package storage

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/subd_redirect.git/internal/models"
)

// FileSource реализует ShorthandSource поверх JSON файла.
// Файл перечитывается при каждом вызове Load, состояние между вызовами не хранится.
type FileSource struct {
	fs       afero.Fs
	filePath string
	logger   *zap.Logger
}

// NewFileSource создает новый экземпляр FileSource
func NewFileSource(fs afero.Fs, filePath string, logger *zap.Logger) *FileSource {
	return &FileSource{
		fs:       fs,
		filePath: filePath,
		logger:   logger,
	}
}

// Path возвращает путь к файлу сокращений
func (fs *FileSource) Path() string {
	return fs.filePath
}

// Load читает файл и возвращает записи в порядке их следования в файле
func (fs *FileSource) Load(ctx context.Context) ([]models.Shorthand, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	data, err := afero.ReadFile(fs.fs, fs.filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	entries, err := decodeShorthands(data)
	if err != nil {
		return nil, err
	}

	fs.logger.Debug("Shorthands loaded from file",
		zap.String("path", fs.filePath),
		zap.Int("count", len(entries)))
	return entries, nil
}
