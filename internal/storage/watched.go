package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/subd_redirect.git/internal/models"
)

// loadResult результат последней загрузки: записи или ошибка
type loadResult struct {
	entries []models.Shorthand
	err     error
}

// WatchedSource кэширует результат FileSource и сбрасывает кэш
// по событиям файловой системы для файла сокращений.
// Ошибка загрузки кэшируется так же, как и записи, и возвращается на каждый запрос,
// пока файл не изменится.
type WatchedSource struct {
	source   *FileSource
	filePath string
	watcher  *fsnotify.Watcher
	logger   *zap.Logger

	mutex  sync.RWMutex
	cached *loadResult

	done chan struct{}
}

// NewWatchedSource создает WatchedSource и запускает наблюдение за каталогом файла.
// Наблюдается каталог, а не сам файл, чтобы переживать замену файла через rename.
func NewWatchedSource(source *FileSource, logger *zap.Logger) (*WatchedSource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating file watcher: %w", err)
	}

	filePath := filepath.Clean(source.Path())
	if err := watcher.Add(filepath.Dir(filePath)); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("Error closing file watcher", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("error watching shorthands directory: %w", err)
	}

	ws := &WatchedSource{
		source:   source,
		filePath: filePath,
		watcher:  watcher,
		logger:   logger,
		done:     make(chan struct{}),
	}
	go ws.watch()

	return ws, nil
}

// Load возвращает закэшированный результат или загружает файл заново
func (ws *WatchedSource) Load(ctx context.Context) ([]models.Shorthand, error) {
	ws.mutex.RLock()
	cached := ws.cached
	ws.mutex.RUnlock()
	if cached != nil {
		return cached.copy()
	}

	ws.mutex.Lock()
	defer ws.mutex.Unlock()

	if ws.cached == nil {
		entries, err := ws.source.Load(ctx)
		// Отмена запроса не говорит ничего о содержимом файла
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		ws.cached = &loadResult{entries: entries, err: err}
	}
	return ws.cached.copy()
}

func (r *loadResult) copy() ([]models.Shorthand, error) {
	if r.err != nil {
		return nil, r.err
	}
	return slices.Clone(r.entries), nil
}

// invalidate сбрасывает кэш, следующий Load перечитает файл
func (ws *WatchedSource) invalidate() {
	ws.mutex.Lock()
	ws.cached = nil
	ws.mutex.Unlock()
}

func (ws *WatchedSource) watch() {
	defer close(ws.done)

	for {
		select {
		case event, ok := <-ws.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != ws.filePath {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				ws.invalidate()
				ws.logger.Info("Shorthands file changed, cache dropped",
					zap.String("path", ws.filePath),
					zap.String("op", event.Op.String()))
			}

		case err, ok := <-ws.watcher.Errors:
			if !ok {
				return
			}
			// Событие могло потеряться, поэтому кэшу больше нельзя доверять
			ws.invalidate()
			ws.logger.Error("File watcher error", zap.Error(err))
		}
	}
}

// Close останавливает наблюдение за файлом
func (ws *WatchedSource) Close() error {
	err := ws.watcher.Close()
	<-ws.done
	return err
}
