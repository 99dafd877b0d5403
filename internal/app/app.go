// Package app содержит основную структуру приложения и логику инициализации.
// Выбирает источник сокращений по конфигурации и собирает HTTP роутер.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/subd_redirect.git/internal/config"
	"github.com/InQaaaaGit/subd_redirect.git/internal/handler"
	"github.com/InQaaaaGit/subd_redirect.git/internal/middleware"
	"github.com/InQaaaaGit/subd_redirect.git/internal/service"
	"github.com/InQaaaaGit/subd_redirect.git/internal/storage"
)

// App представляет основное приложение перенаправления по поддоменам.
// Инкапсулирует конфигурацию, HTTP роутер, логгер и источник сокращений.
type App struct {
	config  *config.Config          // Конфигурация приложения
	router  *chi.Mux                // HTTP роутер для обработки запросов
	logger  *zap.Logger             // Логгер для записи событий приложения
	handler *handler.Handler        // Обработчики HTTP запросов
	source  storage.ShorthandSource // Источник сокращений
	closers []io.Closer             // Ресурсы источника, закрываемые в Close
}

// NewApp создает и инициализирует новый экземпляр приложения.
// Источник сокращений выбирается по конфигурации: PostgreSQL при заданном DSN,
// иначе JSON файл, при WatchShorthands обернутый кэшем с fsnotify.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: logger,
	}

	source, err := a.newSource(ctx)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("error creating shorthand source: %w", err)
	}
	a.source = source

	redirectService := service.NewRedirectService(source, logger)
	a.handler = handler.NewHandler(redirectService, logger)
	a.setupRoutes()

	return a, nil
}

// newSource создает источник сокращений по конфигурации
func (a *App) newSource(ctx context.Context) (storage.ShorthandSource, error) {
	switch a.config.SourceKind() {
	case config.SourcePostgres:
		source, err := storage.NewPostgresSource(ctx, a.config.DatabaseDSN, a.logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, source)
		a.logger.Info("Using PostgreSQL shorthand source")
		return source, nil

	default:
		fileSource := storage.NewFileSource(afero.NewOsFs(), a.config.ShorthandsPath, a.logger)
		if !a.config.WatchShorthands {
			a.logger.Info("Using file shorthand source", zap.String("path", a.config.ShorthandsPath))
			return fileSource, nil
		}

		watched, err := storage.NewWatchedSource(fileSource, a.logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, watched)
		a.logger.Info("Using watched file shorthand source", zap.String("path", a.config.ShorthandsPath))
		return watched, nil
	}
}

// setupRoutes настраивает HTTP маршруты и middleware для приложения.
// Путь запроса не используется: любой GET обрабатывается по заголовку Host.
func (a *App) setupRoutes() {
	// Middleware
	a.router.Use(middleware.WithRequestID)
	a.router.Use(a.handler.WithLogging)
	a.router.Use(chimiddleware.Recoverer)
	a.router.Use(a.handler.WithGzip)

	// Routes
	a.router.Get("/", a.handler.HandleHost)
	a.router.Get("/*", a.handler.HandleHost)
}

// Router возвращает HTTP обработчик приложения
func (a *App) Router() http.Handler {
	return a.router
}

// GetServer создает и возвращает настроенный HTTP сервер.
// Использует текущий роутер приложения как обработчик запросов.
func (a *App) GetServer() *http.Server {
	return &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// Close освобождает ресурсы источника сокращений
func (a *App) Close() {
	for _, closer := range a.closers {
		if err := closer.Close(); err != nil {
			a.logger.Error("Error closing shorthand source", zap.Error(err))
		}
	}
	a.closers = nil
}
