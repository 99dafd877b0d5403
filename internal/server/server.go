// Package server предоставляет общую функциональность для запуска HTTP сервера.
// Пакет инкапсулирует логику инициализации конфигурации, логгера, привязки адреса
// и корректной остановки сервера.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/InQaaaaGit/subd_redirect.git/internal/config"
)

// shutdownTimeout время на завершение активных запросов при остановке
const shutdownTimeout = 10 * time.Second

// ErrBind возвращается, когда не удалось занять адрес для прослушивания
var ErrBind = errors.New("bind listen address")

// HTTPServer представляет HTTP сервер с общей логикой запуска
type HTTPServer struct {
	server *http.Server
	logger *zap.Logger
}

// NewHTTPServer создает новый HTTP сервер
func NewHTTPServer(server *http.Server, logger *zap.Logger) *HTTPServer {
	return &HTTPServer{
		server: server,
		logger: logger,
	}
}

// Listen занимает адрес сервера. Ошибка оборачивает ErrBind.
func (s *HTTPServer) Listen() (net.Listener, error) {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrBind, s.server.Addr, err)
	}
	return listener, nil
}

// Start занимает адрес и обслуживает запросы до отмены контекста.
// Ошибка привязки возвращается до обработки первого запроса.
func (s *HTTPServer) Start(ctx context.Context) error {
	listener, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

// Serve обслуживает запросы на listener до отмены контекста,
// после чего дожидается завершения активных запросов.
func (s *HTTPServer) Serve(ctx context.Context, listener net.Listener) error {
	s.logger.Info("Starting HTTP server", zap.String("address", listener.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// InitLogger инициализирует production логгер с defer функцией для синхронизации
func InitLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			log.Printf("Error syncing logger: %v", err)
		}
	}

	return logger, cleanup
}

// InitConfig инициализирует конфигурацию приложения
func InitConfig(logger *zap.Logger) *config.Config {
	cfg, err := config.NewConfig()
	if err != nil {
		if logger != nil {
			logger.Fatal("Error loading config", zap.Error(err))
		} else {
			log.Fatalf("Error loading config: %v", err)
		}
	}
	return cfg
}
