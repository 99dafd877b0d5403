package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/InQaaaaGit/subd_redirect.git/internal/app"
	"github.com/InQaaaaGit/subd_redirect.git/internal/buildinfo"
	"github.com/InQaaaaGit/subd_redirect.git/internal/config"
	"github.com/InQaaaaGit/subd_redirect.git/internal/server"
)

// Заполняются при сборке: go build -ldflags "-X main.buildVersion=v1.0.0 ..."
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	// Инициализация логгера
	logger, cleanup := server.InitLogger()
	defer cleanup()

	logger.Info("Subdomain redirector", buildinfo.NewInfo(buildVersion, buildDate, buildCommit).Fields()...)

	// Инициализация конфигурации
	cfg := server.InitConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// run собирает приложение и обслуживает запросы до отмены контекста
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	application, err := app.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	return server.NewHTTPServer(application.GetServer(), logger).Start(ctx)
}
