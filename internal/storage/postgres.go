package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // драйвер postgres для database/sql
	"go.uber.org/zap"

	"github.com/InQaaaaGit/subd_redirect.git/internal/models"
)

// selectShorthandsSQL выбирает записи в порядке, заданном столбцом position.
// Таблица ведется вне сервиса, сервис ее только читает.
const selectShorthandsSQL = `SELECT short, long FROM shorthands ORDER BY position`

// PostgresSource реализует ShorthandSource с использованием PostgreSQL
type PostgresSource struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresSource создает новый экземпляр PostgresSource и проверяет соединение
func NewPostgresSource(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		// Закрываем соединение в случае ошибки Ping
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Failed to close DB connection after ping error", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("database connection check error: %w", err)
	}

	return &PostgresSource{
		db:     db,
		logger: logger,
	}, nil
}

// Load выполняет запрос к таблице shorthands и возвращает записи
func (ps *PostgresSource) Load(ctx context.Context) ([]models.Shorthand, error) {
	rows, err := ps.db.QueryContext(ctx, selectShorthandsSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer rows.Close()

	entries := []models.Shorthand{}
	for rows.Next() {
		var short, long sql.NullString
		if err := rows.Scan(&short, &long); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		if !short.Valid || !long.Valid {
			return nil, fmt.Errorf("%w: entry %d has NULL fields", ErrParse, len(entries))
		}
		entries = append(entries, models.Shorthand{Short: short.String, Long: long.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	if err := checkReservedName(entries); err != nil {
		return nil, err
	}

	ps.logger.Debug("Shorthands loaded from database", zap.Int("count", len(entries)))
	return entries, nil
}

// Close закрывает соединение с базой данных
func (ps *PostgresSource) Close() error {
	return ps.db.Close()
}
