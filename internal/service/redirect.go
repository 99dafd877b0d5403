// Package service содержит логику выбора ответа по заголовку Host.
// Сервис не хранит состояния между запросами: источник сокращений читается заново
// при каждом вызове Resolve.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/InQaaaaGit/subd_redirect.git/internal/models"
	"github.com/InQaaaaGit/subd_redirect.git/internal/storage"
)

// OutcomeKind вид результата обработки запроса
type OutcomeKind int

const (
	// OutcomeBadRequest хост без поддомена или без заголовка Host
	OutcomeBadRequest OutcomeKind = iota
	// OutcomeListing запрошен зарезервированный поддомен, отдается весь список
	OutcomeListing
	// OutcomeRedirect найдено сокращение, нужно перенаправление
	OutcomeRedirect
	// OutcomeNotFound сокращение не найдено
	OutcomeNotFound
	// OutcomeInternalError источник сокращений не удалось загрузить
	OutcomeInternalError
)

// String возвращает название вида результата для логов
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeBadRequest:
		return "bad_request"
	case OutcomeListing:
		return "listing"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeInternalError:
		return "internal_error"
	default:
		return "unknown"
	}
}

// Outcome результат обработки запроса.
// Entries заполняется для OutcomeListing, Location для OutcomeRedirect,
// Err для OutcomeBadRequest и OutcomeInternalError.
type Outcome struct {
	Kind     OutcomeKind
	Entries  []models.Shorthand
	Location string
	Err      error
}

// RedirectService выбирает ответ для хоста по данным источника сокращений
type RedirectService struct {
	source storage.ShorthandSource
	logger *zap.Logger
}

// NewRedirectService создает новый экземпляр RedirectService
func NewRedirectService(source storage.ShorthandSource, logger *zap.Logger) *RedirectService {
	return &RedirectService{
		source: source,
		logger: logger,
	}
}

// Resolve разбирает хост, загружает сокращения и выбирает ответ.
// Хост без поддомена отклоняется до обращения к источнику.
func (s *RedirectService) Resolve(ctx context.Context, rawHost string) Outcome {
	host, err := ParseHost(rawHost)
	if err != nil {
		return Outcome{Kind: OutcomeBadRequest, Err: err}
	}

	entries, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Error("Error loading shorthands", zap.String("host", rawHost), zap.Error(err))
		return Outcome{Kind: OutcomeInternalError, Err: err}
	}

	if host.Subdomain == models.ReservedName {
		return Outcome{Kind: OutcomeListing, Entries: entries}
	}

	entry, ok := Lookup(entries, host.Subdomain)
	if !ok {
		s.logger.Info("Shorthand not found", zap.String("subdomain", host.Subdomain))
		return Outcome{Kind: OutcomeNotFound}
	}

	return Outcome{Kind: OutcomeRedirect, Location: entry.Long}
}

// Lookup ищет первую запись с точным совпадением short (с учетом регистра)
func Lookup(entries []models.Shorthand, short string) (models.Shorthand, bool) {
	for _, entry := range entries {
		if entry.Short == short {
			return entry, true
		}
	}
	return models.Shorthand{}, false
}
