// Package handler преобразует результат RedirectService в HTTP ответ.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/InQaaaaGit/subd_redirect.git/internal/middleware"
	"github.com/InQaaaaGit/subd_redirect.git/internal/models"
	"github.com/InQaaaaGit/subd_redirect.git/internal/service"
)

const (
	contentTypePlain = "text/plain; charset=utf-8"
	contentTypeJSON  = "application/json"
	notFoundMessage  = "not found"
)

// RedirectService определяет интерфейс сервиса выбора ответа по хосту
type RedirectService interface {
	Resolve(ctx context.Context, host string) service.Outcome
}

// Handler отдает ответ по заголовку Host запроса
type Handler struct {
	service RedirectService
	logger  *zap.Logger
}

// NewHandler создает новый экземпляр Handler
func NewHandler(svc RedirectService, logger *zap.Logger) *Handler {
	return &Handler{
		service: svc,
		logger:  logger,
	}
}

// HandleHost обрабатывает GET запрос на любой путь: ответ зависит только от заголовка Host
func (h *Handler) HandleHost(w http.ResponseWriter, r *http.Request) {
	outcome := h.service.Resolve(r.Context(), r.Host)

	switch outcome.Kind {
	case service.OutcomeBadRequest:
		http.Error(w, outcome.Err.Error(), http.StatusBadRequest)

	case service.OutcomeListing:
		h.writeListing(w, outcome)

	case service.OutcomeRedirect:
		h.logger.Info("Redirecting", zap.String("host", r.Host), zap.String("location", outcome.Location))
		w.Header().Set("Location", outcome.Location)
		w.Header().Set("Content-Type", contentTypePlain)
		w.WriteHeader(http.StatusFound)
		if _, err := w.Write([]byte("redirecting to: " + outcome.Location)); err != nil {
			h.logger.Error("Error writing response", zap.Error(err))
		}

	case service.OutcomeNotFound:
		http.Error(w, notFoundMessage, http.StatusNotFound)

	default:
		message := "internal server error"
		if outcome.Err != nil {
			message += ": " + outcome.Err.Error()
		}
		http.Error(w, message, http.StatusInternalServerError)
	}
}

// writeListing отдает весь список сокращений в виде JSON массива
func (h *Handler) writeListing(w http.ResponseWriter, outcome service.Outcome) {
	entries := outcome.Entries
	if entries == nil {
		entries = []models.Shorthand{}
	}

	body, err := json.Marshal(entries)
	if err != nil {
		h.logger.Error("Error encoding shorthands", zap.Error(err))
		http.Error(w, "internal server error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("Error writing JSON response", zap.Error(err))
	}
}

// WithLogging добавляет логирование запросов
func (h *Handler) WithLogging(next http.Handler) http.Handler {
	return middleware.LoggerMiddleware(h.logger)(next)
}

// WithGzip добавляет поддержку gzip сжатия
func (h *Handler) WithGzip(next http.Handler) http.Handler {
	return middleware.GzipMiddleware(next)
}
