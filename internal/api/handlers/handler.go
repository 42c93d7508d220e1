// handler.go — основной обработчик API Files Manager.
// Объединяет health-, app-, auth- и файловые обработчики,
// делегируя бизнес-логику сервисному слою.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bigkaa/gofiman/internal/service"
)

// APIHandler — основной обработчик API Files Manager.
type APIHandler struct {
	health *HealthHandler
	app    *service.AppService
	files  *service.FileService
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	health *HealthHandler,
	app *service.AppService,
	files *service.FileService,
	auth *service.AuthService,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		health: health,
		app:    app,
		files:  files,
		auth:   auth,
		logger: logger.With(slog.String("component", "api_handler")),
	}
}

// --- Health endpoints (делегируются в HealthHandler) ---

// HealthLive — liveness probe.
func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

// HealthReady — readiness probe.
func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// GetMetrics — Prometheus метрики.
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
