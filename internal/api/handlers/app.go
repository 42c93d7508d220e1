// app.go — обработчики GET /status и GET /stats.
// Оба endpoint'а публичные: статус хранилищ и счётчики коллекций.
package handlers

import (
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/gofiman/internal/api/errors"
)

// GetStatus — GET /status. Возвращает живость Redis и PostgreSQL.
// Всегда 200: недоступное хранилище отражается значением false.
func (h *APIHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.app.Status(r.Context()))
}

// GetStats — GET /stats. Возвращает количество пользователей и файлов.
func (h *APIHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.app.Stats(r.Context())
	if err != nil {
		h.logger.Error("Ошибка получения статистики", slog.String("error", err.Error()))
		apierrors.InternalError(w, apierrors.MsgStatsError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
