// files.go — обработчики файлового API:
// POST /files, GET /files/{id}, GET /files.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/gofiman/internal/api/errors"
	"github.com/bigkaa/gofiman/internal/api/middleware"
	"github.com/bigkaa/gofiman/internal/domain/model"
	"github.com/bigkaa/gofiman/internal/service"
)

// createFileRequest — тело запроса POST /files.
type createFileRequest struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	ParentID model.ParentRef `json:"parentId"`
	IsPublic bool            `json:"isPublic"`
	Data     string          `json:"data"`
}

// PostUpload — POST /files. Создаёт запись файла или папки.
// Валидация и порядок проверок — в FileService.Create.
func (h *APIHandler) PostUpload(w http.ResponseWriter, r *http.Request) {
	var req createFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.BadRequest(w, "Invalid JSON")
		return
	}

	parentID := ""
	if req.ParentID.ID != nil {
		parentID = *req.ParentID.ID
	}

	record, err := h.files.Create(r.Context(), service.CreateParams{
		UserID:   middleware.UserIDFromContext(r.Context()),
		Name:     req.Name,
		Type:     req.Type,
		ParentID: parentID,
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			apierrors.BadRequest(w, vErr.Error())
			return
		}
		h.logger.Error("Ошибка создания записи", slog.String("error", err.Error()))
		apierrors.InternalError(w, apierrors.MsgInternalError)
		return
	}

	writeJSON(w, http.StatusCreated, record.View())
}

// GetShow — GET /files/{id}. Возвращает запись в пределах владельца.
// Некорректный UUID и чужая запись одинаково дают 404.
func (h *APIHandler) GetShow(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "id")

	record, err := h.files.GetByID(r.Context(), fileID, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w)
			return
		}
		h.logger.Error("Ошибка получения записи",
			slog.String("file_id", fileID),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, apierrors.MsgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, record.View())
}

// GetIndex — GET /files. Листинг записей владельца по родителю
// со страничной выборкой. Нечисловой или отрицательный page → 0;
// непарсящийся parentId → пустой массив (200), не ошибка.
func (h *APIHandler) GetIndex(w http.ResponseWriter, r *http.Request) {
	parentID := r.URL.Query().Get("parentId")

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 0
	}

	records, err := h.files.List(r.Context(), middleware.UserIDFromContext(r.Context()), parentID, page)
	if err != nil {
		h.logger.Error("Ошибка листинга записей", slog.String("error", err.Error()))
		apierrors.InternalError(w, apierrors.MsgInternalError)
		return
	}

	views := make([]model.FileView, 0, len(records))
	for _, rec := range records {
		views = append(views, rec.View())
	}

	writeJSON(w, http.StatusOK, views)
}
