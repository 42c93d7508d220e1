// users.go — обработчики регистрации и аутентификации:
// POST /users, GET /connect, GET /disconnect, GET /users/me.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/gofiman/internal/api/errors"
	"github.com/bigkaa/gofiman/internal/api/middleware"
	"github.com/bigkaa/gofiman/internal/service"
)

// createUserRequest — тело запроса POST /users.
type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse — тело ответа GET /connect.
type tokenResponse struct {
	Token string `json:"token"`
}

// PostUsers — POST /users. Регистрирует пользователя.
func (h *APIHandler) PostUsers(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.BadRequest(w, "Invalid JSON")
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			apierrors.BadRequest(w, vErr.Error())
			return
		}
		h.logger.Error("Ошибка регистрации пользователя", slog.String("error", err.Error()))
		apierrors.InternalError(w, apierrors.MsgInternalError)
		return
	}

	writeJSON(w, http.StatusCreated, user.View())
}

// GetConnect — GET /connect. Вход по Basic auth, выдаёт токен.
// Неверный email и неверный пароль одинаково дают 401.
func (h *APIHandler) GetConnect(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	token, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			apierrors.Unauthorized(w)
			return
		}
		h.logger.Error("Ошибка входа", slog.String("error", err.Error()))
		apierrors.InternalError(w, apierrors.MsgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// GetDisconnect — GET /disconnect. Отзывает токен текущего запроса.
func (h *APIHandler) GetDisconnect(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromContext(r.Context())

	if err := h.auth.Logout(r.Context(), token); err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			apierrors.Unauthorized(w)
			return
		}
		h.logger.Error("Ошибка выхода", slog.String("error", err.Error()))
		apierrors.InternalError(w, apierrors.MsgInternalError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetMe — GET /users/me. Возвращает текущего пользователя.
func (h *APIHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Me(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			apierrors.Unauthorized(w)
			return
		}
		h.logger.Error("Ошибка получения пользователя", slog.String("error", err.Error()))
		apierrors.InternalError(w, apierrors.MsgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, user.View())
}
