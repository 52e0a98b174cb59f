package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"memorial-records-server/internal/model"
	"memorial-records-server/internal/model/requestresponse"
	"memorial-records-server/internal/ports"
	"memorial-records-server/internal/util"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
}

func NewAuthenticationHandler(authenticationService ports.AuthenticationService) *AuthenticationHandler {
	return &AuthenticationHandler{authenticationService}
}

// Login godoc
// @Summary Выдача пары токенов
// @Description Проверяет пару идентификатор/секрет и выдаёт новую пару access/refresh токенов.
// @Description Сырые значения секретов возвращаются только здесь и при refresh
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.AuthenticationResponse "Выданная пара токенов"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или занятый идентификатор"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный секрет"
// @Failure 404 {object} requestresponse.ErrorResponse "Учётная запись не найдена"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}

	if req.Identifier == "" || req.Credential == "" {
		util.HandleError(w, "identifier и credential обязательны", http.StatusBadRequest)
		return
	}
	if _, err := uuid.Parse(req.Identifier); err != nil {
		util.HandleError(w, "identifier должен быть в формате UUID", http.StatusBadRequest)
		return
	}

	authentication, err := h.AuthenticationService.Login(ctx, req.Identifier, req.Credential)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, model.ErrAccessDenied):
			util.HandleError(w, "неверный идентификатор или секрет", http.StatusUnauthorized)
		case errors.Is(err, model.ErrNotFound):
			util.HandleError(w, "учётная запись не найдена", http.StatusNotFound)
		case errors.Is(err, model.ErrConflict):
			util.HandleError(w, "идентификатор уже существует", http.StatusBadRequest)
		default:
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.NewAuthenticationResponse(authentication))
}

// GetAuthentication godoc
// @Summary Получение сессии по идентификатору
// @Description Возвращает агрегат сессии без сырых значений секретов
// @Tags Authentication
// @Produce json
// @Param identifier path string true "Идентификатор сессии"
// @Success 200 {object} requestresponse.AuthenticationResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Сессия не найдена"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/{identifier} [get]
func (h *AuthenticationHandler) GetAuthentication(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	identifier := chi.URLParam(r, "identifier")

	authentication, err := h.AuthenticationService.Find(ctx, identifier)
	if err != nil {
		log.Println(err)
		if errors.Is(err, model.ErrNotFound) {
			util.HandleError(w, "сессия не найдена", http.StatusNotFound)
		} else {
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.NewAuthenticationResponse(authentication))
}

// Introspect godoc
// @Summary Проверка живости токена
// @Description Возвращает active=true, только если токен существует и не просрочен.
// @Description Для невалидного или просроченного токена это не ошибка, а active=false
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.IntrospectRequest true "Тело запроса"
// @Success 200 {object} requestresponse.IntrospectResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Нераспознанный тип токена"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/introspect [post]
func (h *AuthenticationHandler) Introspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.IntrospectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}

	active, err := h.AuthenticationService.Introspect(ctx, req.Token, req.Type)
	if err != nil {
		log.Println(err)
		if errors.Is(err, model.ErrInvalidArgument) {
			util.HandleError(w, "нераспознанный тип токена", http.StatusBadRequest)
		} else {
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.IntrospectResponse{Active: active})
}

// Refresh godoc
// @Summary Обмен refresh-секрета на новую пару
// @Description Ротирует пару токенов. Прежний refresh-секрет одноразовый:
// @Description повторный или конкурирующий обмен отклоняется
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RefreshRequest true "Тело запроса"
// @Success 200 {object} requestresponse.AuthenticationResponse "Новая пара токенов"
// @Failure 400 {object} requestresponse.ErrorResponse "Невалидный токен или нераспознанный тип"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/refresh [post]
func (h *AuthenticationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}

	authentication, err := h.AuthenticationService.Refresh(ctx, req.Token, req.Type)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, model.ErrInvalidToken):
			util.HandleError(w, "невалидный токен", http.StatusBadRequest)
		case errors.Is(err, model.ErrInvalidArgument):
			util.HandleError(w, "нераспознанный тип токена", http.StatusBadRequest)
		default:
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.NewAuthenticationResponse(authentication))
}

// Revoke godoc
// @Summary Отзыв одного токена
// @Description Очищает слот токена (access или refresh), второй слот не затрагивается
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RevokeRequest true "Тело запроса"
// @Success 204 "Токен отозван"
// @Failure 400 {object} requestresponse.ErrorResponse "Невалидный токен или нераспознанный тип"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/revoke [post]
func (h *AuthenticationHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req requestresponse.RevokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}

	if err := h.AuthenticationService.Revoke(ctx, req.Token, req.Type); err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, model.ErrInvalidToken):
			util.HandleError(w, "невалидный токен", http.StatusBadRequest)
		case errors.Is(err, model.ErrInvalidArgument):
			util.HandleError(w, "нераспознанный тип токена", http.StatusBadRequest)
		default:
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Logout godoc
// @Summary Завершение сессии
// @Description Полностью удаляет сессию вместе с отпечатками токенов
// @Tags Authentication
// @Produce json
// @Param identifier path string true "Идентификатор сессии"
// @Success 204 "Сессия удалена"
// @Failure 404 {object} requestresponse.ErrorResponse "Сессия не найдена"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/{identifier} [delete]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identifier := chi.URLParam(r, "identifier")

	if err := h.AuthenticationService.Logout(ctx, identifier); err != nil {
		log.Println(err)
		if errors.Is(err, model.ErrNotFound) {
			util.HandleError(w, "сессия не найдена", http.StatusNotFound)
		} else {
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
