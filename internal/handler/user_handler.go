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

	"github.com/google/uuid"
)

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// RegisterUser godoc
// @Summary Создание учётной записи
// @Description Регистрирует учётную запись, от имени которой потом выдаются сессии
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterUserRequest true "Тело запроса"
// @Success 201 {object} requestresponse.RegisterUserResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON, роль или занятый идентификатор"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users [post]
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.RegisterUserRequest
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

	role, err := model.ParseRole(req.Role)
	if err != nil {
		util.HandleError(w, "неизвестная роль", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.Register(ctx, req.Identifier, req.Credential, role)
	if err != nil {
		log.Println(err)
		if errors.Is(err, model.ErrConflict) {
			util.HandleError(w, "идентификатор уже существует", http.StatusBadRequest)
		} else {
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	resp := requestresponse.RegisterUserResponse{}
	resp.Response.UUID = user.UUID
	resp.Response.Identifier = user.Identifier
	resp.Response.Role = string(user.Role)
	resp.Response.CreatedAt = user.CreatedAt

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}
