// Package create реализует HTTP-обработчик для создания карточек подрядчиков.
//
// Handler принимает JSON-запрос с данными подрядчика, валидирует их,
// вызывает бизнес-логику создания карточки через сервис и возвращает
// ID созданной записи в JSON-формате.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/d-directory/d-directory/internal/http/response"
	"github.com/d-directory/d-directory/internal/lib/sl"
	"github.com/d-directory/d-directory/internal/models"
)

// Service описывает интерфейс бизнес-логики создания карточки подрядчика.
type Service interface {
	Create(ctx context.Context, req models.DummyContractor) (int, error)
}

// Handler управляет HTTP-запросами на создание карточек подрядчиков.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать карточку подрядчика
// @Description Создает новую карточку подрядчика. Доступно только администратору. Возвращает ID созданной записи.
// @Tags Contractors
// @Accept  json
// @Produce  json
// @Param request body models.DummyContractor true "Данные подрядчика"
// @Success 200 {object} map[string]any "Успешное создание карточки"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещён"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании"
// @Router /contractors [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contractor.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyContractor
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create contractor", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create contractor"))
		return
	}

	log.Info("success to create contractor", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"last_added_id": id,
	}))
}
