// Package updatestatus реализует HTTP-обработчик смены статуса заявки.
package updatestatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/d-directory/d-directory/internal/http/response"
	"github.com/d-directory/d-directory/internal/lib/sl"
	"github.com/d-directory/d-directory/internal/models"
)

// Service описывает интерфейс смены статуса заявки.
type Service interface {
	UpdateStatus(ctx context.Context, id int, status string) (*models.Lead, error)
}

// Handler управляет HTTP-запросами на смену статуса заявки.
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
// @Summary Сменить статус заявки
// @Description Переводит заявку в новый статус воронки. Переходы между статусами не ограничены. Доступно только администратору.
// @Tags Leads
// @Accept  json
// @Produce  json
// @Param id path int true "ID заявки"
// @Param request body models.DummyLeadStatus true "Новый статус"
// @Success 200 {object} map[string]any "Обновлённая заявка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ID"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещён"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Failure 422 {object} response.ErrorResponse "Недопустимый статус"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /leads/{id}/status [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lead.updatestatus"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid lead id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid lead id"))
		return
	}

	var req models.DummyLeadStatus
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

	lead, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if errors.Is(err, models.ErrLeadNotFound) {
		log.Warn("lead not found", slog.Int("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("lead not found"))
		return
	}
	if errors.Is(err, models.ErrInvalidLeadStatus) {
		log.Warn("invalid lead status", slog.String("status", req.Status))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid lead status"))
		return
	}
	if err != nil {
		log.Error("failed to update lead status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update lead status"))
		return
	}

	log.Info("success to update lead status", slog.Int("id", lead.ID), slog.String("status", lead.Status))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"lead_id": lead.ID,
		"status":  lead.Status,
	}))
}
