// Package create реализует HTTP-обработчик оформления подписки подрядчика.
//
// Оформление новой подписки деактивирует текущую активную подписку
// подрядчика и обнуляет счётчик принятых заявок.
package create

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

// Service описывает интерфейс оформления подписки подрядчика.
type Service interface {
	Replace(ctx context.Context, contractorID int, req models.DummySubscription) (int, error)
}

// Handler управляет HTTP-запросами на оформление подписки.
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
// @Summary Оформить подписку подрядчика
// @Description Оформляет подписку подрядчика на тарифный план. Прежняя активная подписка деактивируется, счётчик заявок обнуляется. Доступно только администратору.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Param id path int true "ID подрядчика"
// @Param request body models.DummySubscription true "Данные подписки"
// @Success 200 {object} map[string]any "ID оформленной подписки"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ID"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещён"
// @Failure 404 {object} response.ErrorResponse "Подрядчик или план не найдены"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или некорректный платёжный цикл"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /contractors/{id}/subscription [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	contractorID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid contractor id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid contractor id"))
		return
	}

	var req models.DummySubscription
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

	id, err := h.service.Replace(r.Context(), contractorID, req)
	if errors.Is(err, models.ErrContractorNotFound) {
		log.Warn("contractor not found", slog.Int("contractor_id", contractorID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("contractor not found"))
		return
	}
	if errors.Is(err, models.ErrPlanNotFound) {
		log.Warn("plan not found", slog.Int("plan_id", req.PlanID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("plan not found"))
		return
	}
	if errors.Is(err, models.ErrInvalidBillingCycle) {
		log.Warn("invalid billing cycle", slog.Int("contractor_id", contractorID))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("billing cycle dates must be RFC 3339 with end after start"))
		return
	}
	if err != nil {
		log.Error("failed to create subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create subscription"))
		return
	}

	log.Info("success to create subscription", slog.Int("id", id), slog.Int("contractor_id", contractorID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscription_id": id,
	}))
}
