// Package read реализует HTTP-обработчик получения активной подписки подрядчика
// вместе с её тарифным планом.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/d-directory/d-directory/internal/http/response"
	"github.com/d-directory/d-directory/internal/lib/sl"
	"github.com/d-directory/d-directory/internal/models"
)

// Service описывает интерфейс получения активной подписки подрядчика.
type Service interface {
	Read(ctx context.Context, contractorID int) (*models.SubscriptionWithPlan, error)
}

// Handler управляет HTTP-запросами на чтение подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Активная подписка подрядчика
// @Description Возвращает активную подписку подрядчика вместе с тарифным планом. Доступно только администратору.
// @Tags Subscriptions
// @Produce  json
// @Param id path int true "ID подрядчика"
// @Success 200 {object} map[string]any "Подписка и план"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещён"
// @Failure 404 {object} response.ErrorResponse "Подрядчик или подписка не найдены"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /contractors/{id}/subscription [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.read"

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

	sub, err := h.service.Read(r.Context(), contractorID)
	if errors.Is(err, models.ErrContractorNotFound) {
		log.Warn("contractor not found", slog.Int("contractor_id", contractorID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("contractor not found"))
		return
	}
	if errors.Is(err, models.ErrSubscriptionNotFound) {
		log.Warn("active subscription not found", slog.Int("contractor_id", contractorID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("active subscription not found"))
		return
	}
	if err != nil {
		log.Error("failed to read subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read subscription"))
		return
	}

	log.Info("success to read subscription", slog.Int("contractor_id", contractorID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscription": sub.Subscription,
		"plan":         sub.Plan,
	}))
}
