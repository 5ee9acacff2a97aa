// Package submit реализует HTTP-обработчик приёма заявки клиента.
//
// Заявка принимается только при наличии у подрядчика активной подписки
// с неисчерпанной квотой; отказ по квоте возвращает значения счётчиков.
package submit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/d-directory/d-directory/internal/http/response"
	"github.com/d-directory/d-directory/internal/lib/sl"
	"github.com/d-directory/d-directory/internal/models"
)

// Service описывает интерфейс приёма заявки.
type Service interface {
	Submit(ctx context.Context, req models.DummyLead) (*models.Lead, error)
}

// Handler управляет HTTP-запросами на приём заявок.
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
// @Summary Отправить заявку подрядчику
// @Description Принимает заявку клиента для подрядчика. При активной подписке заявка проходит через шлюз квоты; без подписки принимается без тарификации.
// @Tags Leads
// @Accept  json
// @Produce  json
// @Param request body models.DummyLead true "Данные заявки"
// @Success 200 {object} map[string]any "Принятая заявка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Подрядчик не найден"
// @Failure 409 {object} response.QuotaExceededResponse "Квота заявок исчерпана"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /leads [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lead.submit"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyLead
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

	lead, err := h.service.Submit(r.Context(), req)
	if errors.Is(err, models.ErrContractorNotFound) {
		log.Warn("contractor not found", slog.Int("contractor_id", req.ContractorID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("contractor not found"))
		return
	}
	var quotaErr *models.QuotaExceededError
	if errors.As(err, &quotaErr) {
		log.Warn("lead quota exceeded",
			slog.Int("contractor_id", req.ContractorID),
			slog.Int("leads_used", quotaErr.LeadsUsed),
			slog.Int("monthly_lead_quota", quotaErr.MonthlyLeadQuota),
		)
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.QuotaExceeded(quotaErr))
		return
	}
	if err != nil {
		log.Error("failed to submit lead", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not submit lead"))
		return
	}

	log.Info("success to submit lead", slog.Int("id", lead.ID), slog.Int("contractor_id", lead.ContractorID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"lead_id": lead.ID,
		"status":  lead.Status,
	}))
}
