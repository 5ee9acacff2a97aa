// Package list реализует HTTP-обработчик получения списка заявок.
package list

import (
	"context"
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

// Service описывает интерфейс получения списка заявок.
type Service interface {
	List(ctx context.Context, filter models.LeadFilter) ([]*models.Lead, error)
}

// Handler управляет HTTP-запросами на получение заявок.
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
// @Summary Список заявок
// @Description Возвращает заявки по убыванию даты создания. Необязательный параметр contractor_id ограничивает выборку одним подрядчиком. Доступно только администратору.
// @Tags Leads
// @Produce  json
// @Param contractor_id query int false "Фильтр по подрядчику"
// @Success 200 {object} map[string]any "Список заявок"
// @Failure 400 {object} response.ErrorResponse "Некорректный contractor_id"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещён"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /leads [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lead.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// Обработчик обслуживает и /leads?contractor_id=N, и /contractors/{id}/leads.
	var filter models.LeadFilter
	if raw := chi.URLParam(r, "id"); raw != "" {
		contractorID, err := strconv.Atoi(raw)
		if err != nil {
			log.Error("invalid contractor id", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid contractor id"))
			return
		}
		filter.ContractorID = &contractorID
	} else if raw := r.URL.Query().Get("contractor_id"); raw != "" {
		contractorID, err := strconv.Atoi(raw)
		if err != nil {
			log.Error("invalid contractor_id", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid contractor_id"))
			return
		}
		filter.ContractorID = &contractorID
	}

	leads, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list leads", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list leads"))
		return
	}

	log.Info("success to list leads", slog.Int("count", len(leads)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"leads": leads,
		"count": len(leads),
	}))
}
