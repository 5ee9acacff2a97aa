// Package read реализует HTTP-обработчик для получения карточки подрядчика по ID.
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

// Service описывает интерфейс бизнес-логики чтения карточки подрядчика.
type Service interface {
	Read(ctx context.Context, id int) (*models.Contractor, error)
}

// Handler обрабатывает запросы на получение карточки подрядчика по ID.
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
// @Summary Карточка подрядчика
// @Description Возвращает карточку подрядчика по её идентификатору.
// @Tags Contractors
// @Produce  json
// @Param id path int true "ID подрядчика"
// @Success 200 {object} map[string]any "Карточка подрядчика"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Подрядчик не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contractors/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contractor.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	contractor, err := h.service.Read(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrContractorNotFound) {
			log.Error("contractor not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("contractor not found"))
			return
		}
		log.Error("failed to read contractor", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read contractor"))
		return
	}

	log.Info("success to read contractor", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contractor": contractor,
	}))
}
