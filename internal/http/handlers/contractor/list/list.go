// Package list реализует HTTP-обработчик для получения каталога подрядчиков.
//
// Handler читает фильтры из query-параметров, вызывает бизнес-логику каталога
// и возвращает карточки подрядчиков в JSON-формате.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/d-directory/d-directory/internal/http/response"
	"github.com/d-directory/d-directory/internal/lib/sl"
	"github.com/d-directory/d-directory/internal/models"
)

// Service описывает интерфейс бизнес-логики каталога подрядчиков.
type Service interface {
	List(ctx context.Context, filter models.ContractorFilter) ([]*models.Contractor, error)
}

// Handler обрабатывает запросы на получение каталога подрядчиков.
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
// @Summary Каталог подрядчиков
// @Description Возвращает карточки подрядчиков. Поддерживает фильтры по категории, локации, радиусу обслуживания и текстовый поиск.
// @Tags Contractors
// @Produce  json
// @Param category query string false "Категория работ"
// @Param location query string false "Подстрока локации"
// @Param radius query int false "Минимальный радиус обслуживания, миль"
// @Param search query string false "Поиск по названию, описанию и категории"
// @Success 200 {object} map[string]any "Список подрядчиков"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contractors [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contractor.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.ContractorFilter{
		Category: r.URL.Query().Get("category"),
		Location: r.URL.Query().Get("location"),
		Search:   r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("radius"); raw != "" {
		radius, err := strconv.Atoi(raw)
		if err != nil {
			log.Error("failed to decode radius from query", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid radius"))
			return
		}
		filter.Radius = radius
	}

	contractors, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list contractors", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list contractors"))
		return
	}

	log.Info("success to list contractors", slog.Int("count", len(contractors)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contractors": contractors,
		"count":       len(contractors),
	}))
}
