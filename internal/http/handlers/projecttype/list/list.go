// Package list реализует HTTP-обработчик получения справочника типов проектов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/d-directory/d-directory/internal/http/response"
	"github.com/d-directory/d-directory/internal/lib/sl"
	"github.com/d-directory/d-directory/internal/models"
)

// Service описывает интерфейс получения справочника типов проектов.
type Service interface {
	List(ctx context.Context) ([]*models.ProjectType, error)
}

// Handler управляет HTTP-запросами на получение типов проектов.
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
// @Summary Справочник типов проектов
// @Description Возвращает список типов проектов, по которым классифицируются заявки.
// @Tags ProjectTypes
// @Produce  json
// @Success 200 {object} map[string]any "Список типов проектов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /project-types [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.projecttype.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	types, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list project types", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list project types"))
		return
	}

	log.Info("success to list project types", slog.Int("count", len(types)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"project_types": types,
		"count":         len(types),
	}))
}
