// Package scrape реализует HTTP-обработчик импорта карточек подрядчиков
// из внешнего источника.
package scrape

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/d-directory/d-directory/internal/http/response"
	"github.com/d-directory/d-directory/internal/lib/sl"
)

// Service описывает интерфейс импорта подрядчиков из внешнего источника.
type Service interface {
	Import(ctx context.Context) (int, error)
}

// Handler управляет HTTP-запросами на импорт подрядчиков.
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
// @Summary Импорт подрядчиков из внешнего источника
// @Description Запускает сбор карточек подрядчиков с внешнего сайта и сохраняет новые в каталог. Доступно только администратору.
// @Tags Contractors
// @Produce  json
// @Success 200 {object} map[string]any "Количество импортированных карточек"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещён"
// @Failure 500 {object} response.ErrorResponse "Ошибка импорта"
// @Router /contractors/scrape [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contractor.scrape"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	added, err := h.service.Import(r.Context())
	if err != nil {
		log.Error("failed to import contractors", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not import contractors"))
		return
	}

	log.Info("success to import contractors", slog.Int("added", added))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"imported_count": added,
	}))
}
