// Package remove реализует HTTP-обработчик для удаления карточек подрядчиков.
package remove

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
)

// Service описывает интерфейс бизнес-логики удаления карточки подрядчика.
type Service interface {
	Remove(ctx context.Context, id int) (int, error)
}

// Handler управляет HTTP-запросами на удаление карточек подрядчиков.
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
// @Summary Удалить карточку подрядчика
// @Description Удаляет карточку подрядчика по ID. Доступно только администратору.
// @Tags Contractors
// @Produce  json
// @Param id path int true "ID подрядчика"
// @Success 200 {object} map[string]any "Количество удалённых записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещён"
// @Failure 404 {object} response.ErrorResponse "Подрядчик не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при удалении"
// @Router /contractors/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contractor.remove"

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

	count, err := h.service.Remove(r.Context(), id)
	if err != nil {
		log.Error("failed to remove contractor", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove contractor"))
		return
	}
	if count == 0 {
		log.Error("contractor not found", slog.Int("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("contractor not found"))
		return
	}

	log.Info("success to remove contractor", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"removed_count": count,
	}))
}
