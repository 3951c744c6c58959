// Package remove реализует HTTP-обработчик удаления тарифного плана по id.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-manager/internal/http/response"
	"github.com/magabrotheeeer/subscription-manager/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-manager/internal/models"
)

// Handler управляет HTTP-запросами на удаление тарифного плана.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления тарифа.
type Service interface {
	Delete(ctx context.Context, filter models.PlanFilter) (*models.MutationResult[*models.Plan], error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить тарифный план
// @Description Удаляет тариф по id. Возвращает количество удалённых записей и сами записи.
// @Tags Plans
// @Produce  json
// @Param id path int true "ID тарифа"
// @Success 200 {object} response.Response "Результат удаления"
// @Failure 400 {object} response.ErrorResponse "Некорректный id"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Тариф не найден"
// @Router /plans/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	res, err := h.service.Delete(r.Context(), models.PlanFilter{ID: &id})
	if err != nil {
		log.Error("failed to delete plan", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("plan deleted", slog.Int("id", id), slog.Int("modified", res.Modified))
	render.JSON(w, r, response.StatusOKWithData(res))
}
