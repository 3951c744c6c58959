// Package count реализует HTTP-обработчик подсчёта тарифных планов.
package count

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-manager/internal/http/response"
	"github.com/magabrotheeeer/subscription-manager/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-manager/internal/models"
)

// Handler управляет HTTP-запросами на подсчёт тарифных планов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подсчёта тарифов.
type Service interface {
	Count(ctx context.Context, filter models.PlanFilter) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Подсчитать тарифные планы
// @Description Возвращает количество тарифов, удовлетворяющих фильтру, без загрузки записей.
// @Tags Plans
// @Produce  json
// @Param id query int false "ID тарифа"
// @Success 200 {object} response.Response "Количество записей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /plans/count [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.count"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var filter models.PlanFilter
	if raw := r.URL.Query().Get("id"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			filter.ID = &id
		}
	}

	total, err := h.service.Count(r.Context(), filter)
	if err != nil {
		log.Error("failed to count plans", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("plans counted", slog.Int("total", total))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"total": total,
	}))
}
