// Package list реализует HTTP-обработчик постраничного списка тарифных планов.
package list

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

// Handler управляет HTTP-запросами на список тарифных планов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка тарифов.
type Service interface {
	FindAll(ctx context.Context, filter models.PlanFilter) (*models.Page[*models.Plan], error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить список тарифных планов
// @Description Возвращает страницу тарифов с информацией о пагинации.
// @Tags Plans
// @Produce  json
// @Param limit query int false "Размер страницы"
// @Param skip query int false "Сколько записей пропустить"
// @Success 200 {object} response.Response "Страница тарифов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Записи не найдены"
// @Router /plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.PlanFilter{
		Limit: queryInt(r, "limit"),
		Skip:  queryInt(r, "skip"),
	}

	page, err := h.service.FindAll(r.Context(), filter)
	if err != nil {
		log.Error("failed to list plans", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("plans listed", slog.Int("count", len(page.Edges)))
	render.JSON(w, r, response.StatusOKWithData(page))
}

func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}
