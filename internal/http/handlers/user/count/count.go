// Package count реализует HTTP-обработчик подсчёта пользователей.
package count

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-manager/internal/http/response"
	"github.com/magabrotheeeer/subscription-manager/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-manager/internal/models"
)

// Handler управляет HTTP-запросами на подсчёт пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подсчёта пользователей.
type Service interface {
	Count(ctx context.Context, filter models.UserFilter) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Подсчитать пользователей
// @Description Возвращает количество пользователей, удовлетворяющих фильтру, без загрузки записей.
// @Tags Users
// @Produce  json
// @Param uid query string false "UID пользователя"
// @Success 200 {object} response.Response "Количество записей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /users/count [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.count"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.UserFilter{UID: r.URL.Query().Get("uid")}

	total, err := h.service.Count(r.Context(), filter)
	if err != nil {
		log.Error("failed to count users", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("users counted", slog.Int("total", total))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"total": total,
	}))
}
