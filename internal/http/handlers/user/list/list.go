// Package list реализует HTTP-обработчик постраничного списка пользователей.
//
// Параметры limit и skip читаются из строки запроса; страница возвращается
// в конверте с edges и page_info.
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

// Handler управляет HTTP-запросами на список пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка пользователей.
type Service interface {
	FindAll(ctx context.Context, filter models.UserFilter) (*models.Page[*models.User], error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить список пользователей
// @Description Возвращает страницу пользователей с информацией о пагинации.
// @Tags Users
// @Produce  json
// @Param limit query int false "Размер страницы"
// @Param skip query int false "Сколько записей пропустить"
// @Success 200 {object} response.Response "Страница пользователей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Записи не найдены"
// @Router /users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.UserFilter{
		Limit: queryInt(r, "limit"),
		Skip:  queryInt(r, "skip"),
	}

	page, err := h.service.FindAll(r.Context(), filter)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("users listed", slog.Int("count", len(page.Edges)))
	render.JSON(w, r, response.StatusOKWithData(page))
}

// queryInt читает целочисленный параметр строки запроса.
// Отсутствующее или нечисловое значение трактуется как не заданное.
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
