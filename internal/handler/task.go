package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/checklist/internal/model"
	"github.com/BuzzLyutic/checklist/internal/service"
	"github.com/BuzzLyutic/checklist/pkg/respond"
)

type createRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Memo     string `json:"memo"`
}

type editRequest struct {
	Title string  `json:"title"`
	Memo  *string `json:"memo"`
}

type sortRequest struct {
	Direction string `json:"direction"`
}

type filterRequest struct {
	Category string `json:"category"`
}

type stateResponse struct {
	Sort        model.Direction `json:"sort"`
	SortOrder   []int64         `json:"sort_order"`
	Filter      string          `json:"filter"`
	LastDeleted *model.Task     `json:"last_deleted"`
	Categories  []string        `json:"categories"`
}

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

// Routes mounts the checklist API on r.
func (h *TaskHandler) Routes(r chi.Router) {
	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/all", h.All)
		r.Put("/{id}", h.SaveEdit)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/rotate", h.Rotate)
		r.Post("/{id}/edit", h.BeginEdit)
		r.Post("/{id}/cancel", h.CancelEdit)
	})
	r.Post("/api/undo", h.Undo)
	r.Put("/api/sort", h.Sort)
	r.Put("/api/filter", h.Filter)
	r.Get("/api/state", h.State)
}

// List returns the visible tasks. A category query parameter narrows this
// response only; PUT /api/filter changes the stored filter.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		respond.JSON(w, r, http.StatusOK, h.service.VisibleTasks())
		return
	}

	tasks, err := h.service.VisibleTasksIn(category)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) All(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, h.service.Tasks())
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := respond.Decode(r, &req); err != nil {
		h.logger.Debug("failed to decode json", zap.Error(err))
		h.handleErrors(w, r, fmt.Errorf("%w: %v", service.ErrValidation, err))
		return
	}

	task, ok := h.service.AddTask(req.Title, req.Category, req.Memo)
	if !ok {
		respond.NoContent(w, r)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/tasks/%d", task.ID))
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Rotate(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.service.RotateStatus)
}

func (h *TaskHandler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.service.BeginEdit)
}

func (h *TaskHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.service.CancelEdit)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.service.DeleteTask)
}

func (h *TaskHandler) SaveEdit(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	var req editRequest
	if err := respond.Decode(r, &req); err != nil {
		h.handleErrors(w, r, fmt.Errorf("%w: %v", service.ErrValidation, err))
		return
	}

	h.service.SaveEdit(id, req.Title, req.Memo)
	respond.NoContent(w, r)
}

func (h *TaskHandler) Undo(w http.ResponseWriter, r *http.Request) {
	task, ok := h.service.UndoDelete()
	if !ok {
		respond.NoContent(w, r)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Sort(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	if err := respond.Decode(r, &req); err != nil {
		h.handleErrors(w, r, fmt.Errorf("%w: %v", service.ErrValidation, err))
		return
	}

	if err := h.service.ApplySort(model.Direction(req.Direction)); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.NoContent(w, r)
}

func (h *TaskHandler) Filter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := respond.Decode(r, &req); err != nil {
		h.handleErrors(w, r, fmt.Errorf("%w: %v", service.ErrValidation, err))
		return
	}

	if err := h.service.SetCategoryFilter(req.Category); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.NoContent(w, r)
}

func (h *TaskHandler) State(w http.ResponseWriter, r *http.Request) {
	dir, order := h.service.SortState()
	resp := stateResponse{
		Sort:       dir,
		SortOrder:  order,
		Filter:     h.service.CategoryFilter(),
		Categories: h.service.Categories(),
	}
	if t, ok := h.service.LastDeleted(); ok {
		resp.LastDeleted = &t
	}
	respond.JSON(w, r, http.StatusOK, resp)
}

// byID runs a single-id command. Unknown ids are not an error.
func (h *TaskHandler) byID(w http.ResponseWriter, r *http.Request, fn func(int64) bool) {
	id, err := parseID(r)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	fn(id)
	respond.NoContent(w, r)
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id", service.ErrValidation)
	}
	return id, nil
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
