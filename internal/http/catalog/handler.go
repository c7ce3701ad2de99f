package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/points"
)

type Handler struct {
	svc *points.Service
}

func NewHandler(svc *points.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.listUsers)
		r.Patch("/{id}", h.updateUser)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.listCategories)
		r.Post("/", h.createCategory)
		r.Patch("/{id}", h.updateCategory)
		r.Delete("/{id}", h.deleteCategory)
		r.Post("/{id}/tasks", h.createTask)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Patch("/{id}", h.updateTask)
		r.Delete("/{id}", h.deleteTask)
		r.Post("/{id}/move", h.moveTask)
	})

	r.Route("/rewards", func(r chi.Router) {
		r.Get("/", h.listRewards)
		r.Post("/", h.createReward)
		r.Patch("/{id}", h.updateReward)
		r.Delete("/{id}", h.deleteReward)
	})
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserResponses(h.svc.ListUsers()))
}

type updateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdateUser(id, points.UserPatch{Name: req.Name, Color: req.Color}); err != nil {
		writeError(w, err)
		return
	}

	h.checkpoint(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCategoryResponses(h.svc.ListCategories()))
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.AddCategory(req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	h.checkpoint(r.Context())
	writeJSON(w, http.StatusCreated, toCategoryResponse(*c))
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdateCategory(id, points.CategoryPatch{Name: &req.Name}); err != nil {
		writeError(w, err)
		return
	}

	h.checkpoint(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteCategory(id); err != nil {
		writeError(w, err)
		return
	}

	h.checkpoint(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

type createTaskRequest struct {
	Name   string           `json:"name"`
	Points points.PointSpec `json:"points"`
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.svc.AddTask(categoryID, req.Name, req.Points)
	if err != nil {
		writeError(w, err)
		return
	}

	h.checkpoint(r.Context())
	writeJSON(w, http.StatusCreated, toTaskResponse(*t))
}

type updateTaskRequest struct {
	Name   *string           `json:"name,omitempty"`
	Points *points.PointSpec `json:"points,omitempty"`
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdateTask(id, points.TaskPatch{Name: req.Name, Points: req.Points}); err != nil {
		writeError(w, err)
		return
	}

	h.checkpoint(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteTask(id); err != nil {
		writeError(w, err)
		return
	}

	h.checkpoint(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

type moveTaskRequest struct {
	CategoryID uuid.UUID `json:"category_id"`
}

func (h *Handler) moveTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req moveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.MoveTask(id, req.CategoryID); err != nil {
		writeError(w, err)
		return
	}

	h.checkpoint(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listRewards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toRewardResponses(h.svc.ListRewards()))
}

type createRewardRequest struct {
	Name           string `json:"name"`
	PointsRequired int    `json:"points_required"`
	Description    string `json:"description,omitempty"`
}

func (h *Handler) createReward(w http.ResponseWriter, r *http.Request) {
	var req createRewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rw, err := h.svc.AddReward(req.Name, req.PointsRequired, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	h.checkpoint(r.Context())
	writeJSON(w, http.StatusCreated, toRewardResponse(*rw))
}

type updateRewardRequest struct {
	Name           *string `json:"name,omitempty"`
	PointsRequired *int    `json:"points_required,omitempty"`
	Description    *string `json:"description,omitempty"`
}

func (h *Handler) updateReward(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateRewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	patch := points.RewardPatch{
		Name:           req.Name,
		PointsRequired: req.PointsRequired,
		Description:    req.Description,
	}
	if err := h.svc.UpdateReward(id, patch); err != nil {
		writeError(w, err)
		return
	}

	h.checkpoint(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteReward(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteReward(id); err != nil {
		writeError(w, err)
		return
	}

	h.checkpoint(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// checkpoint persists the snapshot after a successful mutation.
// Persistence is best-effort: a failure is logged, never surfaced to the
// client whose state change already happened.
func (h *Handler) checkpoint(ctx context.Context) {
	if err := h.svc.Checkpoint(ctx); err != nil {
		slog.Error("failed to checkpoint snapshot", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, points.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, points.ErrEmptyName), errors.Is(err, points.ErrInvalidPoints):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
