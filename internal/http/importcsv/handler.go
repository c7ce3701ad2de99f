package importcsv

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/points"
)

type Handler struct {
	importSvc *importer.Service
	pointsSvc *points.Service
}

func NewHandler(importSvc *importer.Service, pointsSvc *points.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		pointsSvc: pointsSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/tasks", h.importTasks)
}

type importResponse struct {
	CategoriesAdded int `json:"categories_added"`
	TasksAdded      int `json:"tasks_added"`
}

func (h *Handler) importTasks(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.importSvc.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.importSvc.Apply(h.pointsSvc, rows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	h.checkpoint(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	resp := importResponse{
		CategoriesAdded: result.CategoriesAdded,
		TasksAdded:      result.TasksAdded,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) checkpoint(ctx context.Context) {
	if err := h.pointsSvc.Checkpoint(ctx); err != nil {
		slog.Error("failed to checkpoint snapshot", "error", err)
	}
}
