package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/metrics"
	"github.com/MrJamesThe3rd/tally/internal/points"
)

type Handler struct {
	svc      *points.Service
	exporter *export.Service
}

func NewHandler(svc *points.Service) *Handler {
	return &Handler{svc: svc, exporter: export.NewService()}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/earn", h.earn)
	r.Post("/redeem", h.redeem)
	r.Post("/reset", h.reset)
	r.Get("/history", h.history)
	r.Get("/history/export", h.exportHistory)
	r.Get("/points", h.totals)
}

type earnRequest struct {
	UserID uuid.UUID `json:"user_id"`
	TaskID uuid.UUID `json:"task_id"`
}

func (h *Handler) earn(w http.ResponseWriter, r *http.Request) {
	var req earnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.svc.EarnPoints(req.UserID, req.TaskID)
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.PointsEarned.Add(float64(entry.Points))

	h.checkpoint(r.Context())
	writeJSON(w, http.StatusCreated, toEntryResponse(*entry))
}

type redeemRequest struct {
	UserID   uuid.UUID `json:"user_id"`
	RewardID uuid.UUID `json:"reward_id"`
}

type redeemResponse struct {
	Redeemed bool `json:"redeemed"`
	Balance  int  `json:"balance"`
}

func (h *Handler) redeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	required := 0

	for _, rw := range h.svc.ListRewards() {
		if rw.ID == req.RewardID {
			required = rw.PointsRequired
			break
		}
	}

	redeemed, err := h.svc.RedeemReward(req.UserID, req.RewardID)
	if err != nil {
		writeError(w, err)
		return
	}

	if redeemed {
		metrics.Redemptions.WithLabelValues(metrics.OutcomeRedeemed).Inc()
		metrics.PointsRedeemed.Add(float64(required))

		h.checkpoint(r.Context())
	} else {
		// An unaffordable redemption is an expected outcome, not an
		// error: nothing changed, nothing to persist.
		metrics.Redemptions.WithLabelValues(metrics.OutcomeRejected).Inc()
	}

	balance, err := h.svc.Balance(req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, redeemResponse{Redeemed: redeemed, Balance: balance})
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	h.svc.ResetPoints()
	metrics.Resets.Inc()

	h.checkpoint(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	entries := h.svc.History()

	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = toEntryResponse(e)
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) exportHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+h.exporter.Filename(time.Now()))

	if err := h.exporter.WriteHistory(w, h.svc.History()); err != nil {
		slog.Error("failed to export history", "error", err)
	}
}

type totalsResponse struct {
	Mode  points.Mode   `json:"mode"`
	Total int           `json:"total"`
	Users []userBalance `json:"users"`
}

type userBalance struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Balance int       `json:"balance"`
}

func (h *Handler) totals(w http.ResponseWriter, r *http.Request) {
	users := h.svc.ListUsers()

	resp := totalsResponse{
		Mode:  h.svc.Mode(),
		Total: h.svc.TotalPoints(),
		Users: make([]userBalance, len(users)),
	}

	for i, u := range users {
		resp.Users[i] = userBalance{ID: u.ID, Name: u.Name, Balance: u.Balance}
	}

	writeJSON(w, http.StatusOK, resp)
}

type entryResponse struct {
	ID           uuid.UUID        `json:"id"`
	Kind         points.EntryKind `json:"kind"`
	UserID       uuid.UUID        `json:"user_id"`
	UserName     string           `json:"user_name"`
	UserColor    string           `json:"user_color"`
	Points       int              `json:"points"`
	TaskName     string           `json:"task_name,omitempty"`
	CategoryName string           `json:"category_name,omitempty"`
	RewardName   string           `json:"reward_name,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

func toEntryResponse(e points.HistoryEntry) entryResponse {
	return entryResponse{
		ID:           e.ID,
		Kind:         e.Kind,
		UserID:       e.UserID,
		UserName:     e.UserName,
		UserColor:    e.UserColor,
		Points:       e.Points,
		TaskName:     e.TaskName,
		CategoryName: e.CategoryName,
		RewardName:   e.RewardName,
		CreatedAt:    e.CreatedAt,
	}
}

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
	if errors.Is(err, points.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	http.Error(w, "internal error", http.StatusInternalServerError)
}
