package catalog

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/points"
)

type userResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Color   string    `json:"color"`
	Balance int       `json:"balance"`
}

type taskResponse struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	CategoryID uuid.UUID        `json:"category_id"`
	Points     points.PointSpec `json:"points"`
}

type categoryResponse struct {
	ID    uuid.UUID      `json:"id"`
	Name  string         `json:"name"`
	Tasks []taskResponse `json:"tasks"`
}

type rewardResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	PointsRequired int       `json:"points_required"`
	Description    string    `json:"description,omitempty"`
}

func toUserResponses(users []points.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = userResponse{ID: u.ID, Name: u.Name, Color: u.Color, Balance: u.Balance}
	}

	return out
}

func toTaskResponse(t points.Task) taskResponse {
	return taskResponse{ID: t.ID, Name: t.Name, CategoryID: t.CategoryID, Points: t.Points}
}

func toCategoryResponse(c points.Category) categoryResponse {
	resp := categoryResponse{
		ID:    c.ID,
		Name:  c.Name,
		Tasks: make([]taskResponse, len(c.Tasks)),
	}

	for i, t := range c.Tasks {
		resp.Tasks[i] = toTaskResponse(t)
	}

	return resp
}

func toCategoryResponses(cats []points.Category) []categoryResponse {
	out := make([]categoryResponse, len(cats))
	for i, c := range cats {
		out[i] = toCategoryResponse(c)
	}

	return out
}

func toRewardResponse(r points.Reward) rewardResponse {
	return rewardResponse{ID: r.ID, Name: r.Name, PointsRequired: r.PointsRequired, Description: r.Description}
}

func toRewardResponses(rewards []points.Reward) []rewardResponse {
	out := make([]rewardResponse, len(rewards))
	for i, r := range rewards {
		out[i] = toRewardResponse(r)
	}

	return out
}
