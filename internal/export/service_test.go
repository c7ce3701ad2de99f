package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/points"
)

func sampleEntries() []points.HistoryEntry {
	when := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	return []points.HistoryEntry{
		{
			ID:         uuid.New(),
			Kind:       points.KindRewardRedemption,
			UserName:   "Lara",
			Points:     -50,
			RewardName: "Favorite Coffee",
			CreatedAt:  when.Add(time.Hour),
		},
		{
			ID:           uuid.New(),
			Kind:         points.KindTaskCompletion,
			UserName:     "Isaac",
			Points:       15,
			TaskName:     "Do Laundry",
			CategoryName: "Household Chores",
			CreatedAt:    when,
		},
	}
}

func TestService_WriteHistory(t *testing.T) {
	var buf bytes.Buffer

	if err := NewService().WriteHistory(&buf, sampleEntries()); err != nil {
		t.Fatalf("WriteHistory failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back csv: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}

	if records[0][0] != "date" || records[0][6] != "points" {
		t.Errorf("unexpected header: %v", records[0])
	}

	// Redemption row: reward filled, task and category blank.
	if records[1][1] != "Lara" || records[1][5] != "Favorite Coffee" || records[1][6] != "-50" {
		t.Errorf("unexpected redemption row: %v", records[1])
	}

	if records[1][3] != "" || records[1][4] != "" {
		t.Errorf("redemption row should have blank task columns: %v", records[1])
	}

	// Completion row: task and category filled, reward blank.
	if records[2][3] != "Household Chores" || records[2][4] != "Do Laundry" || records[2][6] != "15" {
		t.Errorf("unexpected completion row: %v", records[2])
	}

	if _, err := time.Parse(time.RFC3339, records[2][0]); err != nil {
		t.Errorf("date column is not RFC 3339: %v", err)
	}
}

func TestService_WriteHistory_Empty(t *testing.T) {
	var buf bytes.Buffer

	if err := NewService().WriteHistory(&buf, nil); err != nil {
		t.Fatalf("WriteHistory failed: %v", err)
	}

	if got := strings.TrimSpace(buf.String()); got != strings.Join(header, ",") {
		t.Errorf("expected header only, got %q", got)
	}
}

func TestService_Filename(t *testing.T) {
	now := time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)

	if got := NewService().Filename(now); got != "tally-history-20260830.csv" {
		t.Errorf("unexpected filename %q", got)
	}
}

func TestService_GenerateSummary(t *testing.T) {
	body := NewService().GenerateSummary(sampleEntries())

	expectedSubstrings := []string{
		"2026-08-30 | Lara redeemed Favorite Coffee | -50",
		"2026-08-30 | Isaac completed Do Laundry (Household Chores) | +15",
	}

	for _, sub := range expectedSubstrings {
		if !strings.Contains(body, sub) {
			t.Errorf("expected body to contain %q", sub)
		}
	}
}
