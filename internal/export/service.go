package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/points"
)

// Service writes the activity history as a CSV sheet, newest entry first,
// matching the order the log is kept in.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

var header = []string{"date", "user", "kind", "category", "task", "reward", "points"}

// WriteHistory streams the given entries as CSV. Timestamps are written in
// RFC 3339 so re-imports and spreadsheets agree on the zone.
func (s *Service) WriteHistory(w io.Writer, entries []points.HistoryEntry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range entries {
		record := []string{
			e.CreatedAt.Format(time.RFC3339),
			e.UserName,
			string(e.Kind),
			e.CategoryName,
			e.TaskName,
			e.RewardName,
			strconv.Itoa(e.Points),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing entry %s: %w", e.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Filename builds a download name like tally-history-20260830.csv.
func (s *Service) Filename(now time.Time) string {
	return fmt.Sprintf("tally-history-%s.csv", now.Format("20060102"))
}

// GenerateSummary renders a short plain-text digest of the entries, one line
// each, for pasting into a message.
func (s *Service) GenerateSummary(entries []points.HistoryEntry) string {
	var sb strings.Builder

	for _, e := range entries {
		date := e.CreatedAt.Format("2006-01-02")

		what := fmt.Sprintf("completed %s (%s)", e.TaskName, e.CategoryName)
		if e.Kind == points.KindRewardRedemption {
			what = fmt.Sprintf("redeemed %s", e.RewardName)
		}

		sign := ""
		if e.Points > 0 {
			sign = "+"
		}

		sb.WriteString(fmt.Sprintf("* %s | %s %s | %s%d\n", date, e.UserName, what, sign, e.Points))
	}

	return sb.String()
}
