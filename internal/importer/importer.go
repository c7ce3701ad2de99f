package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/points"
)

// Row is one task definition read from a sheet. PerUser is keyed by user
// name when the sheet has per-user point columns; Flat is used otherwise.
type Row struct {
	Category string
	Task     string
	Flat     int
	PerUser  map[string]int
}

type Parser interface {
	Parse(r io.Reader) ([]Row, error)
}

type Service struct {
	parser Parser
}

func NewService() *Service {
	return &Service{parser: NewTaskSheetParser()}
}

func (s *Service) Parse(r io.Reader) ([]Row, error) {
	return s.parser.Parse(r)
}

// Result reports what an Apply created.
type Result struct {
	CategoriesAdded int
	TasksAdded      int
}

// Apply loads parsed rows into the catalog, creating categories on demand
// and matching per-user columns to users by name. All rows are resolved
// before any mutation, so a bad row rejects the whole sheet.
func (s *Service) Apply(svc *points.Service, rows []Row) (*Result, error) {
	byName := make(map[string]uuid.UUID)
	for _, u := range svc.ListUsers() {
		byName[strings.ToLower(u.Name)] = u.ID
	}

	specs := make([]points.PointSpec, len(rows))

	for i, row := range rows {
		if row.PerUser == nil {
			specs[i] = points.PointSpec{Flat: row.Flat}
			continue
		}

		per := make(map[uuid.UUID]int, len(row.PerUser))

		for name, v := range row.PerUser {
			id, ok := byName[strings.ToLower(name)]
			if !ok {
				return nil, fmt.Errorf("row %d: unknown user %q", i+1, name)
			}

			per[id] = v
		}

		specs[i] = points.PointSpec{PerUser: per}
	}

	categories := make(map[string]uuid.UUID)
	for _, c := range svc.ListCategories() {
		categories[strings.ToLower(c.Name)] = c.ID
	}

	var res Result

	for i, row := range rows {
		catID, ok := categories[strings.ToLower(row.Category)]
		if !ok {
			c, err := svc.AddCategory(row.Category)
			if err != nil {
				return nil, fmt.Errorf("row %d: adding category %q: %w", i+1, row.Category, err)
			}

			catID = c.ID
			categories[strings.ToLower(c.Name)] = c.ID
			res.CategoriesAdded++
		}

		if _, err := svc.AddTask(catID, row.Task, specs[i]); err != nil {
			return nil, fmt.Errorf("row %d: adding task %q: %w", i+1, row.Task, err)
		}

		res.TasksAdded++
	}

	return &res, nil
}
