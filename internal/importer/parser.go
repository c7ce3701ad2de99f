package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	enc "github.com/MrJamesThe3rd/tally/internal/encoding"
)

// TaskSheetParser reads CSV task sheets. Two layouts are recognized by the
// header row:
//
//	category,task,points            flat point values
//	category,task,Lara,Isaac,...    one point column per user name
type TaskSheetParser struct{}

func NewTaskSheetParser() *TaskSheetParser {
	return &TaskSheetParser{}
}

func (p *TaskSheetParser) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty sheet")
	}

	header := records[0]
	if len(header) < 3 ||
		!strings.EqualFold(strings.TrimSpace(header[0]), "category") ||
		!strings.EqualFold(strings.TrimSpace(header[1]), "task") {
		return nil, fmt.Errorf("unrecognized header: want category,task,points or category,task,<user names>")
	}

	// A single "points" column means flat values; anything else is read as
	// user names.
	flat := len(header) == 3 && strings.EqualFold(strings.TrimSpace(header[2]), "points")

	userNames := make([]string, 0, len(header)-2)

	if !flat {
		for _, cell := range header[2:] {
			name := strings.TrimSpace(cell)
			if name == "" {
				return nil, fmt.Errorf("blank user column in header")
			}

			userNames = append(userNames, name)
		}
	}

	var rows []Row

	for i, record := range records[1:] {
		line := i + 2 // 1-based, after header

		if isBlank(record) {
			continue
		}

		if len(record) < 3 {
			return nil, fmt.Errorf("line %d: want at least 3 columns, got %d", line, len(record))
		}

		row := Row{
			Category: strings.TrimSpace(record[0]),
			Task:     strings.TrimSpace(record[1]),
		}

		if row.Category == "" || row.Task == "" {
			return nil, fmt.Errorf("line %d: category and task must not be empty", line)
		}

		if flat {
			v, err := parsePoints(record[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}

			row.Flat = v
		} else {
			if len(record) < 2+len(userNames) {
				return nil, fmt.Errorf("line %d: want %d point columns, got %d", line, len(userNames), len(record)-2)
			}

			row.PerUser = make(map[string]int, len(userNames))

			for j, name := range userNames {
				v, err := parsePoints(record[2+j])
				if err != nil {
					return nil, fmt.Errorf("line %d (%s): %w", line, name, err)
				}

				row.PerUser[name] = v
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func parsePoints(cell string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		return 0, fmt.Errorf("invalid point value %q", strings.TrimSpace(cell))
	}

	if v <= 0 {
		return 0, fmt.Errorf("point value must be positive, got %d", v)
	}

	return v, nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
