package menu

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"restoran-pos/internal/apperr"
	"restoran-pos/internal/audit"
	"restoran-pos/internal/models"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// RowError reports a spreadsheet row that was not imported. Row is 1-based
// as shown by spreadsheet programs.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Added   []models.MenuItem `json:"added"`
	Skipped []RowError        `json:"skipped"`
}

type importRow struct {
	row   int
	input ItemInput
}

// parseItemsXLSX reads menu items from the first sheet of an XLSX workbook.
// Columns: name, category, price, image URL (optional). A first row whose
// first cell is "name" is treated as a header.
func parseItemsXLSX(r io.Reader) ([]importRow, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, apperr.Validation("file is not a readable xlsx workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, apperr.Validation("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, apperr.Validation("sheet could not be read")
	}

	start := 0
	if len(rows) > 0 && len(rows[0]) > 0 && strings.EqualFold(strings.TrimSpace(rows[0][0]), "name") {
		start = 1
	}

	var out []importRow
	var skipped []RowError
	for i := start; i < len(rows); i++ {
		cells := rows[i]
		if len(cells) == 0 || strings.TrimSpace(strings.Join(cells, "")) == "" {
			continue
		}
		if len(cells) < 3 {
			skipped = append(skipped, RowError{Row: i + 1, Reason: "expected name, category and price"})
			continue
		}

		price, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(cells[2]), ",", "."), 64)
		if err != nil {
			skipped = append(skipped, RowError{Row: i + 1, Reason: fmt.Sprintf("price %q is not a number", cells[2])})
			continue
		}
		in := ItemInput{Name: cells[0], Category: cells[1], Price: price}
		if len(cells) > 3 {
			in.ImageURL = cells[3]
		}
		out = append(out, importRow{row: i + 1, input: in})
	}
	return out, skipped, nil
}

// Import adds every valid row in a single save. Invalid rows are reported
// in the result and do not block the others.
func (s *Service) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	rows, skipped, err := parseItemsXLSX(r)
	if err != nil {
		return ImportResult{}, err
	}

	res := ImportResult{Added: make([]models.MenuItem, 0, len(rows)), Skipped: skipped}
	for _, row := range rows {
		item := models.MenuItem{
			ID:          uuid.NewString(),
			Name:        strings.TrimSpace(row.input.Name),
			Category:    strings.TrimSpace(row.input.Category),
			Price:       row.input.Price,
			IsAvailable: true,
			ImageURL:    strings.TrimSpace(row.input.ImageURL),
		}
		if err := validate(item); err != nil {
			res.Skipped = append(res.Skipped, RowError{Row: row.row, Reason: apperr.Message(err)})
			continue
		}
		res.Added = append(res.Added, item)
	}
	if res.Skipped == nil {
		res.Skipped = []RowError{}
	}
	if len(res.Added) == 0 {
		return res, nil
	}

	err = s.store.Update(ctx, func(doc *models.Document) error {
		doc.MenuItems = append(doc.MenuItems, res.Added...)
		audit.Record(ctx, doc, s.now(), audit.Entry{
			EntityType:  entityType,
			EntityID:    "import",
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("menu import: %d items added", len(res.Added)),
			After:       res.Added,
		})
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return res, nil
}
