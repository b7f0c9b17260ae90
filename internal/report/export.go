package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const itemSalesSheet = "Item Sales"

// WriteItemSalesXLSX writes rows as a one-sheet workbook: a header row,
// one row per item and a total row.
func WriteItemSalesXLSX(w io.Writer, title string, rows []ItemSales) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", itemSalesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetCellValue(itemSalesSheet, "A1", title); err != nil {
		return err
	}
	if err := f.SetSheetRow(itemSalesSheet, "A3", &[]interface{}{"Item", "Quantity sold"}); err != nil {
		return err
	}

	total := 0
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(itemSalesSheet, cell, &[]interface{}{r.ItemName, r.QuantitySold}); err != nil {
			return err
		}
		total += r.QuantitySold
	}

	totalCell, err := excelize.CoordinatesToCellName(1, len(rows)+4)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(itemSalesSheet, totalCell, &[]interface{}{"Total", total}); err != nil {
		return err
	}
	if err := f.SetColWidth(itemSalesSheet, "A", "A", 32); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
