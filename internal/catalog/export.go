package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/pai-manual/internal/manual"
)

const outlineSheet = "Outline"

var outlineHeader = []any{"#", "Section ID", "Section", "Subsection ID", "Subsection", "Levels", "Keywords"}

// ExportOutline writes the catalog's table of contents as an XLSX workbook: one row per
// page in traversal order, listing the levels that have their own content.
func ExportOutline(cat manual.Catalog[string], w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", outlineSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := f.SetSheetRow(outlineSheet, "A1", &outlineHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := 2
	for _, s := range cat.ListSections() {
		for _, sub := range s.Subsections {
			levels := make([]string, 0, len(manual.Levels))
			for _, l := range manual.AvailableLevels(sub) {
				levels = append(levels, string(l))
			}
			values := []any{
				row - 1,
				s.ID,
				s.Title,
				sub.ID,
				sub.Title,
				strings.Join(levels, ", "),
				strings.Join(sub.SearchKeywords, ", "),
			}

			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(outlineSheet, cell, &values); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
			row++
		}
	}

	if err := f.SetColWidth(outlineSheet, "B", "G", 24); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
