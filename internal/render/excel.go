package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/linesheet-app/linesheet-golang/internal/models"
)

const sheetName = "Linesheet"

type excelColumn struct {
	header string
	value  func(models.NormalizedCatalogItem) *string
}

// RenderExcel writes the catalog rows to a single worksheet: the
// header block on top, one column per enabled field, one row per item.
func RenderExcel(items []models.NormalizedCatalogItem, cfg models.LinesheetConfig) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("excel sheet: %w", err)
	}

	columns := enabledColumns(cfg.FieldToggles)

	// Header block
	lastCol, _ := excelize.ColumnNumberToName(len(columns))
	f.MergeCell(sheetName, "A1", lastCol+"1")
	f.SetCellValue(sheetName, "A1", cfg.HeaderTitle)
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)
	}

	headerRow := 2
	if cfg.Subheader != "" {
		f.MergeCell(sheetName, "A2", lastCol+"2")
		f.SetCellValue(sheetName, "A2", cfg.Subheader)
		headerRow = 3
	}

	// Column headers
	boldStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheetName, cell, col.header)
		f.SetCellStyle(sheetName, cell, cell, boldStyle)
	}

	// Data rows
	for rowIdx, item := range items {
		for colIdx, col := range columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, headerRow+1+rowIdx)
			if v := col.value(item); v != nil {
				f.SetCellValue(sheetName, cell, *v)
			}
		}
	}

	f.SetColWidth(sheetName, "A", lastCol, 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel write: %w", err)
	}
	return buf.Bytes(), nil
}

// enabledColumns returns the column set for the toggles. Title always
// shows; the rest follow their toggle. Absent values stay blank cells
// (the toggle AND value rule from the composer applies per cell).
func enabledColumns(toggles models.FieldToggles) []excelColumn {
	columns := []excelColumn{
		{"Title", func(i models.NormalizedCatalogItem) *string { return &i.Title }},
	}
	add := func(toggle bool, header string, value func(models.NormalizedCatalogItem) *string) {
		if toggle {
			columns = append(columns, excelColumn{header, value})
		}
	}
	add(toggles.StyleNumber, "Style #", func(i models.NormalizedCatalogItem) *string { return i.StyleNumber })
	add(toggles.Season, "Season", func(i models.NormalizedCatalogItem) *string { return i.Season })
	add(toggles.Color, "Color", func(i models.NormalizedCatalogItem) *string { return i.Color })
	add(toggles.Sizes, "Sizes", func(i models.NormalizedCatalogItem) *string { return i.Sizes })
	add(toggles.Wholesale, "Wholesale", func(i models.NormalizedCatalogItem) *string { return i.Wholesale })
	add(toggles.MSRP, "MSRP", func(i models.NormalizedCatalogItem) *string { return i.MSRP })
	add(toggles.Images, "Image URL", func(i models.NormalizedCatalogItem) *string {
		if i.Image == nil {
			return nil
		}
		return &i.Image.URL
	})
	return columns
}
