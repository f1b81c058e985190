package linesheet

import (
	"github.com/linesheet-app/linesheet-golang/internal/models"
)

const defaultProductsPerRow = 3

// ComposeDocument partitions the ordered items into the layout model
// the rendering sinks consume. The partition is deterministic and
// order-preserving; nothing here measures or balances content height.
// An unknown layout style degrades to a single column.
func ComposeDocument(items []models.NormalizedCatalogItem, cfg models.LinesheetConfig) models.DocumentLayout {
	switch cfg.LayoutStyle {
	case models.LayoutTwoColumnCompact:
		layout := models.DocumentLayout{Style: models.LayoutTwoColumnCompact}
		for i, item := range items {
			if i%2 == 0 {
				layout.Left = append(layout.Left, item)
			} else {
				layout.Right = append(layout.Right, item)
			}
		}
		return layout

	case models.LayoutGrid:
		perRow := cfg.ProductsPerRow
		if perRow < 1 {
			perRow = defaultProductsPerRow
		}
		layout := models.DocumentLayout{Style: models.LayoutGrid}
		for start := 0; start < len(items); start += perRow {
			end := start + perRow
			if end > len(items) {
				end = len(items)
			}
			layout.Rows = append(layout.Rows, items[start:end])
		}
		return layout

	default:
		layout := models.DocumentLayout{Style: models.LayoutSingleColumn}
		for _, item := range items {
			layout.Rows = append(layout.Rows, []models.NormalizedCatalogItem{item})
		}
		return layout
	}
}

// CardWidth is the width of one grid card: the usable page width
// minus the inter-card gaps, split evenly.
func CardWidth(pageWidth, pageMargin, cardGap float64, perRow int) float64 {
	if perRow < 1 {
		perRow = defaultProductsPerRow
	}
	usable := pageWidth - 2*pageMargin - float64(perRow-1)*cardGap
	return usable / float64(perRow)
}

// FieldVisible decides whether a field renders: the config toggle
// must be on AND the extracted value must be present.
func FieldVisible(toggle bool, value *string) bool {
	return toggle && value != nil && *value != ""
}
