package render

import (
	"bytes"
	"testing"

	"github.com/linesheet-app/linesheet-golang/internal/linesheet"
	"github.com/linesheet-app/linesheet-golang/internal/models"
)

func sampleItems() []models.NormalizedCatalogItem {
	return []models.NormalizedCatalogItem{
		{ProductID: "p1", Title: "TEE", StyleNumber: strptr("T-1"), Wholesale: strptr("$10.00")},
		{ProductID: "p2", Title: "COAT", Wholesale: strptr("$99.00")},
		{ProductID: "p3", Title: "SCARF", Sizes: strptr("M - S")},
	}
}

func TestRenderPDFTwoColumn(t *testing.T) {
	cfg := models.LinesheetConfig{
		HeaderTitle: "SS26 Wholesale",
		LayoutStyle: models.LayoutTwoColumnCompact,
		Currency:    "USD",
		FieldToggles: models.FieldToggles{
			StyleNumber: true,
			Wholesale:   true,
			Sizes:       true,
		},
	}
	layout := linesheet.ComposeDocument(sampleItems(), cfg)

	data, err := RenderPDF(layout, cfg)
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header")
	}
}

func TestRenderPDFGridHandlesManyItems(t *testing.T) {
	var items []models.NormalizedCatalogItem
	for i := 0; i < 40; i++ { // enough to force page breaks
		items = append(items, models.NormalizedCatalogItem{
			ProductID: "p",
			Title:     "ITEM",
			Wholesale: strptr("$5.00"),
		})
	}
	cfg := models.LinesheetConfig{
		HeaderTitle:    "Catalog",
		LayoutStyle:    models.LayoutGrid,
		ProductsPerRow: 3,
		Currency:       "USD",
		FieldToggles:   models.FieldToggles{Wholesale: true},
	}
	layout := linesheet.ComposeDocument(items, cfg)

	data, err := RenderPDF(layout, cfg)
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty pdf output")
	}
}

func TestImageTypeFor(t *testing.T) {
	tests := []struct {
		url         string
		contentType string
		want        string
	}{
		{"https://cdn/a.jpg", "", "JPG"},
		{"https://cdn/a.png?w=400", "", "PNG"},
		{"https://cdn/a", "image/jpeg", "JPG"},
		{"https://cdn/a", "image/webp", ""}, // unsupported by the pdf engine
	}
	for _, tt := range tests {
		if got := imageTypeFor(tt.url, tt.contentType); got != tt.want {
			t.Errorf("imageTypeFor(%q, %q) = %q, want %q", tt.url, tt.contentType, got, tt.want)
		}
	}
}
