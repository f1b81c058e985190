package render

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/linesheet-app/linesheet-golang/internal/models"
)

func strptr(s string) *string { return &s }

func TestRenderExcel(t *testing.T) {
	items := []models.NormalizedCatalogItem{
		{
			ProductID:   "p1",
			Title:       "ESSENTIAL COTTON T-SHIRT",
			StyleNumber: strptr("ECT001"),
			Wholesale:   strptr("$25.00"),
			Sizes:       strptr("XL - S"),
		},
		{
			ProductID: "p2",
			Title:     "WOOL COAT",
			// no style number: the cell stays blank
			Wholesale: strptr("$120.00"),
		},
	}
	cfg := models.LinesheetConfig{
		HeaderTitle: "SS26 Wholesale",
		Subheader:   "Minimum order 12 units",
		Currency:    "USD",
		FieldToggles: models.FieldToggles{
			StyleNumber: true,
			Wholesale:   true,
			Sizes:       false, // toggled off: no column at all
		},
	}

	data, err := RenderExcel(items, cfg)
	if err != nil {
		t.Fatalf("RenderExcel: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	mustCell := func(cell, want string) {
		t.Helper()
		got, err := f.GetCellValue(sheetName, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}

	mustCell("A1", "SS26 Wholesale")
	mustCell("A2", "Minimum order 12 units")

	// Header row: Title, Style #, Wholesale — no Sizes column.
	mustCell("A3", "Title")
	mustCell("B3", "Style #")
	mustCell("C3", "Wholesale")
	mustCell("D3", "")

	mustCell("A4", "ESSENTIAL COTTON T-SHIRT")
	mustCell("B4", "ECT001")
	mustCell("C4", "$25.00")

	mustCell("A5", "WOOL COAT")
	mustCell("B5", "") // absent value stays blank
	mustCell("C5", "$120.00")
}

func TestDocumentFilename(t *testing.T) {
	tests := []struct {
		title string
		ext   string
		want  string
	}{
		{"SS26 Wholesale!", "pdf", "ss26-wholesale.pdf"},
		{"  ", "xlsx", "linesheet.xlsx"},
		{"Résumé Collection", "pdf", "resume-collection.pdf"},
	}
	for _, tt := range tests {
		if got := DocumentFilename(tt.title, tt.ext); got != tt.want {
			t.Errorf("DocumentFilename(%q, %q) = %q, want %q", tt.title, tt.ext, got, tt.want)
		}
	}
}
