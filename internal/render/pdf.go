package render

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/linesheet-app/linesheet-golang/internal/linesheet"
	"github.com/linesheet-app/linesheet-golang/internal/models"
)

// A4 portrait in millimetres.
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	pageMargin = 15.0
	cardGap    = 5.0
	lineHeight = 5.0
	imageH     = 45.0
)

// imageFetcher pulls card images off the CDN. Renders never fail on
// image trouble; a card just goes out without its picture.
var imageClient = &http.Client{Timeout: 10 * time.Second}

// RenderPDF lays the composed document out on A4 pages and returns
// the finished file.
func RenderPDF(layout models.DocumentLayout, cfg models.LinesheetConfig) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(cfg.HeaderTitle, true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.AddPage()

	y := renderHeader(pdf, cfg)

	switch layout.Style {
	case models.LayoutTwoColumnCompact:
		renderTwoColumn(pdf, layout, cfg, y)
	default:
		renderRows(pdf, layout.Rows, cfg, y)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func renderHeader(pdf *fpdf.Fpdf, cfg models.LinesheetConfig) float64 {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(pageWidth-2*pageMargin, 8, cfg.HeaderTitle, "", 1, "C", false, 0, "")

	if cfg.Subheader != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(pageWidth-2*pageMargin, 6, cfg.Subheader, "", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.Ln(4)
	return pdf.GetY()
}

// renderTwoColumn walks the two columns in lockstep so the parity
// ordering of the composer survives on the page.
func renderTwoColumn(pdf *fpdf.Fpdf, layout models.DocumentLayout, cfg models.LinesheetConfig, y float64) {
	colWidth := (pageWidth - 2*pageMargin - cardGap) / 2
	rows := len(layout.Left)
	if len(layout.Right) > rows {
		rows = len(layout.Right)
	}

	for i := 0; i < rows; i++ {
		rowH := 0.0
		if i < len(layout.Left) {
			if h := cardHeight(layout.Left[i], cfg); h > rowH {
				rowH = h
			}
		}
		if i < len(layout.Right) {
			if h := cardHeight(layout.Right[i], cfg); h > rowH {
				rowH = h
			}
		}

		if y+rowH > pageHeight-pageMargin {
			pdf.AddPage()
			y = pageMargin
		}

		if i < len(layout.Left) {
			renderCard(pdf, layout.Left[i], cfg, pageMargin, y, colWidth)
		}
		if i < len(layout.Right) {
			renderCard(pdf, layout.Right[i], cfg, pageMargin+colWidth+cardGap, y, colWidth)
		}
		y += rowH + cardGap
	}
}

func renderRows(pdf *fpdf.Fpdf, rows [][]models.NormalizedCatalogItem, cfg models.LinesheetConfig, y float64) {
	perRow := cfg.ProductsPerRow
	if perRow < 1 {
		perRow = 1
		for _, row := range rows {
			if len(row) > perRow {
				perRow = len(row)
			}
		}
	}
	cardW := linesheet.CardWidth(pageWidth, pageMargin, cardGap, perRow)

	for _, row := range rows {
		rowH := 0.0
		for _, item := range row {
			if h := cardHeight(item, cfg); h > rowH {
				rowH = h
			}
		}

		if y+rowH > pageHeight-pageMargin {
			pdf.AddPage()
			y = pageMargin
		}

		x := pageMargin
		for _, item := range row {
			renderCard(pdf, item, cfg, x, y, cardW)
			x += cardW + cardGap
		}
		y += rowH + cardGap
	}
}

// cardHeight is deterministic from the visible fields, so rows can be
// measured before anything is drawn.
func cardHeight(item models.NormalizedCatalogItem, cfg models.LinesheetConfig) float64 {
	h := lineHeight + 1 // title
	if cfg.FieldToggles.Images && item.Image != nil {
		h += imageH + 2
	}
	h += float64(len(visibleLines(item, cfg.FieldToggles))) * lineHeight
	return h
}

func renderCard(pdf *fpdf.Fpdf, item models.NormalizedCatalogItem, cfg models.LinesheetConfig, x, y, width float64) {
	if cfg.FieldToggles.Images && item.Image != nil {
		if name := registerImage(pdf, item.Image.URL); name != "" {
			pdf.ImageOptions(name, x, y, width, imageH, false, fpdf.ImageOptions{}, 0, "")
		}
		y += imageH + 2
	}

	pdf.SetXY(x, y)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(width, lineHeight, item.Title, "", 0, "L", false, 0, "")
	y += lineHeight + 1

	pdf.SetFont("Helvetica", "", 8)
	for _, line := range visibleLines(item, cfg.FieldToggles) {
		pdf.SetXY(x, y)
		pdf.CellFormat(width, lineHeight, line, "", 0, "L", false, 0, "")
		y += lineHeight
	}
}

// visibleLines applies the field toggles: a line renders only when
// its toggle is on AND the pipeline produced a value.
func visibleLines(item models.NormalizedCatalogItem, toggles models.FieldToggles) []string {
	var lines []string
	add := func(toggle bool, label string, value *string) {
		if linesheet.FieldVisible(toggle, value) {
			lines = append(lines, label+": "+*value)
		}
	}
	add(toggles.StyleNumber, "Style", item.StyleNumber)
	add(toggles.Season, "Season", item.Season)
	add(toggles.Color, "Color", item.Color)
	add(toggles.Sizes, "Sizes", item.Sizes)
	add(toggles.Wholesale, "Wholesale", item.Wholesale)
	add(toggles.MSRP, "MSRP", item.MSRP)
	return lines
}

// registerImage downloads and registers a card image, returning the
// registered name or "" when anything goes wrong.
func registerImage(pdf *fpdf.Fpdf, url string) string {
	if info := pdf.GetImageInfo(url); info != nil {
		return url
	}

	resp, err := imageClient.Get(url)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	imageType := imageTypeFor(url, resp.Header.Get("Content-Type"))
	if imageType == "" {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return ""
	}

	pdf.RegisterImageOptionsReader(url, fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(body))
	if pdf.Err() {
		// A bad image must not sink the whole document.
		pdf.ClearError()
		return ""
	}
	return url
}

func imageTypeFor(url, contentType string) string {
	switch {
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return "JPG"
	case strings.Contains(contentType, "png"):
		return "PNG"
	case strings.Contains(contentType, "gif"):
		return "GIF"
	}
	switch strings.ToLower(strings.TrimPrefix(path.Ext(strings.SplitN(url, "?", 2)[0]), ".")) {
	case "jpg", "jpeg":
		return "JPG"
	case "png":
		return "PNG"
	case "gif":
		return "GIF"
	}
	return ""
}
