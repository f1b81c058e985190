package linesheet

import (
	"testing"

	"github.com/linesheet-app/linesheet-golang/internal/models"
)

func TestExtractStyleNumberPrefersVariantSKU(t *testing.T) {
	product := models.RawProduct{
		Variants: []models.Variant{
			{ID: "v1", Price: "10"},                          // no SKU
			{ID: "v2", Price: "10", SKU: strptr("ECT001-M")}, // first non-empty SKU wins
			{ID: "v3", Price: "10", SKU: strptr("ECT001-L")},
		},
		Metafields: []models.Metafield{
			{Namespace: "custom", Key: "style_number", Value: "META-STYLE"},
		},
	}

	got := ExtractStyleNumber(product)
	if got == nil || *got != "ECT001-M" {
		t.Errorf("ExtractStyleNumber = %v, want ECT001-M (SKU beats metafield)", got)
	}
}

func TestExtractStyleNumberMetafieldFallback(t *testing.T) {
	product := models.RawProduct{
		Variants: []models.Variant{{ID: "v1", Price: "10", SKU: strptr("  ")}},
		Metafields: []models.Metafield{
			{Namespace: "custom", Key: "style", Value: "ST-99"},
		},
	}

	got := ExtractStyleNumber(product)
	if got == nil || *got != "ST-99" {
		t.Errorf("ExtractStyleNumber = %v, want ST-99", got)
	}

	if got := ExtractStyleNumber(models.RawProduct{}); got != nil {
		t.Errorf("ExtractStyleNumber on empty product = %v, want absent", got)
	}
}

func TestExtractSeason(t *testing.T) {
	product := models.RawProduct{
		Metafields: []models.Metafield{
			{Namespace: "custom", Key: "collection", Value: "SS26"},
		},
	}
	if got := ExtractSeason(product); got == nil || *got != "SS26" {
		t.Errorf("ExtractSeason = %v, want SS26", got)
	}
	if got := ExtractSeason(models.RawProduct{}); got != nil {
		t.Errorf("ExtractSeason on empty product = %v, want absent", got)
	}
}

func TestExtractColorFromVariantOptions(t *testing.T) {
	product := models.RawProduct{
		Variants: []models.Variant{
			{ID: "v1", Price: "10", SelectedOptions: []models.SelectedOption{
				{Name: "Color", Value: "black"},
				{Name: "Size", Value: "S"},
			}},
			{ID: "v2", Price: "10", SelectedOptions: []models.SelectedOption{
				{Name: "COLOR", Value: "White"},
			}},
			{ID: "v3", Price: "10", SelectedOptions: []models.SelectedOption{
				{Name: "color", Value: "Black"}, // duplicate after upper-casing
			}},
		},
	}

	got := ExtractColor(product, DefaultColorPalette)
	if got == nil || *got != "BLACK+WHITE" {
		t.Errorf("ExtractColor = %v, want BLACK+WHITE", got)
	}
}

func TestExtractColorMetafieldFallback(t *testing.T) {
	product := models.RawProduct{
		Metafields: []models.Metafield{
			{Namespace: "custom", Key: "colors", Value: "navy; ecru | royal blue"},
		},
	}

	// Tokens are split, trimmed, upper-cased and palette-normalized.
	got := ExtractColor(product, DefaultColorPalette)
	if got == nil || *got != "AZURE BLUE+DARK NAVY+ECRU" {
		t.Errorf("ExtractColor = %v, want AZURE BLUE+DARK NAVY+ECRU", got)
	}
}

func TestExtractColorAbsent(t *testing.T) {
	if got := ExtractColor(models.RawProduct{}, DefaultColorPalette); got != nil {
		t.Errorf("ExtractColor on empty product = %v, want absent (nil, not empty string)", got)
	}
}

func TestExtractSizes(t *testing.T) {
	product := models.RawProduct{
		Variants: []models.Variant{
			{ID: "v1", Price: "10", SelectedOptions: []models.SelectedOption{{Name: "Size", Value: "s"}}},
			{ID: "v2", Price: "10", SelectedOptions: []models.SelectedOption{{Name: "Size", Value: "M"}}},
			{ID: "v3", Price: "10", SelectedOptions: []models.SelectedOption{{Name: "Size", Value: "L"}}},
		},
	}
	if got := ExtractSizes(product); got == nil || *got != "L - S" {
		t.Errorf("ExtractSizes = %v, want L - S", got)
	}
}

func TestExtractSizesMetafieldIsVerbatim(t *testing.T) {
	product := models.RawProduct{
		Metafields: []models.Metafield{
			{Namespace: "custom", Key: "sizes", Value: "One Size"},
		},
	}
	// The metafield fallback is used raw, not parsed into a set.
	if got := ExtractSizes(product); got == nil || *got != "One Size" {
		t.Errorf("ExtractSizes = %v, want One Size verbatim", got)
	}

	if got := ExtractSizes(models.RawProduct{}); got != nil {
		t.Errorf("ExtractSizes on empty product = %v, want absent", got)
	}
}

func TestFindMetafieldIgnoresNamespace(t *testing.T) {
	product := models.RawProduct{
		Metafields: []models.Metafield{
			{Namespace: "whatever", Key: "season", Value: "AW25"},
		},
	}
	if got := findMetafield(product, "season"); got == nil || *got != "AW25" {
		t.Errorf("findMetafield = %v, want AW25 regardless of namespace", got)
	}

	// Key matching is case-sensitive and exact.
	if got := findMetafield(product, "Season"); got != nil {
		t.Errorf("findMetafield with wrong case = %v, want absent", got)
	}
}
