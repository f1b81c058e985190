package linesheet

import (
	"reflect"
	"testing"

	"github.com/linesheet-app/linesheet-golang/internal/models"
)

// The full pipeline over one realistic product.
func TestMapProductToItem(t *testing.T) {
	product := models.RawProduct{
		ID:    "gid://shopify/Product/42",
		Title: "essential cotton t-shirt",
		Variants: []models.Variant{
			{
				ID:             "v1",
				SKU:            strptr("ECT001"),
				Price:          "25.00",
				CompareAtPrice: strptr("30.00"),
				SelectedOptions: []models.SelectedOption{
					{Name: "Size", Value: "S"},
					{Name: "Color", Value: "Black"},
				},
			},
		},
		Metafields: []models.Metafield{
			{Namespace: "custom", Key: "season", Value: "SS26"},
		},
	}
	cfg := models.LinesheetConfig{
		Currency:    "USD",
		PriceSource: models.PriceSourceVariantPrice,
	}

	item := MapProductToItem(product, nil, cfg)

	if item.Title != "ESSENTIAL COTTON T-SHIRT" {
		t.Errorf("Title = %q, want upper-cased", item.Title)
	}
	checks := []struct {
		field string
		got   *string
		want  string
	}{
		{"StyleNumber", item.StyleNumber, "ECT001"},
		{"Season", item.Season, "SS26"},
		{"Wholesale", item.Wholesale, "$25.00"},
		{"MSRP", item.MSRP, "$30.00"},
		{"Sizes", item.Sizes, "S"},
		{"Color", item.Color, "BLACK"},
	}
	for _, c := range checks {
		if c.got == nil || *c.got != c.want {
			t.Errorf("%s = %v, want %q", c.field, c.got, c.want)
		}
	}
	if item.Image != nil {
		t.Errorf("Image = %v, want absent for product without images", item.Image)
	}
}

func TestMapProductToItemImageAltFallsBackToTitle(t *testing.T) {
	product := models.RawProduct{
		ID:    "gid://shopify/Product/7",
		Title: "wool coat",
		Images: []models.ProductImage{
			{URL: "https://cdn.example.com/a.jpg"},
			{URL: "https://cdn.example.com/b.jpg", AltText: strptr("back view")},
		},
	}

	item := MapProductToItem(product, nil, models.LinesheetConfig{Currency: "USD"})
	if item.Image == nil {
		t.Fatal("Image absent, want first product image")
	}
	if item.Image.URL != "https://cdn.example.com/a.jpg" {
		t.Errorf("Image.URL = %q, want the first image", item.Image.URL)
	}
	if item.Image.Alt != "wool coat" {
		t.Errorf("Image.Alt = %q, want the product title fallback", item.Image.Alt)
	}
}

func TestMapProductToItemSeasonOverride(t *testing.T) {
	product := models.RawProduct{
		ID:         "gid://shopify/Product/7",
		Title:      "scarf",
		Metafields: []models.Metafield{{Namespace: "custom", Key: "season", Value: "SS26"}},
	}
	cfg := models.LinesheetConfig{Currency: "USD", Season: "AW26"}

	item := MapProductToItem(product, nil, cfg)
	if item.Season == nil || *item.Season != "AW26" {
		t.Errorf("Season = %v, want the config override AW26", item.Season)
	}
}

func TestOrderSelection(t *testing.T) {
	selection := []models.ProductSelection{
		{ProductID: "c", Order: 3},
		{ProductID: "a", Order: 1},
		{ProductID: "b", Order: 2},
		{ProductID: "a2", Order: 1}, // stable: keeps selection order on ties
	}

	got := OrderSelection(selection)
	var ids []string
	for _, s := range got {
		ids = append(ids, s.ProductID)
	}
	want := []string{"a", "a2", "b", "c"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("OrderSelection order = %v, want %v", ids, want)
	}
}

func TestMapProductsRestrictsVariants(t *testing.T) {
	product := models.RawProduct{
		ID:    "p1",
		Title: "tee",
		Variants: []models.Variant{
			{ID: "v1", Price: "10", SelectedOptions: []models.SelectedOption{{Name: "Size", Value: "S"}}},
			{ID: "v2", Price: "10", SelectedOptions: []models.SelectedOption{{Name: "Size", Value: "M"}}},
			{ID: "v3", Price: "10", SelectedOptions: []models.SelectedOption{{Name: "Size", Value: "L"}}},
		},
	}
	cfg := models.LinesheetConfig{
		Currency: "USD",
		Products: []models.ProductSelection{
			{ProductID: "p1", VariantIDs: []string{"v1", "v2"}},
			{ProductID: "missing"}, // not returned by the catalog: skipped
		},
	}

	items := MapProducts([]models.RawProduct{product}, nil, cfg)
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Sizes == nil || *items[0].Sizes != "M - S" {
		t.Errorf("Sizes = %v, want M - S from the restricted variant subset", items[0].Sizes)
	}

	// Input product must not have been mutated.
	if len(product.Variants) != 3 {
		t.Errorf("input product mutated: %d variants left", len(product.Variants))
	}
}
