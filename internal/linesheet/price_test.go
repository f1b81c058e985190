package linesheet

import (
	"testing"

	"github.com/linesheet-app/linesheet-golang/internal/models"
)

func strptr(s string) *string { return &s }

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		currency string
		want     string
	}{
		{"whole number USD", "25", "USD", "$25.00"},
		{"cents preserved", "12.50", "USD", "$12.50"},
		{"euro symbol", "99.9", "EUR", "€99.90"},
		{"unknown currency prefixes code", "10", "MYR", "MYR 10.00"},
		{"lowercase code", "10", "usd", "$10.00"},
		{"unparseable returned verbatim", "abc", "USD", "abc"},
		{"empty string returned verbatim", "", "USD", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPrice(tt.raw, tt.currency); got != tt.want {
				t.Errorf("FormatPrice(%q, %q) = %q, want %q", tt.raw, tt.currency, got, tt.want)
			}
		})
	}
}

func TestResolvePricesVariantPrice(t *testing.T) {
	product := models.RawProduct{
		ID: "gid://shopify/Product/1",
		Variants: []models.Variant{
			{ID: "v1", Price: "12.50", CompareAtPrice: strptr("20.00")},
			{ID: "v2", Price: "13.50"},
		},
	}
	cfg := models.LinesheetConfig{Currency: "USD", PriceSource: models.PriceSourceVariantPrice}

	wholesale, msrp := ResolvePrices(product, nil, cfg)
	if wholesale == nil || *wholesale != "$12.50" {
		t.Errorf("wholesale = %v, want $12.50", wholesale)
	}
	if msrp == nil || *msrp != "$20.00" {
		t.Errorf("msrp = %v, want $20.00", msrp)
	}
}

func TestResolvePricesNoStaleFallthrough(t *testing.T) {
	product := models.RawProduct{
		ID:       "gid://shopify/Product/1",
		Variants: []models.Variant{{ID: "v1", Price: "12.50"}},
	}

	// Switching the source to a price list with no matching entry must
	// yield absent, not the variant price.
	cfg := models.LinesheetConfig{Currency: "USD", PriceSource: models.PriceSourcePriceList}
	list := &models.PriceList{Entries: []models.PriceListEntry{{VariantID: "other", Price: "9.00"}}}

	wholesale, _ := ResolvePrices(product, list, cfg)
	if wholesale != nil {
		t.Errorf("wholesale = %q, want absent", *wholesale)
	}

	// And with no list at all.
	wholesale, _ = ResolvePrices(product, nil, cfg)
	if wholesale != nil {
		t.Errorf("wholesale without list = %q, want absent", *wholesale)
	}
}

func TestResolvePricesPriceListMatch(t *testing.T) {
	product := models.RawProduct{
		ID: "gid://shopify/Product/1",
		Variants: []models.Variant{
			{ID: "v1", Price: "30.00"},
			{ID: "v2", Price: "30.00"},
		},
	}
	cfg := models.LinesheetConfig{Currency: "USD", PriceSource: models.PriceSourcePriceList}
	list := &models.PriceList{Entries: []models.PriceListEntry{
		{VariantID: "v2", Price: "18.00"},
	}}

	wholesale, _ := ResolvePrices(product, list, cfg)
	if wholesale == nil || *wholesale != "$18.00" {
		t.Errorf("wholesale = %v, want $18.00", wholesale)
	}
}

func TestResolvePricesMetafieldSource(t *testing.T) {
	product := models.RawProduct{
		ID:       "gid://shopify/Product/1",
		Variants: []models.Variant{{ID: "v1", Price: "30.00"}},
		Metafields: []models.Metafield{
			{Namespace: "custom", Key: "wholesale_price", Value: "15.00"},
			{Namespace: "custom", Key: "msrp", Value: "45.00"},
		},
	}
	cfg := models.LinesheetConfig{Currency: "USD", PriceSource: models.PriceSourceMetafield}

	wholesale, msrp := ResolvePrices(product, nil, cfg)
	if wholesale == nil || *wholesale != "$15.00" {
		t.Errorf("wholesale = %v, want $15.00", wholesale)
	}
	if msrp == nil || *msrp != "$45.00" {
		t.Errorf("msrp = %v, want $45.00", msrp)
	}
}

func TestResolvePricesUnknownSourceDefaults(t *testing.T) {
	product := models.RawProduct{
		ID:       "gid://shopify/Product/1",
		Variants: []models.Variant{{ID: "v1", Price: "12.50"}},
	}
	cfg := models.LinesheetConfig{Currency: "USD", PriceSource: "something_else"}

	wholesale, _ := ResolvePrices(product, nil, cfg)
	if wholesale == nil || *wholesale != "$12.50" {
		t.Errorf("unknown source wholesale = %v, want $12.50 (variant_price default)", wholesale)
	}
}
