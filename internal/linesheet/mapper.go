package linesheet

import (
	"sort"
	"strings"

	"github.com/linesheet-app/linesheet-golang/internal/models"
)

// MapProductToItem runs the extractors and price resolver over one
// raw product and composes the catalog row for it. Pure function:
// no I/O, inputs are never mutated.
func MapProductToItem(p models.RawProduct, priceList *models.PriceList, cfg models.LinesheetConfig) models.NormalizedCatalogItem {
	item := models.NormalizedCatalogItem{
		ProductID:   p.ID,
		Title:       strings.ToUpper(p.Title),
		StyleNumber: ExtractStyleNumber(p),
		Sizes:       ExtractSizes(p),
		Color:       ExtractColor(p, DefaultColorPalette),
	}

	// A season set on the config overrides whatever the product carries.
	if season := strings.TrimSpace(cfg.Season); season != "" {
		item.Season = &season
	} else {
		item.Season = ExtractSeason(p)
	}

	item.Wholesale, item.MSRP = ResolvePrices(p, priceList, cfg)

	if len(p.Images) > 0 {
		first := p.Images[0]
		alt := p.Title
		if first.AltText != nil && strings.TrimSpace(*first.AltText) != "" {
			alt = *first.AltText
		}
		item.Image = &models.ItemImage{URL: first.URL, Alt: alt}
	}

	return item
}

// OrderSelection sorts the picked products by their explicit order
// index. The sort is stable, so products without distinct order
// values keep the sequence they were selected in.
func OrderSelection(selection []models.ProductSelection) []models.ProductSelection {
	ordered := make([]models.ProductSelection, len(selection))
	copy(ordered, selection)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})
	return ordered
}

// MapProducts turns the fetched products into catalog rows in the
// sequence the config asks for. Products the catalog did not return
// are skipped rather than rendered as holes.
func MapProducts(products []models.RawProduct, priceList *models.PriceList, cfg models.LinesheetConfig) []models.NormalizedCatalogItem {
	byID := make(map[string]models.RawProduct, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]models.NormalizedCatalogItem, 0, len(cfg.Products))
	for _, sel := range OrderSelection(cfg.Products) {
		p, ok := byID[sel.ProductID]
		if !ok {
			continue
		}
		if len(sel.VariantIDs) > 0 {
			p = restrictVariants(p, sel.VariantIDs)
		}
		items = append(items, MapProductToItem(p, priceList, cfg))
	}
	return items
}

// restrictVariants narrows a product to the chosen variant subset so
// size/color/price extraction only sees what the user picked. The
// original product is left untouched.
func restrictVariants(p models.RawProduct, variantIDs []string) models.RawProduct {
	wanted := make(map[string]bool, len(variantIDs))
	for _, id := range variantIDs {
		wanted[id] = true
	}

	var kept []models.Variant
	for _, v := range p.Variants {
		if wanted[v.ID] {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		// None of the requested variants exist anymore; keep them all
		// rather than producing an empty row.
		return p
	}
	p.Variants = kept
	return p
}
