package linesheet

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/linesheet-app/linesheet-golang/internal/models"
)

// currencySymbols covers the currencies wholesale buyers actually see.
// Anything else falls back to "<CODE> <amount>".
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"KRW": "₩",
	"CAD": "CA$",
	"AUD": "A$",
	"NZD": "NZ$",
	"HKD": "HK$",
	"CHF": "CHF ",
	"SEK": "kr ",
	"DKK": "kr ",
	"NOK": "kr ",
}

// FormatPrice parses a decimal price string and formats it with the
// currency's symbol at two fraction digits. A string that does not
// parse is returned unchanged: the buyer sees the raw value rather
// than a blank or an error.
func FormatPrice(raw, currency string) string {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	code := strings.ToUpper(strings.TrimSpace(currency))
	if symbol, ok := currencySymbols[code]; ok {
		return symbol + amount.StringFixed(2)
	}
	if code == "" {
		return amount.StringFixed(2)
	}
	return code + " " + amount.StringFixed(2)
}

// ResolvePrices produces the formatted wholesale/MSRP pair for one
// product. Either side may come back nil; an unmatched price source
// falls through to absent, never to a value from another source.
func ResolvePrices(p models.RawProduct, priceList *models.PriceList, cfg models.LinesheetConfig) (wholesale, msrp *string) {
	if raw := resolveWholesale(p, priceList, cfg.PriceSource); raw != nil {
		formatted := FormatPrice(*raw, cfg.Currency)
		wholesale = &formatted
	}
	if raw := resolveMSRP(p); raw != nil {
		formatted := FormatPrice(*raw, cfg.Currency)
		msrp = &formatted
	}
	return wholesale, msrp
}

func resolveWholesale(p models.RawProduct, priceList *models.PriceList, source string) *string {
	switch source {
	case models.PriceSourcePriceList:
		if priceList == nil {
			return nil
		}
		for _, entry := range priceList.Entries {
			for _, v := range p.Variants {
				if entry.VariantID == v.ID {
					price := entry.Price
					return &price
				}
			}
		}
		return nil

	case models.PriceSourceMetafield:
		return findMetafield(p, "wholesale", "wholesale_price")

	default:
		// variant_price, and the fallback for unknown sources.
		if len(p.Variants) > 0 && strings.TrimSpace(p.Variants[0].Price) != "" {
			price := p.Variants[0].Price
			return &price
		}
		return nil
	}
}

func resolveMSRP(p models.RawProduct) *string {
	if v := findMetafield(p, "msrp", "compare_price"); v != nil {
		return v
	}
	if len(p.Variants) > 0 {
		first := p.Variants[0]
		if first.CompareAtPrice != nil && strings.TrimSpace(*first.CompareAtPrice) != "" {
			price := *first.CompareAtPrice
			return &price
		}
	}
	return nil
}
