package linesheet

import (
	"strings"

	"github.com/linesheet-app/linesheet-golang/internal/models"
)

// fieldSource is one candidate provider for a field value. Extractors
// are ordered lists of these, tried in order, stopping at the first
// one that yields a value. A nil result all the way down means the
// field is absent, which downstream reads as "do not render".
type fieldSource func(p models.RawProduct) *string

func firstValue(p models.RawProduct, sources []fieldSource) *string {
	for _, source := range sources {
		if v := source(p); v != nil {
			return v
		}
	}
	return nil
}

// findMetafield returns the value of the first metafield whose key
// exactly matches one of the given keys. The namespace is ignored;
// if two namespaces carry the same key, whichever the API returned
// first wins.
func findMetafield(p models.RawProduct, keys ...string) *string {
	for _, key := range keys {
		for _, mf := range p.Metafields {
			if mf.Key == key && strings.TrimSpace(mf.Value) != "" {
				v := mf.Value
				return &v
			}
		}
	}
	return nil
}

func metafieldSource(keys ...string) fieldSource {
	return func(p models.RawProduct) *string {
		return findMetafield(p, keys...)
	}
}

// ExtractStyleNumber prefers the SKU of the first variant carrying a
// non-empty SKU, then the style_number/style metafields. A missing
// style number is not an error, it just means "unknown style".
func ExtractStyleNumber(p models.RawProduct) *string {
	sources := []fieldSource{
		styleFromVariantSKU,
		metafieldSource("style_number", "style"),
	}
	return firstValue(p, sources)
}

func styleFromVariantSKU(p models.RawProduct) *string {
	for _, v := range p.Variants {
		if v.SKU != nil && strings.TrimSpace(*v.SKU) != "" {
			sku := *v.SKU
			return &sku
		}
	}
	return nil
}

// ExtractSeason reads the season/collection metafields.
func ExtractSeason(p models.RawProduct) *string {
	return firstValue(p, []fieldSource{metafieldSource("season", "collection")})
}

// ExtractColor scans every variant's selected options for one named
// "color" (case-insensitive) and formats the unique upper-cased
// values. When no variant carries a color option it falls back to the
// color/colors metafield, split on , ; or |, with each token run
// through the palette. Returns nil when no source yields anything.
func ExtractColor(p models.RawProduct, palette ColorPalette) *string {
	colors := optionValues(p, "color")

	if len(colors) == 0 {
		if raw := findMetafield(p, "color", "colors"); raw != nil {
			for _, token := range strings.FieldsFunc(*raw, func(r rune) bool {
				return r == ',' || r == ';' || r == '|'
			}) {
				if token = strings.TrimSpace(token); token != "" {
					colors = append(colors, palette.Normalize(token))
				}
			}
		}
	}

	if len(colors) == 0 {
		return nil
	}
	formatted := FormatColors(colors)
	return &formatted
}

// ExtractSizes scans variant options named "size" and formats them as
// a range. The metafield fallback (sizes/size) is used verbatim, not
// parsed into a set. Returns nil when neither source yields anything.
func ExtractSizes(p models.RawProduct) *string {
	sizes := optionValues(p, "size")
	if len(sizes) > 0 {
		formatted := FormatSizeRange(sizes)
		return &formatted
	}
	return findMetafield(p, "sizes", "size")
}

// optionValues collects the unique upper-cased values of the named
// selected option across all variants. Deduplication is by set;
// quantity information is deliberately not carried through.
func optionValues(p models.RawProduct, name string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, v := range p.Variants {
		for _, opt := range v.SelectedOptions {
			if !strings.EqualFold(opt.Name, name) {
				continue
			}
			value := strings.ToUpper(strings.TrimSpace(opt.Value))
			if value == "" || seen[value] {
				continue
			}
			seen[value] = true
			values = append(values, value)
		}
	}
	return values
}
