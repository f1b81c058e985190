package linesheet

import (
	"sort"
	"strings"
)

// ColorPalette maps merchant color names to the house names shown on
// linesheets. Lookups happen on upper-cased input; unknown names pass
// through unchanged. The palette is injectable so a shop can carry
// its own naming without touching the pipeline.
type ColorPalette map[string]string

// DefaultColorPalette is the stock normalization table.
var DefaultColorPalette = ColorPalette{
	"NAVY":       "DARK NAVY",
	"ROYAL BLUE": "AZURE BLUE",
	"LIGHT BLUE": "AZURE BLUE",
}

// Normalize upper-cases the name and applies the palette mapping.
func (p ColorPalette) Normalize(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if mapped, ok := p[name]; ok {
		return mapped
	}
	return name
}

// FormatColors joins a color set into one display string: unique
// values, ASCII-sorted, joined with "+". A single color is returned
// unchanged and an empty set yields the empty string (the extractor
// above this turns that into an absent field).
func FormatColors(colors []string) string {
	seen := make(map[string]bool, len(colors))
	unique := make([]string, 0, len(colors))
	for _, c := range colors {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		unique = append(unique, c)
	}

	if len(unique) == 0 {
		return ""
	}
	if len(unique) == 1 {
		return unique[0]
	}

	sort.Strings(unique)
	return strings.Join(unique, "+")
}
