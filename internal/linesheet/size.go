package linesheet

import (
	"sort"
	"strconv"
	"strings"
)

// canonicalSizes is the fixed small-to-large clothing size order used
// to sort size sets and decide whether they collapse into a range.
// Numeric sizes 28..52 sort after the lettered run.
var canonicalSizes = buildCanonicalSizes()

func buildCanonicalSizes() []string {
	sizes := []string{"XXXS", "XXS", "XS", "S", "M", "L", "XL", "XXL", "XXXL", "XXXXL"}
	for n := 28; n <= 52; n++ {
		sizes = append(sizes, strconv.Itoa(n))
	}
	return sizes
}

var canonicalSizeIndex = func() map[string]int {
	index := make(map[string]int, len(canonicalSizes))
	for i, s := range canonicalSizes {
		index[s] = i
	}
	return index
}()

// How far apart (in canonical steps) the smallest and largest size may
// be for the set to still read as one range, and how much of that span
// must actually be present. Sparser sets fall through to an explicit list.
const (
	maxRangeGap     = 8
	minRangeDensity = 0.8
)

// SortSizes returns the sizes ordered by the canonical size order.
// Sizes not in the canonical list sort after all canonical ones,
// alphabetically among themselves. Duplicates are dropped.
func SortSizes(sizes []string) []string {
	seen := make(map[string]bool, len(sizes))
	unique := make([]string, 0, len(sizes))
	for _, s := range sizes {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		unique = append(unique, s)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		ii, iok := canonicalSizeIndex[unique[i]]
		ji, jok := canonicalSizeIndex[unique[j]]
		switch {
		case iok && jok:
			return ii < ji
		case iok:
			return true
		case jok:
			return false
		default:
			return unique[i] < unique[j]
		}
	})
	return unique
}

// FormatSizeRange turns a size set into one display string.
// A single size is returned unchanged. A dense run of canonical sizes
// collapses to "<largest> - <smallest>" (largest first is the display
// convention buyers expect on linesheets). Everything else is the
// sorted sizes joined with ", ".
func FormatSizeRange(sizes []string) string {
	sorted := SortSizes(sizes)
	if len(sorted) == 0 {
		return ""
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	first, firstOK := canonicalSizeIndex[sorted[0]]
	last, lastOK := canonicalSizeIndex[sorted[len(sorted)-1]]
	if firstOK && lastOK && last-first <= maxRangeGap && rangeDensity(sorted, first, last) >= minRangeDensity {
		return sorted[len(sorted)-1] + " - " + sorted[0]
	}

	return strings.Join(sorted, ", ")
}

// rangeDensity is the share of canonical sizes in [first, last] that
// the set actually contains.
func rangeDensity(sorted []string, first, last int) float64 {
	span := last - first + 1
	if span <= 0 {
		return 0
	}
	present := 0
	for _, s := range sorted {
		if i, ok := canonicalSizeIndex[s]; ok && i >= first && i <= last {
			present++
		}
	}
	return float64(present) / float64(span)
}
