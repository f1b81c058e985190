package linesheet

import (
	"reflect"
	"testing"
)

func TestSortSizes(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "canonical order beats input order",
			input: []string{"XL", "S", "L", "M"},
			want:  []string{"S", "M", "L", "XL"},
		},
		{
			name:  "numeric sizes sort after letters",
			input: []string{"32", "28", "XL"},
			want:  []string{"XL", "28", "32"},
		},
		{
			name:  "unknown sizes sort last, alphabetically",
			input: []string{"OSFA", "M", "EU40", "S"},
			want:  []string{"S", "M", "EU40", "OSFA"},
		},
		{
			name:  "duplicates and casing collapse",
			input: []string{"m", "M", " s ", "S"},
			want:  []string{"S", "M"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortSizes(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SortSizes(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatSizeRange(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  string
	}{
		{
			name:  "single size unchanged",
			input: []string{"M"},
			want:  "M",
		},
		{
			name:  "dense run collapses largest-first",
			input: []string{"S", "M", "L", "XL"},
			want:  "XL - S",
		},
		{
			name:  "sparse endpoints list explicitly",
			input: []string{"S", "XXXL"},
			want:  "S, XXXL",
		},
		{
			name:  "numeric run collapses",
			input: []string{"28", "29", "30", "31", "32"},
			want:  "32 - 28",
		},
		{
			name:  "gap over eight lists explicitly",
			input: []string{"XXXS", "34"},
			want:  "XXXS, 34",
		},
		{
			name:  "unknown endpoint prevents collapse",
			input: []string{"S", "M", "OSFA"},
			want:  "S, M, OSFA",
		},
		{
			name:  "four of five in span still collapses",
			input: []string{"XS", "S", "M", "XL"},
			want:  "XL - XS",
		},
		{
			name:  "three of five in span lists explicitly",
			input: []string{"XS", "M", "XL"},
			want:  "XS, M, XL",
		},
		{
			name:  "empty set",
			input: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSizeRange(tt.input); got != tt.want {
				t.Errorf("FormatSizeRange(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
