package linesheet

import (
	"reflect"
	"sort"
	"strings"
	"testing"
)

func TestFormatColors(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  string
	}{
		{
			name:  "single color unchanged",
			input: []string{"BLACK"},
			want:  "BLACK",
		},
		{
			name:  "multiple colors sorted and joined",
			input: []string{"WHITE", "BLACK", "RED"},
			want:  "BLACK+RED+WHITE",
		},
		{
			name:  "duplicates collapse",
			input: []string{"BLACK", "BLACK", "WHITE"},
			want:  "BLACK+WHITE",
		},
		{
			name:  "empty set yields empty string",
			input: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatColors(tt.input); got != tt.want {
				t.Errorf("FormatColors(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatColorsIdempotent(t *testing.T) {
	input := []string{"OLIVE", "BLACK", "ECRU", "CAMEL"}
	first := FormatColors(input)

	// Splitting the output and re-formatting must reproduce it.
	again := FormatColors(strings.Split(first, "+"))
	if first != again {
		t.Errorf("FormatColors not idempotent: %q then %q", first, again)
	}

	parts := strings.Split(first, "+")
	if !sort.StringsAreSorted(parts) {
		t.Errorf("FormatColors output not sorted: %q", first)
	}

	want := append([]string(nil), input...)
	sort.Strings(want)
	if !reflect.DeepEqual(parts, want) {
		t.Errorf("FormatColors lost values: got %v, want %v", parts, want)
	}
}

func TestColorPaletteNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"NAVY", "DARK NAVY"},
		{"navy", "DARK NAVY"},
		{"ROYAL BLUE", "AZURE BLUE"},
		{"light blue", "AZURE BLUE"},
		{"Chartreuse", "CHARTREUSE"}, // unknown passes through upper-cased
	}

	for _, tt := range tests {
		if got := DefaultColorPalette.Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestColorPaletteInjectable(t *testing.T) {
	custom := ColorPalette{"JET": "JET BLACK"}
	if got := custom.Normalize("jet"); got != "JET BLACK" {
		t.Errorf("custom palette Normalize = %q, want JET BLACK", got)
	}
	// The custom palette must not inherit the default mappings.
	if got := custom.Normalize("NAVY"); got != "NAVY" {
		t.Errorf("custom palette leaked default mapping: %q", got)
	}
}
