package core

import (
	"testing"
)

// ----------------------------------------------------------------------------
// CleanCell Tests
// ----------------------------------------------------------------------------

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// Basic cleaning
		{
			name:  "simple string unchanged",
			input: "Elementary",
			want:  "Elementary",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "surrounded by whitespace",
			input: "  North  ",
			want:  "North",
		},

		// Excel formula prefix handling
		{
			name:  "Excel formula with quotes",
			input: `="2022"`,
			want:  "2022",
		},
		{
			name:  "bare equals sign",
			input: "=SUM(A1)",
			want:  "SUM(A1)",
		},

		// Quote handling
		{
			name:  "double quotes removed",
			input: `"By Region"`,
			want:  "By Region",
		},
		{
			name:  "single quotes removed",
			input: `'By State'`,
			want:  "By State",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// NormalizeYear Tests
// ----------------------------------------------------------------------------

func TestNormalizeYear(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "integer year", input: "2022", want: "2022"},
		{name: "float year loses decimals", input: "2022.0", want: "2022"},
		{name: "float year with trailing zeros", input: "2021.000", want: "2021"},
		{name: "formula prefixed year", input: `="2020"`, want: "2020"},
		{name: "scientific notation", input: "2.023e3", want: "2023"},
		{name: "fractional value kept", input: "2022.5", want: "2022.5"},
		{name: "text label untouched", input: "2019-2020", want: "2019-2020"},
		{name: "empty", input: "", want: ""},
		{name: "whitespace trimmed", input: " 2018 ", want: "2018"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeYear(tt.input); got != tt.want {
				t.Errorf("NormalizeYear(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseCount Tests
// ----------------------------------------------------------------------------

func TestParseCount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "integer", input: "1234", want: 1234},
		{name: "decimal", input: "12.5", want: 12.5},
		{name: "thousands separators", input: "1,234,567", want: 1234567},
		{name: "spaces inside", input: "1 234", want: 1234},
		{name: "empty is zero", input: "", want: 0},
		{name: "dash is zero", input: "-", want: 0},
		{name: "negative", input: "-3", want: -3},
		{name: "text", input: "n/a", wantErr: true},
		{name: "infinity", input: "1e400", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCount(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCount(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseCount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// FormatCount Tests
// ----------------------------------------------------------------------------

func TestFormatCount(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{1234567.4, "1,234,567"},
		{1234567.6, "1,234,568"},
	}

	for _, tt := range tests {
		if got := FormatCount(tt.input); got != tt.want {
			t.Errorf("FormatCount(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFoldHeader(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"Matrículas com Bibliotecário", "MATRICULAS COM BIBLIOTECARIO"},
		{"Ano", " ano "},
		{"Schools  with   Library", "schools with library"},
	}

	for _, tt := range tests {
		if foldHeader(tt.a) != foldHeader(tt.b) {
			t.Errorf("foldHeader(%q) = %q, foldHeader(%q) = %q, want equal", tt.a, foldHeader(tt.a), tt.b, foldHeader(tt.b))
		}
	}
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{nil, ""},
		{"North", "North"},
		{float64(1200), "1200"},
		{12.5, "12.5"},
		{7, "7"},
	}

	for _, tt := range tests {
		if got := formatCell(tt.input); got != tt.want {
			t.Errorf("formatCell(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
