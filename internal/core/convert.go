package core

// convert.go normalizes raw spreadsheet cells into dashboard values.
//
// Workbooks exported by hand carry the usual artifacts: Excel formula
// prefixes (="2022"), stray quotes, years stored as floats (2022.0) in
// mixed-type columns and headers that differ only in case or accents.

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// numericRegex validates that a string is a plain number after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// CleanCell removes common spreadsheet artifacts from a cell value:
// surrounding whitespace, the ="..." formula prefix and surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// NormalizeYear converts a Year cell into a stable string.
// Integral numbers lose their fractional part ("2022.0" -> "2022");
// anything else is returned cleaned but otherwise untouched.
func NormalizeYear(s string) string {
	s = CleanCell(s)
	if !numericRegex.MatchString(s) {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return s
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseCount converts a count cell into a number.
// Empty cells count as zero. Thousands separators are accepted.
func ParseCount(s string) (float64, error) {
	s = CleanCell(s)
	if s == "" || s == "-" {
		return 0, nil
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if !numericRegex.MatchString(s) {
		return 0, fmt.Errorf("invalid number %q", s)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}

// FormatCount renders a value with thousands separators and no decimals,
// e.g. 1234567.4 -> "1,234,567".
func FormatCount(v float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d", int64(math.Round(v)))
}

// formatCell stringifies a cell the way it is measured for column widths.
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// foldHeader lowercases a header and strips accents so "Matrículas" and
// "MATRICULAS" compare equal.
func foldHeader(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, CleanCell(s))
	if err != nil {
		folded = CleanCell(s)
	}
	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}
