package transcript

import (
	"strings"
	"unicode"
)

// asciiDigits rewrites every Unicode decimal digit (full-width, Arabic-Indic,
// Devanagari, ...) as its ASCII equivalent. Nd runs in the Unicode tables
// always start at a zero, so the value is the offset into the run modulo 10.
func asciiDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x80 || !unicode.IsDigit(r) {
			return r
		}
		if v, ok := digitValue(r); ok {
			return '0' + v
		}
		return r
	}, s)
}

func digitValue(r rune) (rune, bool) {
	for _, rg := range unicode.Nd.R16 {
		if rg.Stride == 1 && r >= rune(rg.Lo) && r <= rune(rg.Hi) {
			return (r - rune(rg.Lo)) % 10, true
		}
	}
	for _, rg := range unicode.Nd.R32 {
		if rg.Stride == 1 && r >= rune(rg.Lo) && r <= rune(rg.Hi) {
			return (r - rune(rg.Lo)) % 10, true
		}
	}
	return 0, false
}
