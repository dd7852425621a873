package grid

import (
	"strconv"
	"strings"

	"github.com/arborcap/tablescout/pkg/tablescout/models"
)

var numberCleaner = strings.NewReplacer("$", "", ",", "", "%", "")

// parseNumber parses a display string as a number, tolerating the
// currency, thousands-separator, percent, and accounting-negative
// formatting common in financial workbooks. Returns nil when the
// string is not numeric.
func parseNumber(s string) *float64 {
	clean := strings.TrimSpace(numberCleaner.Replace(s))
	if clean == "" {
		return nil
	}
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		clean = "-" + clean[1:len(clean)-1]
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseARGB parses a hex color string ("1F3864", "#1F3864", or ARGB
// "FF1F3864") into an RGB triple. Returns nil for anything else.
func parseARGB(s string) *models.RGB {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 8 {
		s = s[2:]
	}
	if len(s) != 6 {
		return nil
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil
	}
	return &models.RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8 & 0xff),
		B: uint8(v & 0xff),
	}
}
