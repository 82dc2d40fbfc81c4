package scan

import (
	"fmt"
	"math"
	"strconv"

	"docremedy/internal/docx"
)

// ContrastRatio computes the WCAG 2.1 contrast ratio between two hex colors
// (with or without '#'). The result is in [1, 21], lighter color on top.
func ContrastRatio(fg, bg string) (float64, error) {
	lf, err := relativeLuminance(fg)
	if err != nil {
		return 0, fmt.Errorf("foreground: %w", err)
	}
	lb, err := relativeLuminance(bg)
	if err != nil {
		return 0, fmt.Errorf("background: %w", err)
	}
	if lf < lb {
		lf, lb = lb, lf
	}
	return (lf + 0.05) / (lb + 0.05), nil
}

// relativeLuminance implements the WCAG sRGB luminance formula.
func relativeLuminance(hex string) (float64, error) {
	hex = docx.NormalizeHex(hex)
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid hex color %q", hex)
	}
	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid hex color %q", hex)
		}
		c := float64(v) / 255
		if c <= 0.04045 {
			c = c / 12.92
		} else {
			c = math.Pow((c+0.055)/1.055, 2.4)
		}
		ch[i] = c
	}
	return 0.2126*ch[0] + 0.7152*ch[1] + 0.0722*ch[2], nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
