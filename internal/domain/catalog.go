package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// hexPattern beschreibt einen 24-Bit-RGB-Wert in der Form #RRGGBB.
var hexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Zone ist ein fester, einzeln einfärbbarer Bereich des Overall-Schnitts.
type Zone struct {
	ID         string `json:"id" yaml:"id"`
	FabricType string `json:"fabric_type" yaml:"fabric_type"`
	View       string `json:"view" yaml:"view"`
}

// FabricType gruppiert Zonen und Farben, die miteinander kombinierbar sind.
type FabricType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PatternType string `json:"pattern_type"`
}

// Color ist eine auswählbare Farbe eines bestimmten Stofftyps.
type Color struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	HexValue   string `json:"hex_value"`
	FabricType string `json:"fabric_type"`
}

// ValidHex meldet, ob s ein Farbwert der Form #RRGGBB ist.
func ValidHex(s string) bool {
	return hexPattern.MatchString(s)
}

// NormalizeHex bringt einen Farbwert in die kanonische Großschreibung.
func NormalizeHex(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// RGB zerlegt einen gültigen #RRGGBB-Wert in seine Kanäle.
func RGB(hex string) (r, g, b int, ok bool) {
	if !ValidHex(hex) {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), true
}
