// Package colors maps the catalog's canonical colour names to RGB hex codes.
package colors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownColor = errors.New("unknown basic color")

var rgbByName = map[string]string{
	"RED":    "FF0000",
	"PINK":   "FFC0CB",
	"ORANGE": "FFA500",
	"YELLOW": "FFFF00",
	"PURPLE": "800080",
	"GREEN":  "008000",
	"BLUE":   "0000FF",
	"BROWN":  "A52A2A",
	"WHITE":  "FFFFFF",
	"GREY":   "808080",
	"BLACK":  "000000",
	// multi-coloured items are a valid basic color without a single RGB value
	"MULTI": "",
}

// Resolve returns the RGB hex code for a basic color name, ignoring case.
func Resolve(name string) (string, error) {
	rgb, ok := rgbByName[strings.ToUpper(name)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return rgb, nil
}
