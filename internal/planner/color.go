package planner

import (
	"fmt"
	"strconv"
	"strings"

	"docs2mcp/internal/gdocs"
	"docs2mcp/internal/model"
)

// ParseHexColor converts a #RRGGBB string (leading # optional, case
// insensitive) into the store's normalized [0,1] channel fractions.
func ParseHexColor(s string) (*gdocs.OptionalColor, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return nil, model.NewError(model.CodeInvalidIntent,
			fmt.Sprintf("invalid color %q: want #RRGGBB", s))
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, model.NewError(model.CodeInvalidIntent,
			fmt.Sprintf("invalid color %q: want #RRGGBB", s))
	}
	return &gdocs.OptionalColor{Color: &gdocs.Color{RGBColor: &gdocs.RGBColor{
		Red:   float64(v>>16&0xFF) / 255.0,
		Green: float64(v>>8&0xFF) / 255.0,
		Blue:  float64(v&0xFF) / 255.0,
	}}}, nil
}
