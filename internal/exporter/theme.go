package exporter

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	apperrors "storeinsight/internal/errors"
)

// Theme controls the look of every chart a ChartWriter draws. It is passed
// explicitly to the writer; there is no package-level style.
type Theme struct {
	Name string
	// Background fills the whole figure.
	Background color.Color
	// Face fills the data area only.
	Face color.Color
	Grid      bool
	GridColor color.Color
	// TickMarks draws tick marks on the axes.
	TickMarks bool
	// Spines draws the axis lines.
	Spines    bool
	AxisColor color.Color
	// Palette colours categorical series, pie wedges and grouped bars.
	Palette []color.Color
	// Sequential colours ranked bars, darkest first.
	Sequential []color.Color
}

// Supported theme names
const (
	ThemeWhiteGrid = "whitegrid"
	ThemeDarkGrid  = "darkgrid"
	ThemeWhite     = "white"
	ThemeTicks     = "ticks"
)

// deepPalette is the default categorical palette.
var deepPalette = mustColors(
	"#4c72b0", "#dd8452", "#55a868", "#c44e52", "#8172b3",
	"#937860", "#da8bc3", "#8c8c8c", "#ccb974", "#64b5cd",
)

var viridis = mustColors("#440154", "#3b528b", "#21918c", "#5ec962", "#fde725")

var (
	faceGrey  = color.RGBA{R: 0xea, G: 0xea, B: 0xf2, A: 0xff}
	lightGrid = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	axisGrey  = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

// ThemeFor returns the named theme
func ThemeFor(name string) (Theme, error) {
	t := Theme{
		Name:       strings.ToLower(name),
		Background: colornames.White,
		Face:       colornames.White,
		GridColor:  lightGrid,
		AxisColor:  axisGrey,
		Spines:     true,
		Palette:    deepPalette,
		Sequential: viridis,
	}

	switch t.Name {
	case ThemeWhiteGrid:
		t.Grid = true
	case ThemeDarkGrid:
		t.Grid = true
		t.Face = faceGrey
		t.GridColor = colornames.White
		t.Spines = false
	case ThemeWhite:
	case ThemeTicks:
		t.TickMarks = true
	default:
		return Theme{}, apperrors.NewConfigError(fmt.Sprintf("unknown chart theme %q", name), nil).
			WithContext("theme", name)
	}
	return t, nil
}

// DefaultTheme is the whitegrid theme
func DefaultTheme() Theme {
	t, _ := ThemeFor(ThemeWhiteGrid)
	return t
}

// Color returns palette entry i, wrapping around.
func (t Theme) Color(i int) color.Color {
	if len(t.Palette) == 0 {
		return colornames.Black
	}
	return t.Palette[i%len(t.Palette)]
}

// paletteFor resolves per-chart overrides, falling back to the theme palette.
func (t Theme) paletteFor(overrides []string) ([]color.Color, error) {
	if len(overrides) == 0 {
		return t.Palette, nil
	}
	out := make([]color.Color, len(overrides))
	for i, s := range overrides {
		c, err := ParseHexColor(s)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// ParseHexColor parses "#rrggbb" or "#rgb".
func ParseHexColor(s string) (color.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("invalid colour %q", s))
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("invalid colour %q", s))
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func mustColors(hex ...string) []color.Color {
	out := make([]color.Color, len(hex))
	for i, h := range hex {
		c, err := ParseHexColor(h)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}
