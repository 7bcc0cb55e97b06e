package mandel

import (
	"fmt"
	"math"
	"sort"
)

// RGB is one 8-bit-per-channel pixel.
type RGB struct {
	R, G, B uint8
}

// Palette maps an escape count to a colour. It must depend on n only.
type Palette func(n int) RGB

// MapColor colours an escape count. Points that never escaped are black.
func MapColor(n, maxIter int, p Palette) RGB {
	if n == maxIter {
		return RGB{}
	}
	if p == nil {
		p = Cubic
	}
	return p(n)
}

// Cubic is the default palette: r = n³, g = n, b = n², all mod 256.
func Cubic(n int) RGB {
	return RGB{R: mod256(n * n * n), G: mod256(n), B: mod256(n * n)}
}

// Classic reproduces the channel formulas of the first SDL viewer.
// trunc(sin n) is zero for every n != 0, so red stays off.
func Classic(n int) RGB {
	return RGB{R: mod256(n * int(math.Sin(float64(n)))), G: mod256(n * n), B: mod256(n)}
}

var wheel = [...]RGB{
	{255, 0, 0},
	{255, 255, 0},
	{0, 255, 0},
	{0, 255, 255},
	{0, 0, 255},
	{255, 0, 255},
}

// Wheel cycles through six saturated hues.
func Wheel(n int) RGB {
	return wheel[mod(n, len(wheel))]
}

// ultra is the 16 step gradient commonly used for escape-time renders.
var ultra = [...]RGB{
	{66, 30, 15},
	{25, 7, 26},
	{9, 1, 47},
	{4, 4, 73},
	{0, 7, 100},
	{12, 44, 138},
	{24, 82, 177},
	{57, 125, 209},
	{134, 181, 229},
	{211, 236, 248},
	{241, 233, 191},
	{248, 201, 95},
	{255, 170, 0},
	{204, 128, 0},
	{153, 87, 0},
	{106, 52, 3},
}

// Ultra cycles through a 16 entry blue/orange gradient.
func Ultra(n int) RGB {
	return ultra[mod(n, len(ultra))]
}

var palettes = map[string]Palette{
	"cubic":   Cubic,
	"classic": Classic,
	"wheel":   Wheel,
	"ultra":   Ultra,
}

// PaletteByName looks up a palette by its flag name.
func PaletteByName(name string) (Palette, error) {
	p, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q (have %v)", name, PaletteNames())
	}
	return p, nil
}

// PaletteNames returns the known palette names, sorted.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mod(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}

func mod256(n int) uint8 {
	return uint8(mod(n, 256))
}
