package scene

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type namedColor struct {
	name  string
	color rl.Color
}

// palette is the set of names a scene file may use for body colors.
var palette = []namedColor{
	{"White", rl.White},
	{"LightGray", rl.LightGray},
	{"Gray", rl.Gray},
	{"DarkGray", rl.DarkGray},
	{"Red", rl.Red},
	{"Maroon", rl.Maroon},
	{"Orange", rl.Orange},
	{"Gold", rl.Gold},
	{"Yellow", rl.Yellow},
	{"Lime", rl.Lime},
	{"Green", rl.Green},
	{"SkyBlue", rl.SkyBlue},
	{"Blue", rl.Blue},
	{"Purple", rl.Purple},
	{"Pink", rl.Pink},
	{"Beige", rl.Beige},
	{"Brown", rl.Brown},
}

// colorFromName accepts a palette name in any case or a "#rrggbbaa" hex
// string. Anything else draws white.
func colorFromName(name string) rl.Color {
	for _, nc := range palette {
		if strings.EqualFold(nc.name, name) {
			return nc.color
		}
	}
	var c rl.Color
	if n, _ := fmt.Sscanf(name, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); n == 4 {
		return c
	}
	return rl.White
}

// colorName is the inverse of colorFromName. Colors outside the palette are
// written as hex so they survive a save and reload.
func colorName(c rl.Color) string {
	for _, nc := range palette {
		if nc.color == c {
			return nc.name
		}
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
