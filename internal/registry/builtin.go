package registry

import "github.com/scbrown/pixelsrc/internal/model"

// builtinPalettes are the palettes referenced with the @name syntax.
// Color sets follow the lospec reference pages for each system.
var builtinPalettes = map[string]model.Palette{
	"gameboy": {
		Name: "gameboy",
		Colors: map[string]string{
			"{_}":        "#00000000",
			"{lightest}": "#9BBC0F",
			"{light}":    "#8BAC0F",
			"{dark}":     "#306230",
			"{darkest}":  "#0F380F",
		},
	},
	"nes": {
		Name: "nes",
		Colors: map[string]string{
			"{_}":      "#00000000",
			"{black}":  "#000000",
			"{white}":  "#FCFCFC",
			"{red}":    "#A80020",
			"{green}":  "#00A800",
			"{blue}":   "#0058F8",
			"{cyan}":   "#00B8D8",
			"{yellow}": "#F8D800",
			"{orange}": "#F83800",
			"{pink}":   "#F878F8",
			"{brown}":  "#503000",
			"{gray}":   "#7C7C7C",
			"{skin}":   "#FCB8B8",
		},
	},
	"pico8": {
		Name: "pico8",
		Colors: map[string]string{
			"{_}":           "#00000000",
			"{black}":       "#000000",
			"{dark_blue}":   "#1D2B53",
			"{dark_purple}": "#7E2553",
			"{dark_green}":  "#008751",
			"{brown}":       "#AB5236",
			"{dark_gray}":   "#5F574F",
			"{light_gray}":  "#C2C3C7",
			"{white}":       "#FFF1E8",
			"{red}":         "#FF004D",
			"{orange}":      "#FFA300",
			"{yellow}":      "#FFEC27",
			"{green}":       "#00E436",
			"{blue}":        "#29ADFF",
			"{indigo}":      "#83769C",
			"{pink}":        "#FF77A8",
			"{peach}":       "#FFCCAA",
		},
	},
	"grayscale": {
		Name: "grayscale",
		Colors: map[string]string{
			"{_}":     "#00000000",
			"{white}": "#FFFFFF",
			"{gray1}": "#DFDFDF",
			"{gray2}": "#BFBFBF",
			"{gray3}": "#9F9F9F",
			"{gray4}": "#7F7F7F",
			"{gray5}": "#5F5F5F",
			"{gray6}": "#3F3F3F",
			"{black}": "#000000",
		},
	},
	"1bit": {
		Name: "1bit",
		Colors: map[string]string{
			"{_}":     "#00000000",
			"{black}": "#000000",
			"{white}": "#FFFFFF",
		},
	},
}

// Builtin returns a built-in palette by name. Lookup is case sensitive.
func Builtin(name string) (model.Palette, bool) {
	p, ok := builtinPalettes[name]
	return p, ok
}

// BuiltinNames lists all built-in palette names in no particular order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinPalettes))
	for name := range builtinPalettes {
		names = append(names, name)
	}
	return names
}
