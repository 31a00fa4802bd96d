// Package theme is the color theme registry for invoice rendering.
//
// A Theme is a named palette of nine semantic colors that the layout engine
// applies uniformly across one rendered page. Themes are static data: the
// built-in palettes are defined once at init and never mutated. Lookup never
// fails: an unrecognized name falls back to the default "Classic" palette,
// so rendering cannot abort because a persisted theme name went stale.
package theme

import (
	"fmt"
	"strconv"
)

// DefaultName is the palette used when a requested theme name is unknown.
const DefaultName = "Classic"

// Color is an RGB color with 8-bit channels.
type Color struct {
	R, G, B int
}

// ParseHex parses a "#rrggbb" hex color string.
func ParseHex(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, fmt.Errorf("theme: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("theme: invalid hex color %q: %w", s, err)
	}
	return Color{
		R: int(v >> 16 & 0xff),
		G: int(v >> 8 & 0xff),
		B: int(v & 0xff),
	}, nil
}

func mustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Theme is a named, immutable palette of semantic colors.
type Theme struct {
	Name             string
	Primary          Color // sidebar and total bar fill
	Secondary        Color
	Accent           Color // highlight band, table header, footer headings
	HeaderBar        Color // middle banner layer
	HeaderBg         Color // outer banner layer and accent strip
	TextLight        Color
	TextDark         Color
	TableBgPrimary   Color // Qty / Unit / Total column group
	TableBgSecondary Color // Description / Unit Price column group
}

// palettes holds the built-in themes in presentation order.
var palettes = []Theme{
	{Name: "Classic", Primary: mustHex("#14263a"), Secondary: mustHex("#909193"), Accent: mustHex("#fe2746"), HeaderBar: mustHex("#8f9194"), HeaderBg: mustHex("#edefec"), TextLight: mustHex("#ffffff"), TextDark: mustHex("#14263b"), TableBgPrimary: mustHex("#eceeeb"), TableBgSecondary: mustHex("#fbfbf9")},
	{Name: "Sapphire & Gold", Primary: mustHex("#0F2C59"), Secondary: mustHex("#5A6D8C"), Accent: mustHex("#D4AF37"), HeaderBar: mustHex("#5A6D8C"), HeaderBg: mustHex("#F5F5F5"), TextLight: mustHex("#FFFFFF"), TextDark: mustHex("#0A1D3A"), TableBgPrimary: mustHex("#EAEFF5"), TableBgSecondary: mustHex("#FFFFFF")},
	{Name: "Emerald & Silver", Primary: mustHex("#0D4C46"), Secondary: mustHex("#5E8C82"), Accent: mustHex("#00A896"), HeaderBar: mustHex("#5E8C82"), HeaderBg: mustHex("#E8F5E9"), TextLight: mustHex("#FFFFFF"), TextDark: mustHex("#072A26"), TableBgPrimary: mustHex("#D8EBE4"), TableBgSecondary: mustHex("#F7FBF9")},
	{Name: "Ruby & Slate", Primary: mustHex("#4A0E1A"), Secondary: mustHex("#8C5A66"), Accent: mustHex("#D90429"), HeaderBar: mustHex("#8C5A66"), HeaderBg: mustHex("#FCE4E8"), TextLight: mustHex("#FFFFFF"), TextDark: mustHex("#2D0810"), TableBgPrimary: mustHex("#F6DDE2"), TableBgSecondary: mustHex("#FCF6F7")},
	{Name: "Amethyst & Pearl", Primary: mustHex("#4C3B4D"), Secondary: mustHex("#8C7A8C"), Accent: mustHex("#A480F2"), HeaderBar: mustHex("#8C7A8C"), HeaderBg: mustHex("#F4F1F5"), TextLight: mustHex("#FFFFFF"), TextDark: mustHex("#2E232E"), TableBgPrimary: mustHex("#EBE5EC"), TableBgSecondary: mustHex("#FBF9FB")},
	{Name: "Ocean & Coral", Primary: mustHex("#0A4D68"), Secondary: mustHex("#5A8C9E"), Accent: mustHex("#FF7B54"), HeaderBar: mustHex("#5A8C9E"), HeaderBg: mustHex("#E6F4F1"), TextLight: mustHex("#FFFFFF"), TextDark: mustHex("#062D3D"), TableBgPrimary: mustHex("#D6EAE1"), TableBgSecondary: mustHex("#F6FAF8")},
	{Name: "Sunset & Vineyard", Primary: mustHex("#4A2545"), Secondary: mustHex("#8C6A87"), Accent: mustHex("#FF8C42"), HeaderBar: mustHex("#8C6A87"), HeaderBg: mustHex("#FCEEE4"), TextLight: mustHex("#FFFFFF"), TextDark: mustHex("#2C1629"), TableBgPrimary: mustHex("#F6E6D8"), TableBgSecondary: mustHex("#FCFAF7")},
	{Name: "Forest & Birch", Primary: mustHex("#2C3E50"), Secondary: mustHex("#5D6D7E"), Accent: mustHex("#18BC9C"), HeaderBar: mustHex("#5D6D7E"), HeaderBg: mustHex("#ECF0F1"), TextLight: mustHex("#FFFFFF"), TextDark: mustHex("#17202A"), TableBgPrimary: mustHex("#E1E8EA"), TableBgSecondary: mustHex("#F8F9F9")},
	{Name: "Midnight & Mint", Primary: mustHex("#1D2D44"), Secondary: mustHex("#5A6B8A"), Accent: mustHex("#66FCF1"), HeaderBar: mustHex("#5A6B8A"), HeaderBg: mustHex("#F0F7F8"), TextLight: mustHex("#FFFFFF"), TextDark: mustHex("#0B0C10"), TableBgPrimary: mustHex("#D6E9E8"), TableBgSecondary: mustHex("#F5FAFA")},
	{Name: "Charcoal & Amber", Primary: mustHex("#252525"), Secondary: mustHex("#555555"), Accent: mustHex("#FFC700"), HeaderBar: mustHex("#555555"), HeaderBg: mustHex("#F5F5F5"), TextLight: mustHex("#FFFFFF"), TextDark: mustHex("#000000"), TableBgPrimary: mustHex("#EAEAEA"), TableBgSecondary: mustHex("#FFFFFF")},
	{Name: "Plum & Copper", Primary: mustHex("#5D3A63"), Secondary: mustHex("#9A7AA0"), Accent: mustHex("#B87333"), HeaderBar: mustHex("#9A7AA0"), HeaderBg: mustHex("#F4EFF5"), TextLight: mustHex("#FFFFFF"), TextDark: mustHex("#3A243D"), TableBgPrimary: mustHex("#EBE2EC"), TableBgSecondary: mustHex("#FBF8FB")},
	{Name: "Teal & Terracotta", Primary: mustHex("#008080"), Secondary: mustHex("#5AA0A0"), Accent: mustHex("#E2725B"), HeaderBar: mustHex("#5AA0A0"), HeaderBg: mustHex("#E6F2F2"), TextLight: mustHex("#FFFFFF"), TextDark: mustHex("#004D4D"), TableBgPrimary: mustHex("#D6E7E7"), TableBgSecondary: mustHex("#F6FBFB")},
}

var byName = func() map[string]Theme {
	m := make(map[string]Theme, len(palettes))
	for _, t := range palettes {
		m[t.Name] = t
	}
	return m
}()

// Lookup returns the theme with the given name, or the default theme when
// the name is unknown or empty.
func Lookup(name string) Theme {
	if t, ok := byName[name]; ok {
		return t
	}
	return byName[DefaultName]
}

// Default returns the default theme.
func Default() Theme {
	return byName[DefaultName]
}

// Names returns the built-in theme names in presentation order.
func Names() []string {
	names := make([]string, len(palettes))
	for i, t := range palettes {
		names[i] = t.Name
	}
	return names
}
