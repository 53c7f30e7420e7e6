package render

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"
)

// DefaultColormap is a reversed blue scale: dips in flux render light.
const DefaultColormap = "Blues_r"

const reverseSuffix = "_r"

var named = map[string]func() (palette.ColorMap, error){
	"heat": func() (palette.ColorMap, error) {
		return NewGradient(palette.Heat(16, 1).Colors())
	},
	"kindlmann": func() (palette.ColorMap, error) {
		return moreland.Kindlmann(), nil
	},
	"blackbody": func() (palette.ColorMap, error) {
		return moreland.BlackBody(), nil
	},
	"coolwarm": func() (palette.ColorMap, error) {
		return moreland.SmoothBlueRed(), nil
	},
}

// LookupColormap returns the colormap registered under name. Names are
// ColorBrewer palettes ("Blues", "RdBu", ...) or one of heat, kindlmann,
// blackbody and coolwarm; a trailing "_r" reverses the map.
func LookupColormap(name string) (palette.ColorMap, error) {
	if name == "" {
		name = DefaultColormap
	}
	base, reversed := strings.CutSuffix(name, reverseSuffix)

	var (
		cm  palette.ColorMap
		err error
	)
	if ctor, ok := named[strings.ToLower(base)]; ok {
		cm, err = ctor()
	} else {
		cm, err = brewerMap(base)
	}
	if err != nil {
		return nil, err
	}
	if reversed {
		cm = palette.Reverse(cm)
	}
	return cm, nil
}

// brewerNames are the ColorBrewer sequential and diverging schemes.
var brewerNames = []string{
	"Blues", "BuGn", "BuPu", "GnBu", "Greens", "Greys", "OrRd", "Oranges",
	"PuBu", "PuBuGn", "PuRd", "Purples", "RdPu", "Reds", "YlGn", "YlGnBu",
	"YlOrBr", "YlOrRd",
	"BrBG", "PRGn", "PiYG", "PuOr", "RdBu", "RdGy", "RdYlBu", "RdYlGn", "Spectral",
}

// ColormapNames lists the registered colormap names, without reversal.
func ColormapNames() []string {
	names := make([]string, 0, len(named)+len(brewerNames))
	for n := range named {
		names = append(names, n)
	}
	names = append(names, brewerNames...)
	sort.Strings(names)
	return names
}

func brewerMap(name string) (palette.ColorMap, error) {
	// brewer palettes top out at 8 to 12 classes depending on the scheme
	for n := 12; n >= 3; n-- {
		p, err := brewer.GetPalette(brewer.TypeAny, name, n)
		if err == nil {
			return NewGradient(p.Colors())
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownColormap, name)
}

// ColorAt returns the color for v, clamping v into the map's range. NaN
// maps to transparent.
func ColorAt(cm palette.ColorMap, v float64) color.Color {
	if math.IsNaN(v) {
		return color.Transparent
	}
	v = math.Max(cm.Min(), math.Min(cm.Max(), v))
	c, err := cm.At(v)
	if err != nil {
		return color.Transparent
	}
	return c
}

// Gradient is a palette.ColorMap interpolating evenly spaced control colors
// in CIE L*a*b* space.
type Gradient struct {
	stops    []colorful.Color
	min, max float64
	alpha    float64
}

// NewGradient builds a gradient from at least two control colors, ordered
// from the minimum to the maximum value.
func NewGradient(cs []color.Color) (*Gradient, error) {
	if len(cs) < 2 {
		return nil, fmt.Errorf("render: gradient needs at least 2 colors, got %d", len(cs))
	}
	stops := make([]colorful.Color, len(cs))
	for i, c := range cs {
		cc, ok := colorful.MakeColor(c)
		if !ok {
			return nil, fmt.Errorf("render: transparent control color at %d", i)
		}
		stops[i] = cc
	}
	return &Gradient{stops: stops, min: 0, max: 1, alpha: 1}, nil
}

func (g *Gradient) At(v float64) (color.Color, error) {
	switch {
	case math.IsNaN(v):
		return nil, palette.ErrNaN
	case v < g.min:
		return nil, palette.ErrUnderflow
	case v > g.max:
		return nil, palette.ErrOverflow
	}

	pos := 0.0
	if g.max > g.min {
		pos = (v - g.min) / (g.max - g.min) * float64(len(g.stops)-1)
	}
	i := int(pos)
	if i >= len(g.stops)-1 {
		i = len(g.stops) - 2
	}
	c := g.stops[i].BlendLab(g.stops[i+1], pos-float64(i)).Clamped()
	r, gr, b := c.RGB255()
	return color.NRGBA{R: r, G: gr, B: b, A: uint8(math.Round(g.alpha * 255))}, nil
}

func (g *Gradient) Max() float64       { return g.max }
func (g *Gradient) Min() float64       { return g.min }
func (g *Gradient) SetMax(v float64)   { g.max = v }
func (g *Gradient) SetMin(v float64)   { g.min = v }
func (g *Gradient) Alpha() float64     { return g.alpha }
func (g *Gradient) SetAlpha(a float64) { g.alpha = a }

// Palette samples n colors evenly from minimum to maximum.
func (g *Gradient) Palette(n int) palette.Palette {
	out := make(colorList, n)
	for i := range out {
		v := g.min
		if n > 1 {
			v = math.Min(g.max, g.min+(g.max-g.min)*float64(i)/float64(n-1))
		}
		c, err := g.At(v)
		if err != nil {
			c = color.Transparent
		}
		out[i] = c
	}
	return out
}

type colorList []color.Color

func (c colorList) Colors() []color.Color { return c }
