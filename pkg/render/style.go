package render

import (
	"hash/fnv"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/storyline/pkg/errors"
)

// Style supplies the presentation of storyline keys.
type Style interface {
	// ColorOf returns the stroke color of a storyline as a hex string.
	ColorOf(key string) string
	// LabelOf returns the text drawn at the end of a storyline.
	LabelOf(key string) string
	// TitleOf returns the tooltip of a storyline.
	TitleOf(key string) string
}

// Category10 is the default categorical color scheme.
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// goldenAngle spreads generated hues so neighbors stay distinguishable.
const goldenAngle = 137.50776405003785

// Palette assigns colors to keys in order. The first colors come from the
// scheme; later keys get generated HCL colors of similar chroma and
// lightness. Unknown keys hash onto the assigned colors, so ColorOf is
// total and deterministic.
type Palette struct {
	colors map[string]string
	order  []string
}

// PaletteOption configures [NewPalette].
type PaletteOption func(*paletteConfig)

type paletteConfig struct {
	scheme    []string
	overrides map[string]string
}

// WithScheme replaces the base color scheme.
func WithScheme(colors []string) PaletteOption {
	return func(c *paletteConfig) { c.scheme = colors }
}

// WithOverrides pins colors for specific keys.
func WithOverrides(colors map[string]string) PaletteOption {
	return func(c *paletteConfig) { c.overrides = colors }
}

// NewPalette assigns a color to each key. It fails with INVALID_STYLE when
// a scheme or override color is not a hex color.
func NewPalette(keys []string, opts ...PaletteOption) (*Palette, error) {
	cfg := paletteConfig{scheme: Category10}
	for _, opt := range opts {
		opt(&cfg)
	}
	for _, c := range cfg.scheme {
		if err := errors.ValidateColor(c); err != nil {
			return nil, err
		}
	}
	for _, c := range cfg.overrides {
		if err := errors.ValidateColor(c); err != nil {
			return nil, err
		}
	}

	p := &Palette{colors: make(map[string]string, len(keys))}
	i := 0
	for _, k := range keys {
		if _, dup := p.colors[k]; dup {
			continue
		}
		if c, ok := cfg.overrides[k]; ok {
			p.colors[k] = c
		} else {
			p.colors[k] = nthColor(cfg.scheme, i)
			i++
		}
		p.order = append(p.order, k)
	}
	return p, nil
}

// nthColor returns the n-th color of the scheme, generating one past its end.
func nthColor(scheme []string, n int) string {
	if n < len(scheme) {
		return scheme[n]
	}
	hue := math.Mod(float64(n-len(scheme))*goldenAngle+30, 360)
	return colorful.Hcl(hue, 0.55, 0.6).Clamped().Hex()
}

func (p *Palette) ColorOf(key string) string {
	if c, ok := p.colors[key]; ok {
		return c
	}
	if len(p.order) == 0 {
		return Category10[hashKey(key)%uint32(len(Category10))]
	}
	return p.colors[p.order[hashKey(key)%uint32(len(p.order))]]
}

func (p *Palette) LabelOf(key string) string { return key }
func (p *Palette) TitleOf(key string) string { return key }

func hashKey(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32()
}

// StyleFuncs adapts functions to a [Style]. Nil fields fall back to Base,
// or to the key itself and a hashed category-10 color when Base is nil.
type StyleFuncs struct {
	Base  Style
	Color func(key string) string
	Label func(key string) string
	Title func(key string) string
}

func (s StyleFuncs) ColorOf(key string) string {
	switch {
	case s.Color != nil:
		return s.Color(key)
	case s.Base != nil:
		return s.Base.ColorOf(key)
	}
	return Category10[hashKey(key)%uint32(len(Category10))]
}

func (s StyleFuncs) LabelOf(key string) string {
	switch {
	case s.Label != nil:
		return s.Label(key)
	case s.Base != nil:
		return s.Base.LabelOf(key)
	}
	return key
}

func (s StyleFuncs) TitleOf(key string) string {
	switch {
	case s.Title != nil:
		return s.Title(key)
	case s.Base != nil:
		return s.Base.TitleOf(key)
	}
	return key
}

// Blend mixes hex colors evenly in HCL space. Invalid colors are skipped;
// with no valid color Blend returns def.
func Blend(colors []string, def string) string {
	var acc colorful.Color
	n := 0
	for _, hex := range colors {
		c, err := colorful.Hex(hex)
		if err != nil {
			continue
		}
		n++
		if n == 1 {
			acc = c
			continue
		}
		acc = acc.BlendHcl(c, 1/float64(n))
	}
	if n == 0 {
		return def
	}
	return acc.Clamped().Hex()
}
