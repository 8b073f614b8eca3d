package ui

import (
	"hash/fnv"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/five82/lanes/internal/prefs"
	"github.com/five82/lanes/internal/trace"
)

// baseHue is where the kind wheel starts.
const baseHue = 120.0

// palette maps event labels or kinds to fill colors.
type palette struct {
	mode       string
	saturation float64
	lightness  float64
	kinds      map[trace.LabelID]string
	labels     map[trace.LabelID]string
	store      *trace.Store
}

func newPalette(store *trace.Store, theme Theme, mode string) *palette {
	p := &palette{
		mode:       mode,
		saturation: theme.Saturation,
		lightness:  theme.Lightness,
		kinds:      make(map[trace.LabelID]string),
		labels:     make(map[trace.LabelID]string),
		store:      store,
	}
	kinds := store.Kinds()
	for i, id := range kinds {
		hue := math.Mod(baseHue+float64(i)*360/float64(len(kinds)), 360)
		p.kinds[id] = colorful.Hsl(hue, p.saturation, p.lightness).Hex()
	}
	return p
}

// color returns the fill for an event with the given label and kind.
func (p *palette) color(label, kind trace.LabelID) string {
	if p.mode == prefs.ColorByLabel {
		if c, ok := p.labels[label]; ok {
			return c
		}
		c := colorful.Hsl(hashHue(p.store.Label(label)), p.saturation, p.lightness).Hex()
		p.labels[label] = c
		return c
	}
	if c, ok := p.kinds[kind]; ok {
		return c
	}
	return colorful.Hsl(baseHue, p.saturation, p.lightness).Hex()
}

// hashHue spreads strings around the color wheel.
func hashHue(s string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return float64(h.Sum32() % 360)
}
