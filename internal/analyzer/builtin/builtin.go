// Package builtin provides the sample analyzer types registered by the app.
package builtin

import (
	"fmt"
	"image"
	"image/color"

	"github.com/five82/livia/internal/analyzer"
)

// Type ids.
const (
	GrayscaleID = "grayscale"
	ThresholdID = "threshold"
)

// Register adds every builtin type to r.
func Register(r *analyzer.Registry) error {
	for _, m := range Types() {
		if err := r.Register(m); err != nil {
			return fmt.Errorf("register builtin analyzers: %w", err)
		}
	}
	return nil
}

// Types returns the metadata of every builtin type.
func Types() []analyzer.Metadata {
	return []analyzer.Metadata{Grayscale, Threshold}
}

// Grayscale converts frames to luminance, optionally inverted.
var Grayscale = analyzer.Metadata{
	ID:   GrayscaleID,
	Name: "Grayscale",
	Properties: []analyzer.Property{
		{ID: "invert", Name: "Invert", Type: analyzer.TypeBool, Default: false},
		{ID: "gain", Name: "Gain", Type: analyzer.TypeFloat, Default: 1.0,
			Hints: analyzer.Hints{Min: 0, Max: 4, Step: 0.1, Description: "Luminance multiplier"}},
		{ID: "revision", Name: "Revision", Type: analyzer.TypeInt, Default: 1, Hidden: true},
	},
	New: func(m analyzer.Metadata) analyzer.Analyzer {
		return &grayscale{Properties: analyzer.NewProperties(m)}
	},
}

// Threshold paints pixels above a luminance level with the foreground color
// and the rest with the background color.
var Threshold = analyzer.Metadata{
	ID:   ThresholdID,
	Name: "Threshold",
	Properties: []analyzer.Property{
		{ID: "level", Name: "Level", Type: analyzer.TypeInt, Default: 128,
			Hints: analyzer.Hints{Min: 0, Max: 255, Step: 1}},
		{ID: "foreground", Name: "Foreground", Type: analyzer.TypeColor, Default: analyzer.Color{R: 255, G: 255, B: 255}},
		{ID: "background", Name: "Background", Type: analyzer.TypeColor, Default: analyzer.Color{}},
		{ID: "labels", Name: "Labels", Type: analyzer.TypeStringList, Default: []string{"dark", "light"}},
		{ID: "mask", Name: "Mask file", Type: analyzer.TypeFile},
		{ID: "note", Name: "Note", Type: analyzer.TypeAny},
	},
	New: func(m analyzer.Metadata) analyzer.Analyzer {
		return &threshold{Properties: analyzer.NewProperties(m)}
	},
}

type grayscale struct {
	analyzer.Properties
}

func (g *grayscale) Analyze(frame image.Image) (image.Image, error) {
	if frame == nil {
		return nil, fmt.Errorf("grayscale: nil frame")
	}
	invert := g.Bool("invert")
	gain := g.Float("gain")

	b := frame.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := float64(luma(frame.At(x, y))) * gain
			if v > 255 {
				v = 255
			}
			l := uint8(v)
			if invert {
				l = 255 - l
			}
			out.SetGray(x, y, color.Gray{Y: l})
		}
	}
	return out, nil
}

type threshold struct {
	analyzer.Properties
}

func (t *threshold) Analyze(frame image.Image) (image.Image, error) {
	if frame == nil {
		return nil, fmt.Errorf("threshold: nil frame")
	}
	level := t.Int("level")
	fg, bg := t.Color("foreground"), t.Color("background")

	b := frame.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := bg
			if int(luma(frame.At(x, y))) > level {
				c = fg
			}
			out.Set(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return out, nil
}

func luma(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}
