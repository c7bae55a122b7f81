package pipeline

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"
)

// Source produces frames for the processor.
type Source interface {
	Next() (image.Image, error)
}

// ImageSource repeats a single still image.
type ImageSource struct {
	frame image.Image
}

// OpenImage decodes the PNG or JPEG file at path.
func OpenImage(path string) (*ImageSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode input %s: %w", path, err)
	}
	return &ImageSource{frame: img}, nil
}

func (s *ImageSource) Next() (image.Image, error) {
	return s.frame, nil
}

// PatternSource generates a moving gradient, used when no input is open or
// a device is selected.
type PatternSource struct {
	Width, Height int
	tick          int
}

// NewPatternSource returns a width x height test pattern.
func NewPatternSource(width, height int) *PatternSource {
	return &PatternSource{Width: width, Height: height}
}

func (s *PatternSource) Next() (image.Image, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("pattern size %dx%d is empty", s.Width, s.Height)
	}
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			v := uint8((x + y + s.tick) * 255 / (s.Width + s.Height))
			img.Set(x, y, color.RGBA{R: v, G: uint8(y * 255 / s.Height), B: 255 - v, A: 255})
		}
	}
	s.tick = (s.tick + 1) % (s.Width + s.Height)
	return img, nil
}

// Feed submits a frame from src every interval until ctx is cancelled or
// playing reports false. Source errors end the feed.
func Feed(ctx context.Context, p *Processor, src Source, interval time.Duration, playing func() bool) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if playing != nil && !playing() {
			return nil
		}
		frame, err := src.Next()
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}
		p.Submit(frame)
	}
}
