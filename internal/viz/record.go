package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
)

const (
	dotSize  = 4
	gifDelay = 2 // hundredths of a second
)

// Rasterize paints each lit sub-pixel as a dotSize square.
func (c *Canvas) Rasterize(fg color.Color) *image.Paletted {
	cw, ch := c.Dots()
	img := image.NewPaletted(image.Rect(0, 0, cw*dotSize, ch*dotSize), color.Palette{color.Black, fg})
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			if !c.IsSet(x, y) {
				continue
			}
			for py := 0; py < dotSize; py++ {
				for px := 0; px < dotSize; px++ {
					img.SetColorIndex(x*dotSize+px, y*dotSize+py, 1)
				}
			}
		}
	}
	return img
}

// FeltRGBA decodes the felt color; malformed colors fall back to white.
func (t Theme) FeltRGBA() color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(string(t.Felt), "#%2x%2x%2x", &r, &g, &b); err != nil {
		return color.RGBA{0xff, 0xff, 0xff, 0xff}
	}
	return color.RGBA{r, g, b, 0xff}
}

func (m *Model) captureFrame() {
	m.frames = append(m.frames, m.canvas.Rasterize(CurrentTheme.FeltRGBA()))
}

func (m *Model) saveGIF() error {
	if len(m.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, gifDelay)
	}
	f, err := os.Create(m.gifPath)
	if err != nil {
		return fmt.Errorf("create gif: %w", err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}
