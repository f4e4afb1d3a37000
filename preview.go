package pixmatrix

import (
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/nfnt/resize"
)

type dot int

const (
	filled dot = 1
	nofill dot = 0
)

type PreviewOpt func(p *Previewer)

// WithThreshold sets the intensity at or below which a pixel is drawn as a dot.
func WithThreshold(level uint8) PreviewOpt {
	return func(p *Previewer) {
		p.threshold = level
	}
}

// If used, colors are inverted.
func WithInvertedColors() PreviewOpt {
	return func(p *Previewer) {
		p.invert = true
	}
}

// WithDithering diffuses the image onto black and white with Floyd-Steinberg
// before dots are placed, which simulates shaded regions.
func WithDithering() PreviewOpt {
	return func(p *Previewer) {
		p.dither = true
	}
}

// Previewer draws grayscale images as unicode braille, one symbol per 2x4
// pixel block, so a pixel grid can be inspected in a terminal.
type Previewer struct {
	writer    io.Writer // Output
	threshold uint8
	invert    bool // Invert colors
	dither    bool
}

func NewPreviewer(w io.Writer, opts ...PreviewOpt) *Previewer {
	p := Previewer{
		writer:    w,
		threshold: 127,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return &p
}

func (p *Previewer) Preview(img image.Image) error {
	var g *Grid
	if p.dither {
		g = p.diffuse(img)
	} else {
		g = GridFromImage(img)
	}

	for py := 0; py < g.Height; py += 4 {
		for px := 0; px < g.Width; px += 2 {
			var dots pattern
			// Draw left-right, top-bottom.
			for y := 0; y < 4; y++ {
				for x := 0; x < 2; x++ {
					// Braille symbols are 2x4, which may end up adding
					// pixels to the right or bottom of the image. In those
					// cases we just don't fill the dots.
					if px+x >= g.Width || py+y >= g.Height {
						dots[x][y] = nofill
						continue
					}
					dots[x][y] = p.dotAt(g.At(px+x, py+y))
				}
			}
			if _, err := p.writer.Write([]byte(dots.String())); err != nil {
				return err
			}
		}
		if _, err := p.writer.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	return nil
}

func (p *Previewer) dotAt(v uint8) dot {
	if v <= p.threshold {
		if p.invert {
			return nofill
		}
		return filled
	}
	if p.invert {
		return filled
	}
	return nofill
}

var monochrome = color.Palette{color.Gray{Y: 0}, color.Gray{Y: 255}}

// diffuse redraws img onto a black and white palette. Black lands at 0 and
// white at 255, so any threshold below 255 separates them.
func (p *Previewer) diffuse(img image.Image) *Grid {
	paletted := image.NewPaletted(img.Bounds(), monochrome)
	draw.FloydSteinberg.Draw(paletted, paletted.Bounds(), img, img.Bounds().Min)
	return GridFromImage(paletted)
}

// Fit scales img down so that it renders within cols x lines braille symbols.
// Images that already fit are returned unchanged.
func Fit(img image.Image, cols, lines int) image.Image {
	// Multiply cols by 2 since each braille symbol is 2 pixels wide
	// Multiply lines by 4 since each braille symbol is 4 pixels high
	width, height := uint(cols*2), uint(lines*4)
	bounds := img.Bounds()
	if cols <= 0 || lines <= 0 || (bounds.Dx() <= int(width) && bounds.Dy() <= int(height)) {
		return img
	}
	return resize.Thumbnail(width, height, img, resize.NearestNeighbor)
}

// Represents an 8 dot braille pattern using x,y coordinates. Eg:
// +----------+
// |(0,0)(1,0)|
// |(0,1)(1,1)|
// |(0,2)(1,2)|
// |(0,3)(1,3)|
// +----------+
type pattern [2][4]dot

// CodePoint maps each point in pattern to a braille number and
// calculates the corresponding unicode symbol.
// +------+
// |(1)(4)|
// |(2)(5)|
// |(3)(6)|
// |(7)(8)|
// +------+
// See https://en.wikipedia.org/wiki/Braille_Patterns#Identifying.2C_naming_and_ordering)
func (dots pattern) CodePoint() rune {
	lowEndian := [8]dot{dots[0][0], dots[0][1], dots[0][2], dots[1][0], dots[1][1], dots[1][2], dots[0][3], dots[1][3]}
	var v int
	for i, x := range lowEndian {
		v += int(x) << uint(i)
	}
	return rune(v) + '\u2800'
}

func (dots pattern) String() string {
	return string(dots.CodePoint())
}
