package pixmatrix

import (
	"image"
	"image/color"
)

// Grid is a rectangular array of 8-bit intensities stored row-major.
// Pixel (x, y) lives at Pix[y*Width+x].
type Grid struct {
	Width  int
	Height int
	Pix    []uint8
}

func (g *Grid) At(x, y int) uint8 {
	return g.Pix[y*g.Width+x]
}

func (g *Grid) Set(x, y int, v uint8) {
	g.Pix[y*g.Width+x] = v
}

// Row returns the y'th row. The slice aliases the grid.
func (g *Grid) Row(y int) []uint8 {
	return g.Pix[y*g.Width : (y+1)*g.Width]
}

// Image returns the grid as a gray image anchored at the origin.
func (g *Grid) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	copy(img.Pix, g.Pix)
	return img
}

/*
GridFromImage reads every pixel of img in row-major scan order. Gray images are
copied as-is; any other color model goes through color.GrayModel, so 16-bit
samples keep their high byte and color samples are reduced to luma.

The returned grid is empty (zero width or height) if img has empty bounds.
*/
func GridFromImage(img image.Image) *Grid {
	bounds := img.Bounds()
	g := &Grid{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
	g.Pix = make([]uint8, g.Width*g.Height)

	if gray, ok := img.(*image.Gray); ok {
		for y := 0; y < g.Height; y++ {
			start := gray.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(g.Row(y), gray.Pix[start:start+g.Width])
		}
		return g
	}

	// An image's bounds do not necessarily start at (0, 0), so the two loops start
	// at bounds.Min.Y and bounds.Min.X. Looping over Y first and X second is more
	// likely to result in better memory access patterns than X first and Y second.
	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			c := color.GrayModel.Convert(img.At(px, py)).(color.Gray)
			g.Set(px-bounds.Min.X, py-bounds.Min.Y, c.Y)
		}
	}
	return g
}
