package pixmatrix

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	pnm "github.com/jbuchbinder/gopnm"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

type EncodeOpt func(cfg *encodeConfig)

type encodeConfig struct {
	width, height uint
}

// WithSize resizes the image to width x height before encoding. A zero
// dimension preserves the aspect ratio. Sampling is nearest-neighbour, so
// uniform blocks keep their exact value.
func WithSize(width, height uint) EncodeOpt {
	return func(cfg *encodeConfig) {
		cfg.width = width
		cfg.height = height
	}
}

// ReadImage opens and decodes the image at path. PNG, JPEG, GIF, BMP, TIFF
// and PBM/PGM/PPM are recognised by content.
func ReadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%w %s: %v", ErrDecode, path, err)
	}
	return img, nil
}

// ReadMatrix parses the text matrix stored at path.
func ReadMatrix(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := NewDecoder(f).Decode()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

/*
WriteImage encodes img to path, choosing the format by extension: .pgm and
.pnm are written as binary graymaps, .gif through an exact 256-level gray
palette, and png, jpg, jpeg, bmp, tif and tiff through imaging. Other
extensions yield ErrUnsupportedFormat without creating the file.
*/
func WriteImage(path string, img image.Image) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	var format imaging.Format
	switch ext {
	case ".pgm", ".pnm":
	default:
		if format, err = imaging.FormatFromFilename(path); err != nil {
			return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", ErrWrite, cerr)
		}
	}()

	switch {
	case ext == ".pgm" || ext == ".pnm":
		err = pnm.Encode(f, img, pnm.PGM)
	case format == imaging.GIF:
		err = imaging.Encode(f, grayPaletted(img), format)
	default:
		err = imaging.Encode(f, img, format)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// EncodeFile converts the image at in to a text matrix written to out.
func EncodeFile(in, out string, opts ...EncodeOpt) error {
	var cfg encodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	img, err := ReadImage(in)
	if err != nil {
		return err
	}
	if cfg.width > 0 || cfg.height > 0 {
		img = resize.Resize(cfg.width, cfg.height, img, resize.NearestNeighbor)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := Encode(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// DecodeFile converts the text matrix at in to an image written to out. The
// matrix is parsed completely before out is created.
func DecodeFile(in, out string) error {
	g, err := ReadMatrix(in)
	if err != nil {
		return err
	}
	return WriteImage(out, g.Image())
}

var grayPalette = func() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}()

// grayPaletted maps img onto grayPalette with index == intensity, so the GIF
// encoder has nothing to quantize.
func grayPaletted(img image.Image) *image.Paletted {
	g := GridFromImage(img)
	p := image.NewPaletted(image.Rect(0, 0, g.Width, g.Height), grayPalette)
	for y := 0; y < g.Height; y++ {
		copy(p.Pix[y*p.Stride:y*p.Stride+g.Width], g.Row(y))
	}
	return p
}
