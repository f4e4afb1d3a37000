// Package pixmatrix converts grayscale images to and from a plain-text pixel
// matrix: one row per line, values 0-255 separated by single spaces.
package pixmatrix

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"strconv"
	"strings"
)

type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes img to w as a text matrix.
func Encode(w io.Writer, img image.Image) error {
	return NewEncoder(w).Encode(img)
}

/*
Encode converts img to a pixel grid and writes it as a text matrix. Each row
is written in scan order as decimal values joined by a single space and
terminated by a line feed. For example, the 2x2 image

	[[0 255] [128 64]]

is written as

	0 255
	128 64
*/
func (enc *Encoder) Encode(img image.Image) error {
	return enc.EncodeGrid(GridFromImage(img))
}

// EncodeGrid writes g as a text matrix. A grid without rows or columns has
// no text form and yields ErrEmpty.
func (enc *Encoder) EncodeGrid(g *Grid) error {
	if g.Width <= 0 || g.Height <= 0 {
		return ErrEmpty
	}
	bw := bufio.NewWriter(enc.w)
	line := make([]byte, 0, g.Width*4)
	for y := 0; y < g.Height; y++ {
		line = line[:0]
		for x, v := range g.Row(y) {
			if x > 0 {
				line = append(line, ' ')
			}
			line = strconv.AppendUint(line, uint64(v), 10)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

type Decoder struct {
	r io.Reader
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads a text matrix from r and returns it as a gray image whose
// bounds start at the origin.
func Decode(r io.Reader) (*image.Gray, error) {
	g, err := NewDecoder(r).Decode()
	if err != nil {
		return nil, err
	}
	return g.Image(), nil
}

/*
Decode parses the whole text matrix. Lines end at "\n", "\r\n" or a lone
"\r" and have no length limit. Lines that are empty after trimming are
skipped rather than read as empty rows. Tokens are separated by any run of
spaces or tabs and must be base-10 integers in [0,255], optionally signed.
The first row fixes the grid width; a later row of any other length is a
*ShapeError.
*/
func (dec *Decoder) Decode() (*Grid, error) {
	scanner := bufio.NewScanner(dec.r)
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	scanner.Split(scanRows)

	var (
		g      = &Grid{}
		lineNo int
	)
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if g.Height == 0 {
			g.Width = len(fields)
		} else if len(fields) != g.Width {
			return nil, &ShapeError{Line: lineNo, Want: g.Width, Got: len(fields)}
		}
		for i, tok := range fields {
			v, err := parseValue(tok)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Column: i + 1, Token: tok, Err: err}
			}
			g.Pix = append(g.Pix, v)
		}
		g.Height++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if g.Height == 0 {
		return nil, ErrEmpty
	}
	return g, nil
}

func parseValue(tok string) (uint8, error) {
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			return 0, ErrRange
		}
		return 0, ErrSyntax
	}
	if v < 0 || v > 255 {
		return 0, ErrRange
	}
	return uint8(v), nil
}

// scanRows is a bufio.SplitFunc for "\n", "\r\n" and lone "\r" line endings.
func scanRows(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// A trailing '\r' may be the first half of "\r\n".
		if i+1 == len(data) && !atEOF {
			return 0, nil, nil
		}
		if i+1 < len(data) && data[i+1] == '\n' {
			return i + 2, data[:i], nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
