package main

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/codegangsta/cli"
	"github.com/kevin-cantwell/pixmatrix"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("pixmatrix: ")

	// cli prints a failed action's error and exits 1 itself.
	newApp(os.Stdin, os.Stdout).Run(os.Args)
}

// runner carries the state shared by every command of one invocation.
type runner struct {
	stdin   io.Reader
	stdout  io.Writer
	cfg     Config
	verbose bool
}

func newApp(stdin io.Reader, stdout io.Writer) *cli.App {
	r := &runner{stdin: stdin, stdout: stdout, cfg: DefaultConfig()}

	app := cli.NewApp()
	app.Version = "0.1.0"
	app.Name = "pixmatrix"
	app.Usage = "Converts grayscale images to and from text matrices of pixel values."
	app.Writer = stdout
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "YAML `FILE` with default paths and preview settings. Defaults to ./" + defaultConfigFile + " if present.",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Logs each conversion to stderr.",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "encode",
			Usage:     "Writes a grayscale image as a text matrix.",
			ArgsUsage: "[image [matrix]]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "size,s",
					Usage: "`SIZE` = 128,128 resizes the image to 128x128 before encoding. A 0 keeps the aspect ratio.",
				},
			},
			Action: r.encode,
		},
		{
			Name:      "decode",
			Usage:     "Writes a text matrix as a grayscale image. The output format follows the extension.",
			ArgsUsage: "[matrix [image]]",
			Action:    r.decode,
		},
		{
			Name:      "preview",
			Usage:     "Draws an image or text matrix in the terminal as braille. Reads a matrix from stdin without input.",
			ArgsUsage: "[image|matrix.txt]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "fit,f",
					Usage: "`FIT` = 80,25 scales down the image to fit 80 columns and 25 lines.",
				},
				cli.IntFlag{
					Name:  "threshold,t",
					Usage: "`LEVEL` at or below which a pixel is drawn as a dot (0-255).",
				},
				cli.BoolFlag{
					Name:  "invert,i",
					Usage: "Inverts the image.",
				},
				cli.BoolFlag{
					Name:  "dither,d",
					Usage: "Diffuses gray levels with Floyd-Steinberg before drawing.",
				},
			},
			Action: r.preview,
		},
	}
	return app
}

// load reads the global flags and the config file. It runs inside each
// action so a bad config file is reported like any other failure.
func (r *runner) load(c *cli.Context) error {
	cfg, err := LoadConfig(c.GlobalString("config"))
	if err != nil {
		return err
	}
	r.cfg = cfg
	r.verbose = c.GlobalBool("verbose")
	return nil
}

func (r *runner) encode(c *cli.Context) error {
	if err := r.load(c); err != nil {
		return err
	}
	in := argOr(c, 0, r.cfg.Encode.Input)
	out := argOr(c, 1, r.cfg.Encode.Output)

	size := r.cfg.Encode.Size
	if c.IsSet("size") {
		size = c.String("size")
	}
	var opts []pixmatrix.EncodeOpt
	if size != "" {
		w, h, err := parseDimensions(size)
		if err != nil {
			return err
		}
		opts = append(opts, pixmatrix.WithSize(uint(w), uint(h)))
	}

	if err := pixmatrix.EncodeFile(in, out, opts...); err != nil {
		return err
	}
	r.logf("encoded %s -> %s", in, out)
	return nil
}

func (r *runner) decode(c *cli.Context) error {
	if err := r.load(c); err != nil {
		return err
	}
	in := argOr(c, 0, r.cfg.Decode.Input)
	out := argOr(c, 1, r.cfg.Decode.Output)
	if err := pixmatrix.DecodeFile(in, out); err != nil {
		return err
	}
	r.logf("decoded %s -> %s", in, out)
	return nil
}

func (r *runner) preview(c *cli.Context) error {
	if err := r.load(c); err != nil {
		return err
	}
	img, err := r.previewSource(c.Args().First())
	if err != nil {
		return err
	}

	var cols, lines int
	if c.IsSet("fit") {
		if cols, lines, err = parseDimensions(c.String("fit")); err != nil {
			return err
		}
	} else {
		cols, lines, err = pixmatrix.TerminalSize()
		if err != nil {
			cols, lines = 80, 25 // Small, but a pretty standard default
		}
		lines-- // leave room for the prompt
	}
	img = pixmatrix.Fit(img, cols, lines)

	threshold := r.cfg.Preview.Threshold
	if c.IsSet("threshold") {
		t := c.Int("threshold")
		if t < 0 || t > 255 {
			return fmt.Errorf("threshold %d out of range [0,255]", t)
		}
		threshold = uint8(t)
	}
	opts := []pixmatrix.PreviewOpt{pixmatrix.WithThreshold(threshold)}
	if r.cfg.Preview.Invert || c.Bool("invert") {
		opts = append(opts, pixmatrix.WithInvertedColors())
	}
	if r.cfg.Preview.Dither || c.Bool("dither") {
		opts = append(opts, pixmatrix.WithDithering())
	}
	return pixmatrix.NewPreviewer(r.stdout, opts...).Preview(img)
}

// previewSource loads input as a text matrix when it ends in .txt or is
// empty (stdin), and as an image otherwise.
func (r *runner) previewSource(input string) (image.Image, error) {
	switch {
	case input == "":
		return pixmatrix.Decode(r.stdin)
	case strings.EqualFold(filepath.Ext(input), ".txt"):
		g, err := pixmatrix.ReadMatrix(input)
		if err != nil {
			return nil, err
		}
		return g.Image(), nil
	default:
		return pixmatrix.ReadImage(input)
	}
}

func (r *runner) logf(format string, args ...interface{}) {
	if r.verbose {
		log.Printf(format, args...)
	}
}

func argOr(c *cli.Context, i int, fallback string) string {
	if arg := c.Args().Get(i); arg != "" {
		return arg
	}
	return fallback
}
