package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

const defaultConfigFile = "pixmatrix.yaml"

type Config struct {
	Encode  EncodeConfig  `yaml:"encode"`
	Decode  DecodeConfig  `yaml:"decode"`
	Preview PreviewConfig `yaml:"preview"`
}

type EncodeConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Size   string `yaml:"size"` // "W,H"; empty keeps the source size
}

type DecodeConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

type PreviewConfig struct {
	Threshold uint8 `yaml:"threshold"`
	Invert    bool  `yaml:"invert"`
	Dither    bool  `yaml:"dither"`
}

// DefaultConfig holds the file names the conversion has always used.
func DefaultConfig() Config {
	return Config{
		Encode: EncodeConfig{
			Input:  "img.pgm",
			Output: "ifmap.txt",
		},
		Decode: DecodeConfig{
			Input:  "ofmap.txt",
			Output: "ofmap.png",
		},
		Preview: PreviewConfig{
			Threshold: 127,
		},
	}
}

// LoadConfig reads path over the defaults. When path is empty the default
// file is tried and silently skipped if it does not exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %v", path, err)
	}
	if cfg.Encode.Size != "" {
		if _, _, err := parseDimensions(cfg.Encode.Size); err != nil {
			return cfg, fmt.Errorf("%s: encode.size: %v", path, err)
		}
	}
	return cfg, nil
}

// parseDimensions reads "W,H". Either side may be 0 but not both.
func parseDimensions(s string) (w, h int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%q must be comma separated, eg 128,128", s)
	}
	if w, err = strconv.Atoi(strings.Trim(parts[0], " ")); err != nil || w < 0 {
		return 0, 0, fmt.Errorf("%q: bad width", s)
	}
	if h, err = strconv.Atoi(strings.Trim(parts[1], " ")); err != nil || h < 0 {
		return 0, 0, fmt.Errorf("%q: bad height", s)
	}
	if w == 0 && h == 0 {
		return 0, 0, fmt.Errorf("%q: width and height are both zero", s)
	}
	return w, h, nil
}
