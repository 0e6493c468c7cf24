// Package config holds the process-wide configuration, read from a TOML
// file and overridden by flags and the environment.
package config

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml"

	"github.com/ironsheep/pixel-tools/internal/codec"
	"github.com/ironsheep/pixel-tools/internal/imaging"
)

// EnvLogLevel overrides main.log_level when set.
const EnvLogLevel = "PIXEL_TOOLS_LOG_LEVEL"

type config struct {
	Main   configMain   `toml:"main"`
	Codec  configCodec  `toml:"codec"`
	Pixels configPixels `toml:"pixels"`
	Batch  configBatch  `toml:"batch"`
}

type configMain struct {
	LogLevel string `toml:"log_level"`
}

type configCodec struct {
	JPEGQuality     int    `toml:"jpeg_quality"`
	PNGCompression  string `toml:"png_compression"`
	TIFFCompression string `toml:"tiff_compression"`
}

type configPixels struct {
	StrictBounds bool `toml:"strict_bounds"`
}

type configBatch struct {
	Workers int `toml:"workers"`
}

// Config is the effective configuration.
var Config = Default()

// Default returns the built-in configuration.
func Default() config {
	return config{
		Main: configMain{
			LogLevel: "info",
		},
		Codec: configCodec{
			JPEGQuality:     codec.DefaultJPEGQuality,
			PNGCompression:  "default",
			TIFFCompression: "deflate",
		},
		Batch: configBatch{
			Workers: runtime.NumCPU(),
		},
	}
}

// LoadConfiguration decodes the file at configPath over the current values,
// applies the environment and validates the result. An empty path only
// applies the environment.
func LoadConfiguration(configPath string) error {
	if configPath != "" {
		fd, err := os.Open(configPath)
		if err != nil {
			return err
		}
		defer fd.Close()

		if err := Decode(fd); err != nil {
			return fmt.Errorf("%s: %w", configPath, err)
		}
	}

	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		Config.Main.LogLevel = lvl
	}
	return Config.Validate()
}

// Decode reads TOML from r into Config. Keys absent from r keep their
// current value.
func Decode(r io.Reader) error {
	return toml.NewDecoder(r).Decode(&Config)
}

// Validate checks the values that have a fixed set of choices or a range.
func (c config) Validate() error {
	if c.Codec.JPEGQuality < 1 || c.Codec.JPEGQuality > 100 {
		return fmt.Errorf("codec.jpeg_quality must be between 1 and 100, got %d", c.Codec.JPEGQuality)
	}
	if _, ok := pngLevels[strings.ToLower(c.Codec.PNGCompression)]; !ok {
		return fmt.Errorf("codec.png_compression: unknown level %q", c.Codec.PNGCompression)
	}
	switch strings.ToLower(c.Codec.TIFFCompression) {
	case "deflate", "none":
	default:
		return fmt.Errorf("codec.tiff_compression: unknown method %q", c.Codec.TIFFCompression)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers)
	}
	return nil
}

var pngLevels = map[string]png.CompressionLevel{
	"default": png.DefaultCompression,
	"none":    png.NoCompression,
	"speed":   png.BestSpeed,
	"best":    png.BestCompression,
}

// Handlers returns the format handlers configured from the codec section.
func (c config) Handlers() []codec.Handler {
	return []codec.Handler{
		&codec.PNG{Compression: pngLevels[strings.ToLower(c.Codec.PNGCompression)]},
		&codec.JPEG{Quality: c.Codec.JPEGQuality},
		&codec.BMP{},
		&codec.TIFF{Uncompressed: strings.EqualFold(c.Codec.TIFFCompression, "none")},
	}
}

// ImageOptions returns the options applied to every loaded image.
func (c config) ImageOptions() []imaging.Option {
	return []imaging.Option{imaging.WithStrictBounds(c.Pixels.StrictBounds)}
}

// WriteConfig encodes Config as TOML to w.
func WriteConfig(w io.Writer) error {
	return toml.NewEncoder(w).
		Indentation("  ").
		Order(toml.OrderPreserve).
		Encode(Config)
}
