// Package config loads settings shared by the disasmkit commands.
//
// Sources, lowest precedence first: built-in defaults, the YAML file named by
// DISASMKIT_CONFIG (or ~/.disasmkit.yaml), then DISASMKIT_* environment
// variables. A .env file in the working directory is loaded into the
// environment first. Command-line flags are applied by the commands on top.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/disasmkit/disasm/scroll"
	"github.com/joshuapare/disasmkit/internal/buf"
	"github.com/joshuapare/disasmkit/pkg/session"
)

// Environment variables.
const (
	EnvConfig       = "DISASMKIT_CONFIG"
	EnvThreshold    = "DISASMKIT_THRESHOLD"
	EnvBefore       = "DISASMKIT_MARGIN_BEFORE"
	EnvAfter        = "DISASMKIT_MARGIN_AFTER"
	EnvRowsPerIndex = "DISASMKIT_ROWS_PER_INDEX"
)

// DefaultFileName is looked up in the home directory when EnvConfig is unset.
const DefaultFileName = ".disasmkit.yaml"

// Config holds command settings.
type Config struct {
	Scroll  ScrollConfig  `yaml:"scroll"`
	Index   IndexConfig   `yaml:"index"`
	Decoder DecoderConfig `yaml:"decoder"`
	Log     LogConfig     `yaml:"log"`
}

// ScrollConfig mirrors the scroll coordinator options.
type ScrollConfig struct {
	Threshold int64 `yaml:"threshold"`
	Before    int   `yaml:"before"`
	After     int   `yaml:"after"`
}

// IndexConfig controls scrollbar indexing.
type IndexConfig struct {
	RowsPerIndex int64 `yaml:"rows_per_index"`
}

// DecoderConfig mirrors the raw decoder options.
type DecoderConfig struct {
	Base        uint64 `yaml:"base"`
	SectionSize int    `yaml:"section_size"`
	RowSize     int    `yaml:"row_size"`
	WordSize    int    `yaml:"word_size"`
	ByteOrder   string `yaml:"byte_order"`
}

// LogConfig controls debug logging.
type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Scroll:  ScrollConfig{Threshold: 150, Before: 500, After: 500},
		Index:   IndexConfig{RowsPerIndex: 1},
		Decoder: DecoderConfig{SectionSize: 0x1000, RowSize: 16, WordSize: 4, ByteOrder: "le"},
		Log:     LogConfig{Level: "debug"},
	}
}

// Load resolves the configuration. An explicit path must exist; the default
// locations are optional.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if !explicit {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, DefaultFileName)
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := Decode(bytes.NewReader(data), &cfg); err != nil {
				return Config{}, fmt.Errorf("config %s: %w", path, err)
			}
		case explicit || !errors.Is(err, os.ErrNotExist):
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Decode reads YAML into cfg, rejecting unknown keys. Keys absent from the
// document keep their current values.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config) error {
	ints := []struct {
		name string
		set  func(int64)
	}{
		{EnvThreshold, func(v int64) { cfg.Scroll.Threshold = v }},
		{EnvBefore, func(v int64) { cfg.Scroll.Before = int(v) }},
		{EnvAfter, func(v int64) { cfg.Scroll.After = int(v) }},
		{EnvRowsPerIndex, func(v int64) { cfg.Index.RowsPerIndex = v }},
	}
	for _, e := range ints {
		raw, ok := os.LookupEnv(e.name)
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
		e.set(v)
	}
	return nil
}

// Validate rejects settings no component accepts.
func (c Config) Validate() error {
	switch {
	case c.Scroll.Threshold < 0:
		return fmt.Errorf("scroll.threshold must not be negative, got %d", c.Scroll.Threshold)
	case c.Scroll.Before < 0 || c.Scroll.After < 0:
		return fmt.Errorf("scroll margins must not be negative, got %d/%d", c.Scroll.Before, c.Scroll.After)
	case c.Index.RowsPerIndex < 1:
		return fmt.Errorf("index.rows_per_index must be at least 1, got %d", c.Index.RowsPerIndex)
	}
	if _, err := buf.ParseOrder(c.Decoder.ByteOrder); err != nil {
		return fmt.Errorf("decoder.byte_order: %w", err)
	}
	return nil
}

// SessionOptions converts the decoder and index settings. Zero decoder
// sizes keep the decoder defaults.
func (c Config) SessionOptions() session.Options {
	opts := session.DefaultOptions()
	opts.Blob.RowsPerIndex = c.Index.RowsPerIndex
	opts.Decoder.Base = c.Decoder.Base
	if c.Decoder.SectionSize > 0 {
		opts.Decoder.SectionSize = c.Decoder.SectionSize
	}
	if c.Decoder.RowSize > 0 {
		opts.Decoder.RowSize = c.Decoder.RowSize
	}
	if c.Decoder.WordSize > 0 {
		opts.Decoder.WordSize = c.Decoder.WordSize
	}
	if order, err := buf.ParseOrder(c.Decoder.ByteOrder); err == nil {
		opts.Decoder.Order = order
	}
	return opts
}

// ScrollOptions converts the scroll settings.
func (c Config) ScrollOptions() scroll.Options {
	opts := scroll.DefaultOptions()
	opts.Threshold = c.Scroll.Threshold
	opts.Before = c.Scroll.Before
	opts.After = c.Scroll.After
	return opts
}
