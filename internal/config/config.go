package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/framectl/framing"
)

// WireConfig describes a frame header layout for the framectl tool.
type WireConfig struct {
	MaxFrameLen       int
	LengthFieldLen    int
	LengthFieldOffset int
	LengthAdjustment  int
	NumSkip           int
	NumSkipSet        bool
	ByteOrder         string
}

func DefaultWireConfig() WireConfig {
	return WireConfig{
		MaxFrameLen:    framing.DefaultMaxFrameLength,
		LengthFieldLen: framing.DefaultLengthFieldLength,
		ByteOrder:      "big",
	}
}

// wire.toml key mapping to WireConfig settings.
type fileConfig struct {
	MaxFrameLen       int    `toml:"max_frame_len"`
	LengthFieldLen    int    `toml:"length_field_len"`
	LengthFieldOffset int    `toml:"length_field_offset"`
	LengthAdjustment  int    `toml:"length_adjustment"`
	NumSkip           int    `toml:"num_skip"`
	ByteOrder         string `toml:"byte_order"`
}

// LoadWireConfig reads a TOML layout file with default overlay: only keys
// present in the file override the defaults.
func LoadWireConfig(path string) (WireConfig, error) {
	cfg := DefaultWireConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return WireConfig{}, fmt.Errorf("load wire config: %w", err)
	}

	if meta.IsDefined("max_frame_len") {
		cfg.MaxFrameLen = raw.MaxFrameLen
	}
	if meta.IsDefined("length_field_len") {
		cfg.LengthFieldLen = raw.LengthFieldLen
	}
	if meta.IsDefined("length_field_offset") {
		cfg.LengthFieldOffset = raw.LengthFieldOffset
	}
	if meta.IsDefined("length_adjustment") {
		cfg.LengthAdjustment = raw.LengthAdjustment
	}
	if meta.IsDefined("num_skip") {
		cfg.NumSkip = raw.NumSkip
		cfg.NumSkipSet = true
	}
	if meta.IsDefined("byte_order") {
		cfg.ByteOrder = strings.TrimSpace(raw.ByteOrder)
	}

	if err := ValidateWireConfig(cfg); err != nil {
		return WireConfig{}, err
	}
	return cfg, nil
}

func ValidateWireConfig(cfg WireConfig) error {
	if cfg.MaxFrameLen <= 0 {
		return fmt.Errorf("wire config max_frame_len must be positive, got %d", cfg.MaxFrameLen)
	}
	if cfg.LengthFieldLen < 1 || cfg.LengthFieldLen > 8 {
		return fmt.Errorf("wire config length_field_len must be 1..8, got %d", cfg.LengthFieldLen)
	}
	if cfg.LengthFieldOffset < 0 {
		return fmt.Errorf("wire config length_field_offset must not be negative, got %d", cfg.LengthFieldOffset)
	}
	if cfg.NumSkipSet && cfg.NumSkip < 0 {
		return fmt.Errorf("wire config num_skip must not be negative, got %d", cfg.NumSkip)
	}
	if _, err := parseByteOrder(cfg.ByteOrder); err != nil {
		return err
	}
	return nil
}

// Builder assembles a framing.Builder from the validated layout.
func (cfg WireConfig) Builder() (*framing.Builder, error) {
	order, err := parseByteOrder(cfg.ByteOrder)
	if err != nil {
		return nil, err
	}
	b := framing.NewBuilder().
		MaxFrameLength(cfg.MaxFrameLen).
		LengthFieldLength(cfg.LengthFieldLen).
		LengthFieldOffset(cfg.LengthFieldOffset).
		LengthAdjustment(cfg.LengthAdjustment).
		Order(order)
	if cfg.NumSkipSet {
		b.NumSkip(cfg.NumSkip)
	}
	return b, nil
}

func parseByteOrder(raw string) (framing.ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "big", "big-endian", "big_endian", "be", "network":
		return framing.BigEndian, nil
	case "little", "little-endian", "little_endian", "le":
		return framing.LittleEndian, nil
	default:
		return framing.BigEndian, fmt.Errorf("wire config unknown byte_order %q", raw)
	}
}
