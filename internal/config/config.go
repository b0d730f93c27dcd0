// Package config handles configuration for the registry,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrijs2005/userregistry/internal/common"
	"github.com/dmitrijs2005/userregistry/internal/cryptox"
)

// Config holds runtime settings for the registry.
//
// Fields:
//   - LogLevel: debug, info, warn or error.
//   - LogFormat: "json" or "text".
//   - SaltSize: random salt length in bytes for each password.
//   - Argon2Time / Argon2MemoryKiB / Argon2Threads / Argon2KeyLen: argon2id cost.
type Config struct {
	LogLevel        string
	LogFormat       string
	SaltSize        int
	Argon2Time      uint32
	Argon2MemoryKiB uint32
	Argon2Threads   uint8
	Argon2KeyLen    uint32
}

// LoadDefaults populates Config with the built-in settings.
func (c *Config) LoadDefaults() {
	p := cryptox.DefaultParams()

	c.LogLevel = "info"
	c.LogFormat = "json"
	c.SaltSize = p.SaltSize
	c.Argon2Time = p.Time
	c.Argon2MemoryKiB = p.MemoryKiB
	c.Argon2Threads = p.Threads
	c.Argon2KeyLen = p.KeyLen
}

// HashParams converts the hashing settings to cryptox.Params.
func (c *Config) HashParams() cryptox.Params {
	return cryptox.Params{
		Time:      c.Argon2Time,
		MemoryKiB: c.Argon2MemoryKiB,
		Threads:   c.Argon2Threads,
		KeyLen:    c.Argon2KeyLen,
		SaltSize:  c.SaltSize,
	}
}

// Validate rejects settings the registry cannot start with.
func (c *Config) Validate() error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("log level %q: %w", c.LogLevel, common.ErrorInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("log format %q: %w", c.LogFormat, common.ErrorInvalidConfig)
	}
	if c.SaltSize <= 0 {
		return fmt.Errorf("salt size %d: %w", c.SaltSize, common.ErrorInvalidConfig)
	}
	if c.Argon2Time == 0 || c.Argon2MemoryKiB == 0 || c.Argon2Threads == 0 || c.Argon2KeyLen == 0 {
		return fmt.Errorf("argon2 cost must be positive: %w", common.ErrorInvalidConfig)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
// args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
