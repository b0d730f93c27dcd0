package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/userregistry/internal/flagx"
)

// JsonConfig mirrors Config for unmarshalling. Pointer fields tell an absent
// key apart from a zero value, so a partial file only overrides what it names.
type JsonConfig struct {
	LogLevel        *string `json:"log_level"`
	LogFormat       *string `json:"log_format"`
	SaltSize        *int    `json:"salt_size"`
	Argon2Time      *uint32 `json:"argon2_time"`
	Argon2MemoryKiB *uint32 `json:"argon2_memory_kib"`
	Argon2Threads   *uint8  `json:"argon2_threads"`
	Argon2KeyLen    *uint32 `json:"argon2_key_len"`
}

// parseJson overlays values from the file named by -c/-config, if any.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIf(&config.LogLevel, c.LogLevel)
	setIf(&config.LogFormat, c.LogFormat)
	setIf(&config.SaltSize, c.SaltSize)
	setIf(&config.Argon2Time, c.Argon2Time)
	setIf(&config.Argon2MemoryKiB, c.Argon2MemoryKiB)
	setIf(&config.Argon2Threads, c.Argon2Threads)
	setIf(&config.Argon2KeyLen, c.Argon2KeyLen)

	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
