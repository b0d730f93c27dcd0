package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/userregistry/internal/common"
	"github.com/dmitrijs2005/userregistry/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-l string   log level (debug, info, warn, error)
//	-f string   log format (json, text)
//	-s int      password salt size, bytes
//	-t uint     argon2 passes
//	-m uint     argon2 memory, KiB
//	-p uint     argon2 threads
//	-k uint     derived key length, bytes
//
// args is filtered through flagx.FilterArgs first so -c/-config and
// unrelated arguments never reach this flag set.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-l", "-f", "-s", "-t", "-m", "-p", "-k"})

	fs := flag.NewFlagSet("registry", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format (json|text)")
	fs.IntVar(&config.SaltSize, "s", config.SaltSize, "password salt size in bytes")

	argonTime := fs.Uint("t", uint(config.Argon2Time), "argon2 passes")
	argonMemory := fs.Uint("m", uint(config.Argon2MemoryKiB), "argon2 memory in KiB")
	argonThreads := fs.Uint("p", uint(config.Argon2Threads), "argon2 threads")
	argonKeyLen := fs.Uint("k", uint(config.Argon2KeyLen), "derived key length in bytes")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	if *argonThreads > 255 {
		return fmt.Errorf("argon2 threads %d: %w", *argonThreads, common.ErrorInvalidConfig)
	}

	config.Argon2Time = uint32(*argonTime)
	config.Argon2MemoryKiB = uint32(*argonMemory)
	config.Argon2Threads = uint8(*argonThreads)
	config.Argon2KeyLen = uint32(*argonKeyLen)

	return nil
}
