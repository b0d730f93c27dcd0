// Package common defines shared sentinel errors and small helpers used across
// the user registry packages. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Configuration errors.
	ErrorInvalidConfig = errors.New("invalid config")

	// CLI input errors.
	ErrorUnknownCommand = errors.New("unknown command")
	ErrorInvalidPrice   = errors.New("invalid price")
	ErrorMissingArgs    = errors.New("missing arguments")
)
