package config

import "errors"

var (
	// ErrReadingFile is returned when the config file cannot be read or decoded.
	ErrReadingFile = errors.New("config: failed to read config file")

	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct.
	ErrParsingConfig = errors.New("config: failed to parse environment variables")

	// ErrInvalidConfig is returned when a loaded value is out of range.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)
