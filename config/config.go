// Package config holds the engine's static tunables. There is no config
// file format or flag parser here: the host embeds this engine as a
// library and constructs a Config directly, the way the teacher's own
// core packages take a plain struct rather than owning a CLI surface.
package config

import "github.com/synthex-labs/matchcore/logging"

// Config is the engine's static configuration.
type Config struct {
	// Level is the logging level to pass to logging.New when building the
	// logger handed to matching.New.
	Level logging.Level
	// Development selects the console log encoder over the JSON one.
	Development bool
}

// Default returns the configuration used when the host doesn't override
// anything.
func Default() Config {
	return Config{
		Level:       logging.InfoLevel,
		Development: false,
	}
}
