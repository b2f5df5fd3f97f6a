package config

import (
	"errors"
	"fmt"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog"

	"github.com/phobologic/javadoc2html/internal/parse"
)

var (
	// ErrInvalidPattern indicates an include or exclude glob that does not compile
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrInvalidMaxFileSize indicates a non-positive size limit
	ErrInvalidMaxFileSize = errors.New("invalid max file size")

	// ErrInvalidBodyTracking indicates an unknown body tracking mode
	ErrInvalidBodyTracking = errors.New("invalid body tracking")

	// ErrInvalidMalformedPolicy indicates an unknown malformed-header policy
	ErrInvalidMalformedPolicy = errors.New("invalid malformed policy")

	// ErrInvalidLogLevel indicates an unknown log level
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogFormat indicates an unknown log format
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// Validate checks that the configuration is usable. All problems are
// reported together.
func Validate(cfg *Config) error {
	var errs []error

	for _, p := range cfg.Include {
		if _, err := glob.Compile(p, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: include %q: %v", ErrInvalidPattern, p, err))
		}
	}
	for _, p := range cfg.Exclude {
		if _, err := glob.Compile(p, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: exclude %q: %v", ErrInvalidPattern, p, err))
		}
	}

	if cfg.MaxFileSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: must be positive, got %d", ErrInvalidMaxFileSize, cfg.MaxFileSize))
	}

	if _, err := parse.ParseBodyTracking(cfg.Parse.BodyTracking); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidBodyTracking, err))
	}
	if _, err := parse.ParseMalformedPolicy(cfg.Parse.OnMalformed); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidMalformedPolicy, err))
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil || cfg.Log.Level == "" {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.Log.Level))
	}
	if cfg.Log.Format != "console" && cfg.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("%w: must be 'console' or 'json', got '%s'", ErrInvalidLogFormat, cfg.Log.Format))
	}

	return errors.Join(errs...)
}
