// Package config loads javadoc2html settings from defaults, an optional
// .javadoc2html.yaml in the project root and JAVADOC2HTML_* environment
// variables.
package config

import (
	"gopkg.in/yaml.v3"

	"github.com/phobologic/javadoc2html/internal/discover"
	"github.com/phobologic/javadoc2html/internal/parse"
)

// FileName is the name of the config file looked up in a project root.
const FileName = ".javadoc2html.yaml"

// DefaultMaxFileSize is the size above which source files are skipped.
const DefaultMaxFileSize = 1_000_000 // 1 MB

// Config is the complete javadoc2html configuration.
type Config struct {
	Project     string      `yaml:"project,omitempty" mapstructure:"project"` // defaults to the root's base name
	Output      string      `yaml:"output,omitempty" mapstructure:"output"`   // defaults to <root>/<project>_html_doc
	Include     []string    `yaml:"include" mapstructure:"include"`           // glob patterns for sources
	Exclude     []string    `yaml:"exclude" mapstructure:"exclude"`           // glob patterns to skip
	SkipTests   bool        `yaml:"skip_tests" mapstructure:"skip_tests"`
	MaxFileSize int64       `yaml:"max_file_size" mapstructure:"max_file_size"`
	Parse       ParseConfig `yaml:"parse" mapstructure:"parse"`
	Log         LogConfig   `yaml:"log" mapstructure:"log"`
}

// ParseConfig tunes the line parser.
type ParseConfig struct {
	BodyTracking string `yaml:"body_tracking" mapstructure:"body_tracking"` // "presence" or "depth"
	OnMalformed  string `yaml:"on_malformed" mapstructure:"on_malformed"`   // "abort" or "skip"
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // zerolog level name
	Format string `yaml:"format" mapstructure:"format"` // "console" or "json"
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Include:     append([]string(nil), discover.DefaultInclude...),
		Exclude:     []string{},
		MaxFileSize: DefaultMaxFileSize,
		Parse: ParseConfig{
			BodyTracking: string(parse.TrackPresence),
			OnMalformed:  string(parse.Abort),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// ParseOptions returns the parser options. The config must be valid.
func (c *Config) ParseOptions() parse.Options {
	return parse.Options{
		BodyTracking: parse.BodyTracking(c.Parse.BodyTracking),
		OnMalformed:  parse.MalformedPolicy(c.Parse.OnMalformed),
	}
}

// DiscoverOptions returns the file discovery filters.
func (c *Config) DiscoverOptions() discover.Options {
	return discover.Options{
		Include:   c.Include,
		Exclude:   c.Exclude,
		SkipTests: c.SkipTests,
	}
}

// YAML renders the config as a config file.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
