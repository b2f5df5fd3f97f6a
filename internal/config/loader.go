package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides: JAVADOC2HTML_PARSE_BODY_TRACKING.
const EnvPrefix = "JAVADOC2HTML"

var keys = []string{
	"project",
	"output",
	"include",
	"exclude",
	"skip_tests",
	"max_file_size",
	"parse.body_tracking",
	"parse.on_malformed",
	"log.level",
	"log.format",
}

// Loader loads the configuration of one project root.
type Loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a loader for rootDir. A non-empty configFile replaces
// the lookup of FileName in rootDir and must exist.
func NewLoader(rootDir, configFile string) *Loader {
	return &Loader{rootDir: rootDir, configFile: configFile}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (JAVADOC2HTML_*)
// 2. Config file
// 3. Default values
//
// Project and Output are resolved against the root when left empty or
// relative.
func (l *Loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.AddConfigPath(l.rootDir)
	}
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	l.resolve(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// resolve fills the root-dependent defaults.
func (l *Loader) resolve(cfg *Config) {
	if cfg.Project == "" {
		root := l.rootDir
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
		cfg.Project = filepath.Base(root)
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput(l.rootDir, cfg.Project)
	} else if !filepath.IsAbs(cfg.Output) {
		cfg.Output = filepath.Join(l.rootDir, cfg.Output)
	}
}

// DefaultOutput is the output directory used when none is configured.
func DefaultOutput(rootDir, project string) string {
	return filepath.Join(rootDir, project+"_html_doc")
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("project", d.Project)
	v.SetDefault("output", d.Output)
	v.SetDefault("include", d.Include)
	v.SetDefault("exclude", d.Exclude)
	v.SetDefault("skip_tests", d.SkipTests)
	v.SetDefault("max_file_size", d.MaxFileSize)

	v.SetDefault("parse.body_tracking", d.Parse.BodyTracking)
	v.SetDefault("parse.on_malformed", d.Parse.OnMalformed)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}
