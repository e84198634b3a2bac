// Package config loads goctave's runtime configuration.
//
// Values come, in increasing priority, from built-in defaults, a config
// file (default /etc/g-octave.cfg) and GOCTAVE_* environment variables.
// Command-line flags are bound on top by the CLI.
//
// The config file uses the ConfigParser INI format with settings in a
// [main] section. Files ending in .toml are read as TOML instead.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultFile is the config file read when none is given.
const DefaultFile = "/etc/g-octave.cfg"

// EnvPrefix prefixes environment overrides, e.g. GOCTAVE_OVERLAY.
const EnvPrefix = "GOCTAVE"

// Config holds all runtime configuration.
type Config struct {
	DB              string        `mapstructure:"db"`
	Overlay         string        `mapstructure:"overlay"`
	Categories      string        `mapstructure:"categories"`
	DBMirror        string        `mapstructure:"db_mirror"`
	PkgCache        string        `mapstructure:"pkg_cache"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFile         string        `mapstructure:"log_file"`
	AcceptKeywords  string        `mapstructure:"accept_keywords"`
	ManifestCommand string        `mapstructure:"manifest_command"`
	CacheURL        string        `mapstructure:"cache_url"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
}

var defaults = map[string]any{
	"db":               "/var/cache/g-octave",
	"overlay":          "/usr/local/portage/g-octave",
	"categories":       "main,extra,language",
	"db_mirror":        "http://soc.dev.gentoo.org/~rafaelmartins/g-octave/db/",
	"pkg_cache":        "",
	"log_level":        "",
	"log_file":         "",
	"accept_keywords":  "~x86 ~amd64",
	"manifest_command": "ebuild",
	"cache_url":        "",
	"cache_ttl":        24 * time.Hour,
}

// New returns a viper instance carrying the defaults and environment
// bindings. Flags may be bound to it before Load.
func New() *viper.Viper {
	codecs := viper.NewCodecRegistry()
	_ = codecs.RegisterCodec("ini", iniCodec{})
	v := viper.NewWithOptions(viper.WithDecoderRegistry(codecs))
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads file into v and decodes the result. When file is empty the
// default file is read if it exists. Settings may sit at the top level or
// in a [main] section.
func Load(v *viper.Viper, file string) (Config, error) {
	explicit := file != ""
	if !explicit {
		file = DefaultFile
	}
	v.SetConfigFile(file)
	if strings.EqualFold(filepath.Ext(file), ".toml") {
		v.SetConfigType("toml")
	} else {
		v.SetConfigType("ini")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if explicit || !missing {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	if main := v.Sub("main"); main != nil {
		if err := v.MergeConfigMap(main.AllSettings()); err != nil {
			return Config{}, fmt.Errorf("merge [main] section: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// CategoryList returns the configured categories in order.
func (c Config) CategoryList() []string {
	var out []string
	for _, s := range strings.Split(c.Categories, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CacheDir returns the directory of the download cache: pkg_cache when
// set, otherwise a cache directory under the database.
func (c Config) CacheDir() string {
	if c.PkgCache != "" {
		return c.PkgCache
	}
	return filepath.Join(c.DB, ".cache")
}

// EnsureDirs creates the database and overlay directories.
func (c Config) EnsureDirs() error {
	for _, dir := range []string{c.DB, c.Overlay} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
