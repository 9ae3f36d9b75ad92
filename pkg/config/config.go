// Package config loads stakemap settings from a TOML file.
//
// The default location follows the XDG base directory convention:
//
//	$XDG_CONFIG_HOME/stakemap/config.toml   (or ~/.config/stakemap/config.toml)
//
// A missing file is not an error; every field has a default. CLI flags are
// applied on top of the loaded values by the caller.
//
// Example file:
//
//	[view]
//	mode = "explicit"
//	layout = "priority"
//	threshold = 2
//
//	[source]
//	kind = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//	database = "roadmap"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stakemap/pkg/errors"
	"github.com/matzehuels/stakemap/pkg/explore"
	"github.com/matzehuels/stakemap/pkg/layout"
	"github.com/matzehuels/stakemap/pkg/render"
)

// AppName names the config and cache directories.
const AppName = "stakemap"

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultThreshold   = 1
	DefaultExportDir   = "."
	DefaultServerAddr  = "127.0.0.1:8080"
	DefaultCacheTTL    = 24 * time.Hour
	DefaultRedisPrefix = "stakemap:"
	DefaultDatabase    = "stakemap"
)

// Source kinds.
const (
	SourceFile  = "file"
	SourceMongo = "mongo"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// =============================================================================
// Config
// =============================================================================

// Config is the full settings tree.
type Config struct {
	View   View   `toml:"view"`
	Export Export `toml:"export"`
	Cache  Cache  `toml:"cache"`
	Source Source `toml:"source"`
	Server Server `toml:"server"`
}

// View holds the initial view state.
type View struct {
	Mode        string `toml:"mode"`
	Layout      string `toml:"layout"`
	Threshold   int    `toml:"threshold"`
	DirectOnly  bool   `toml:"direct_only"`
	Stakeholder string `toml:"stakeholder"`
}

// Export controls snapshot output.
type Export struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	Prefix   string   `toml:"prefix"`
	TTL      Duration `toml:"ttl"`
}

// Source selects where datasets come from.
type Source struct {
	Kind     string `toml:"kind"`
	Path     string `toml:"path"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration decodes TOML strings such as "12h" or "90m".
type Duration struct{ time.Duration }

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a config with all defaults applied.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// SetDefaults fills zero-valued fields. Calling it twice is harmless.
func (c *Config) SetDefaults() {
	if c.View.Mode == "" {
		c.View.Mode = string(explore.ViewOverlap)
	}
	if c.View.Layout == "" {
		c.View.Layout = string(layout.Circular)
	}
	if c.View.Threshold == 0 {
		c.View.Threshold = DefaultThreshold
	}
	if c.Export.Dir == "" {
		c.Export.Dir = DefaultExportDir
	}
	if c.Export.Format == "" {
		c.Export.Format = string(render.FormatPNG)
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheFile
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = CacheDir()
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = DefaultRedisPrefix
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = DefaultCacheTTL
	}
	if c.Source.Kind == "" {
		c.Source.Kind = SourceFile
	}
	if c.Source.Database == "" {
		c.Source.Database = DefaultDatabase
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
}

// Validate checks enumerated fields and cross-field requirements. It does not
// require a dataset path, since commands may take it as an argument.
func (c *Config) Validate() error {
	if _, err := c.ViewState(); err != nil {
		return err
	}
	if _, err := render.ParseFormat(c.Export.Format); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if err := errors.ValidateURL(c.Cache.RedisURL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	switch c.Source.Kind {
	case SourceFile:
	case SourceMongo:
		if err := errors.ValidateURL(c.Source.MongoURI); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "source.mongo_uri")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "source.kind %q (must be one of: file, mongo)", c.Source.Kind)
	}
	return nil
}

// ViewState converts the [view] section to a normalized initial state.
func (c *Config) ViewState() (explore.ViewState, error) {
	mode, err := explore.ParseViewMode(c.View.Mode)
	if err != nil {
		return explore.ViewState{}, err
	}
	lm, err := layout.ParseMode(c.View.Layout)
	if err != nil {
		return explore.ViewState{}, err
	}
	st := explore.DefaultState()
	st.Mode = mode
	st.Layout = lm
	st.Threshold = c.View.Threshold
	st.DirectOnly = c.View.DirectOnly
	st.Stakeholder = c.View.Stakeholder
	return st.Normalize()
}

// =============================================================================
// Loading
// =============================================================================

// Load reads path, or the default path when empty, and applies defaults.
// A missing default file yields the defaults; a missing explicit path is an
// error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = Path()
	}

	c := &Config{}
	md, err := toml.DecodeFile(path, c)
	switch {
	case err == nil:
	case os.IsNotExist(err) && !explicit:
		c = &Config{}
	case os.IsNotExist(err):
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
	default:
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err == nil {
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q in %s", undecoded[0].String(), path)
		}
	}

	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(baseDir("XDG_CONFIG_HOME", ".config"), AppName, "config.toml")
}

// CacheDir returns the default cache directory (~/.cache/stakemap).
func CacheDir() string {
	return filepath.Join(baseDir("XDG_CACHE_HOME", ".cache"), AppName)
}

func baseDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, fallback)
}
