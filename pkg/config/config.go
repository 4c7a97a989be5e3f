// Package config loads polymer settings.
//
// Values are layered, later layers winning:
//
//  1. built-in defaults
//  2. config file ($XDG_CONFIG_HOME/polymer/config.toml or config.yaml, or --config)
//  3. POLYMER_* environment variables (POLYMER_CHAIN_UNITS, POLYMER_SERVER_ADDR, ...)
//
// Command-line flags are applied on top by the CLI when explicitly set.
package config

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	perrors "github.com/matzehuels/polymer/pkg/errors"
)

// AppName names the config and cache directories.
const AppName = "polymer"

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "POLYMER"

// Config is the merged result of defaults, the config file and environment
// overrides.
type Config struct {
	Chain  ChainConfig  `mapstructure:"chain" toml:"chain" yaml:"chain"`
	Render RenderConfig `mapstructure:"render" toml:"render" yaml:"render"`
	Server ServerConfig `mapstructure:"server" toml:"server" yaml:"server"`
	Cache  CacheConfig  `mapstructure:"cache" toml:"cache" yaml:"cache"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-" toml:"-" yaml:"-"`
}

// ChainConfig holds the default generation parameters.
type ChainConfig struct {
	Units    int     `mapstructure:"units" toml:"units" yaml:"units"`
	Angle    float64 `mapstructure:"angle" toml:"angle" yaml:"angle"`
	Rigidity float64 `mapstructure:"rigidity" toml:"rigidity" yaml:"rigidity"`
	Label    string  `mapstructure:"label" toml:"label" yaml:"label"`
	Comment  string  `mapstructure:"comment" toml:"comment" yaml:"comment"`
}

// RenderConfig holds the default picture settings.
type RenderConfig struct {
	Style  string  `mapstructure:"style" toml:"style" yaml:"style"`
	Width  float64 `mapstructure:"width" toml:"width" yaml:"width"`
	Height float64 `mapstructure:"height" toml:"height" yaml:"height"`
	Yaw    float64 `mapstructure:"yaw" toml:"yaw" yaml:"yaw"`
	Pitch  float64 `mapstructure:"pitch" toml:"pitch" yaml:"pitch"`
	Radius float64 `mapstructure:"radius" toml:"radius" yaml:"radius"`
}

// ServerConfig configures polymer serve. EffectiveHost and Port are derived
// from Addr during Load.
type ServerConfig struct {
	Addr        string `mapstructure:"addr" toml:"addr" yaml:"addr"`
	ReadTimeout string `mapstructure:"read_timeout" toml:"read_timeout" yaml:"read_timeout"`

	EffectiveHost string `mapstructure:"-" toml:"-" yaml:"-"`
	Port          int    `mapstructure:"-" toml:"-" yaml:"-"`
}

// CacheConfig selects and tunes the artifact cache. A non-empty RedisAddr
// takes precedence over Dir.
type CacheConfig struct {
	Dir       string `mapstructure:"dir" toml:"dir" yaml:"dir"`
	RedisAddr string `mapstructure:"redis_addr" toml:"redis_addr" yaml:"redis_addr"`
	RedisDB   int    `mapstructure:"redis_db" toml:"redis_db" yaml:"redis_db"`
	TTL       string `mapstructure:"ttl" toml:"ttl" yaml:"ttl"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Chain: ChainConfig{
			Units:   5,
			Angle:   120,
			Label:   "C",
			Comment: "Generated polymer chain",
		},
		Render: RenderConfig{
			Style:  "simple",
			Width:  800,
			Height: 600,
			Yaw:    30,
			Pitch:  20,
			Radius: 0.5,
		},
		Server: ServerConfig{
			Addr:        "127.0.0.1:8080",
			ReadTimeout: "10s",
		},
		Cache: CacheConfig{
			TTL: "168h",
		},
	}
}

// Dir returns the directory searched for config files.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// DefaultPath is where `config init` writes the config file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the configuration. override names an explicit config file
// which must exist; when empty the config directory is searched and a
// missing file is not an error.
func Load(override string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "config file %s", override)
		}
		v.SetConfigFile(override)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName("config")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "decode config")
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("chain.units", d.Chain.Units)
	v.SetDefault("chain.angle", d.Chain.Angle)
	v.SetDefault("chain.rigidity", d.Chain.Rigidity)
	v.SetDefault("chain.label", d.Chain.Label)
	v.SetDefault("chain.comment", d.Chain.Comment)

	v.SetDefault("render.style", d.Render.Style)
	v.SetDefault("render.width", d.Render.Width)
	v.SetDefault("render.height", d.Render.Height)
	v.SetDefault("render.yaw", d.Render.Yaw)
	v.SetDefault("render.pitch", d.Render.Pitch)
	v.SetDefault("render.radius", d.Render.Radius)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)

	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.redis_addr", d.Cache.RedisAddr)
	v.SetDefault("cache.redis_db", d.Cache.RedisDB)
	v.SetDefault("cache.ttl", d.Cache.TTL)
}

// resolve validates derived fields and fills EffectiveHost/Port.
func (c *Config) resolve() error {
	host, portStr, err := net.SplitHostPort(c.Server.Addr)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidArgument, err, "invalid server.addr %q", c.Server.Addr)
	}
	c.Server.EffectiveHost = host
	if c.Server.EffectiveHost == "" {
		c.Server.EffectiveHost = "0.0.0.0"
	}
	p, err := strconv.Atoi(portStr)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidArgument, err, "invalid port %q in server.addr %q", portStr, c.Server.Addr)
	}
	c.Server.Port = p

	if _, err := c.Server.ReadTimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.Cache.TTLDuration(); err != nil {
		return err
	}

	if strings.HasPrefix(c.Cache.Dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.Cache.Dir = filepath.Join(home, c.Cache.Dir[2:])
	}
	return nil
}

// ReadTimeoutDuration parses ReadTimeout.
func (s ServerConfig) ReadTimeoutDuration() (time.Duration, error) {
	return parseDuration("server.read_timeout", s.ReadTimeout)
}

// TTLDuration parses TTL. Zero means entries never expire.
func (c CacheConfig) TTLDuration() (time.Duration, error) {
	return parseDuration("cache.ttl", c.TTL)
}

func parseDuration(name, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, perrors.Wrap(perrors.ErrCodeInvalidArgument, err, "invalid %s %q", name, s)
	}
	if d < 0 {
		return 0, perrors.New(perrors.ErrCodeInvalidArgument, "%s must not be negative", name)
	}
	return d, nil
}

// Encode writes c as "toml" or "yaml".
func Encode(w io.Writer, c *Config, format string) error {
	switch format {
	case "", "toml":
		return toml.NewEncoder(w).Encode(c)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	}
	return perrors.New(perrors.ErrCodeInvalidFormat, "unknown config format %q (want toml or yaml)", format)
}

// Init writes the default configuration to path. Existing files are only
// replaced when force is set.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return perrors.New(perrors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if err := Encode(f, Default(), format); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
