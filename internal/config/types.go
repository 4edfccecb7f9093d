package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration accepts either a plain integer (seconds) or a Go duration
// string ("24h", "5m") when decoded from TOML, so operators can write
// whichever is more natural for a given field.
type Duration time.Duration

// UnmarshalText lets Viper/mapstructure decode "30s", "24h", or a bare
// integer-seconds string into a Duration.
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*d = Duration(0)
		return nil
	}

	if parsed, err := time.ParseDuration(raw); err == nil {
		*d = Duration(parsed)
		return nil
	}

	if seconds, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}

	return fmt.Errorf("invalid duration value: %s", raw)
}

// DurationValue returns the real time.Duration.
func (d Duration) DurationValue() time.Duration {
	return time.Duration(d)
}

// Seconds returns the duration truncated toward zero to whole seconds, which is
// the unit the valid_for field is expressed in.
func (d Duration) Seconds() int {
	return int(d.DurationValue() / time.Second)
}

// GlobalConfig holds the process-wide settings that are not part of
// the fileserver.Config data model proper: the listen address, logging
// sink, and the CLI-only toggles (vhost mode, ignore file) that get
// folded into per-host fileserver.Config values at startup.
type GlobalConfig struct {
	Host          string `mapstructure:"Host"`
	ListenPort    int    `mapstructure:"ListenPort"`
	LogLevel      string `mapstructure:"LogLevel"`
	LogFilePath   string `mapstructure:"LogFilePath"`
	LogMaxSize    int    `mapstructure:"LogMaxSize"`
	LogMaxBackups int    `mapstructure:"LogMaxBackups"`
	LogCompress   bool   `mapstructure:"LogCompress"`
	VHostMode     bool   `mapstructure:"VHostMode"`
	IgnoreFile    string `mapstructure:"IgnoreFile"`
}

// Defaults holds the baseline cache policy and feature toggles applied
// before any per-extension override.
type Defaults struct {
	ValidFor     Duration `mapstructure:"ValidFor"`
	CacheControl []string `mapstructure:"CacheControl"`
	Minify       bool     `mapstructure:"Minify"`
	Compress     bool     `mapstructure:"Compress"`
	ETag         bool     `mapstructure:"ETag"`
}

// TypeOverride is a single entry of the Types map, keyed by
// dot-prefixed extension in Config.Types.
type TypeOverride struct {
	ContentType  string    `mapstructure:"ContentType"`
	ValidFor     *Duration `mapstructure:"ValidFor"`
	CacheControl []string  `mapstructure:"CacheControl"`
}

// Config is the TOML file's overall shape. The CLI-only toggles are
// ordinarily supplied on the command line rather than in the file, but
// the file may set them too; the CLI always wins (see
// runtime_flags.go). Root is decoded but not used: the served
// directory always comes from the command line's DIR argument.
type Config struct {
	Global      GlobalConfig            `mapstructure:",squash"`
	Root        string                  `mapstructure:"Root"`
	Encoding    string                  `mapstructure:"Encoding"`
	Defaults    Defaults                `mapstructure:"Defaults"`
	Types       map[string]TypeOverride `mapstructure:"Types"`
	MinCacheDir string                  `mapstructure:"MinCacheDir"`
	IndexFiles  []string                `mapstructure:"IndexFiles"`
}
