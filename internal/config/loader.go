package config

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Load reads and decodes the optional TOML config file carrying the
// defaults/types/min_cache_dir/index_files block. Unlike the CLI-level
// --host/--port/--minify flags, this file is optional: a static file
// server is fully usable with none of it set, so an empty path returns
// documented defaults rather than an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	cfg := &Config{}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg, viper.DecodeHook(durationDecodeHook())); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.IndexFiles) == 0 {
		cfg.IndexFiles = []string{"index.html"}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults seeds the documented defaults (86400 seconds, ["public"],
// every feature flag on) plus the ambient logging/listener defaults,
// using Viper's own default layer so an explicit Defaults.Minify =
// false in the file is distinguishable from "unset" rather than
// requiring a post-hoc zero-value check.
func setDefaults(v *viper.Viper) {
	v.SetDefault("Host", "")
	v.SetDefault("ListenPort", 8080)
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogFilePath", "")
	v.SetDefault("LogMaxSize", 100)
	v.SetDefault("LogMaxBackups", 10)
	v.SetDefault("LogCompress", true)
	v.SetDefault("VHostMode", false)
	v.SetDefault("IgnoreFile", "")
	v.SetDefault("Encoding", "UTF-8")
	v.SetDefault("Defaults.ValidFor", 86400)
	v.SetDefault("Defaults.CacheControl", []string{"public"})
	v.SetDefault("Defaults.Minify", true)
	v.SetDefault("Defaults.Compress", true)
	v.SetDefault("Defaults.ETag", true)
}

// durationDecodeHook lets a TOML value for ValidFor be written as a
// bare integer (seconds), a Go duration string ("24h"), or omitted
// entirely.
func durationDecodeHook() mapstructure.DecodeHookFunc {
	targetType := reflect.TypeOf(Duration(0))

	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != targetType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			if v == "" {
				return Duration(0), nil
			}
			if parsed, err := time.ParseDuration(v); err == nil {
				return Duration(parsed), nil
			}
			if seconds, err := strconv.ParseFloat(v, 64); err == nil {
				return Duration(time.Duration(seconds * float64(time.Second))), nil
			}
			return nil, fmt.Errorf("cannot parse duration field: %s", v)
		case int:
			return Duration(time.Duration(v) * time.Second), nil
		case int64:
			return Duration(time.Duration(v) * time.Second), nil
		case float64:
			return Duration(time.Duration(v * float64(time.Second))), nil
		case time.Duration:
			return Duration(v), nil
		case Duration:
			return v, nil
		default:
			return nil, fmt.Errorf("unsupported duration type: %T", v)
		}
	}
}
