package config

import (
	"github.com/ido50/mccs/internal/fileserver"
)

// ToFileserverConfig converts the TOML-decoded Config into the
// immutable fileserver.Config the core pipeline consumes. root is
// supplied separately because it ordinarily comes from the CLI's
// positional DIR argument (or, in --vhost-mode, from a per-host
// subdirectory), not from the config file.
func ToFileserverConfig(cfg *Config, root string, mediaTypes fileserver.MediaTyper, ignore fileserver.IgnoreMatcher) fileserver.Config {
	types := make(map[string]fileserver.TypeOverride, len(cfg.Types))
	for ext, override := range cfg.Types {
		fsOverride := fileserver.TypeOverride{
			ContentType:  override.ContentType,
			CacheControl: override.CacheControl,
		}
		if override.ValidFor != nil {
			seconds := override.ValidFor.Seconds()
			fsOverride.ValidFor = &seconds
		}
		types[ext] = fsOverride
	}

	defaultValidFor := cfg.Defaults.ValidFor.Seconds()

	return fileserver.Config{
		Root:     root,
		Encoding: cfg.Encoding,
		Defaults: fileserver.Defaults{
			ValidFor:     &defaultValidFor,
			CacheControl: cfg.Defaults.CacheControl,
			Minify:       cfg.Defaults.Minify,
			Compress:     cfg.Defaults.Compress,
			ETag:         cfg.Defaults.ETag,
		},
		Types:       types,
		MinCacheDir: cfg.MinCacheDir,
		IndexFiles:  cfg.IndexFiles,
		MediaTypes:  mediaTypes,
		Ignore:      ignore,
	}
}
