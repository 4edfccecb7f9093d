package config

import (
	"errors"
	"strings"
)

// Validate checks the semantic invariants that must hold before a
// Config can be turned into a fileserver.Config: listen port range,
// non-empty extension keys (normalized to a leading dot), and
// non-empty, bare index filenames. A negative ValidFor is deliberately
// let through: fileserver.buildResponse treats it as "Expires already
// in the past", a documented way to mark a resource as never cacheable
// by intermediaries that don't understand no-store.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Global.ListenPort <= 0 || c.Global.ListenPort > 65535 {
		return newFieldError("Global.ListenPort", "must be in 1-65535")
	}

	normalized := make(map[string]TypeOverride, len(c.Types))
	for ext, override := range c.Types {
		key := strings.ToLower(strings.TrimSpace(ext))
		if key == "" {
			return newFieldError("Types", "extension key must not be empty")
		}
		if !strings.HasPrefix(key, ".") {
			key = "." + key
		}
		normalized[key] = override
	}
	c.Types = normalized

	for i, name := range c.IndexFiles {
		if strings.TrimSpace(name) == "" {
			return newFieldError("IndexFiles", "entries must not be empty")
		}
		if strings.ContainsAny(name, "/\\") {
			return newFieldError("IndexFiles", "entries must be bare filenames")
		}
		c.IndexFiles[i] = name
	}

	return nil
}
