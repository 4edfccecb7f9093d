package config

// CLIOverrides carries the tri-state command-line flags: a nil pointer
// means "not passed on the command line, defer to the config file /
// built-in default"; a non-nil pointer always wins over whatever the
// file says, following a "flag beats file" precedence chain.
type CLIOverrides struct {
	Minify     *bool
	Compress   *bool
	ETag       *bool
	VHostMode  *bool
	IgnoreFile *string
	Host       *string
	Port       *int
}

// Apply merges CLI-level overrides onto a loaded Config in place. It
// is always the last step before a Config is turned into a
// fileserver.Config, so nothing downstream ever has to re-check "did
// the flag win or the file".
func (c *Config) Apply(o CLIOverrides) {
	if o.Minify != nil {
		c.Defaults.Minify = *o.Minify
	}
	if o.Compress != nil {
		c.Defaults.Compress = *o.Compress
	}
	if o.ETag != nil {
		c.Defaults.ETag = *o.ETag
	}
	if o.VHostMode != nil {
		c.Global.VHostMode = *o.VHostMode
	}
	if o.IgnoreFile != nil {
		c.Global.IgnoreFile = *o.IgnoreFile
	}
	if o.Host != nil {
		c.Global.Host = *o.Host
	}
	if o.Port != nil {
		c.Global.ListenPort = *o.Port
	}
}
