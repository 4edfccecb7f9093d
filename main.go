package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ido50/mccs/internal/config"
	"github.com/ido50/mccs/internal/fileserver"
	"github.com/ido50/mccs/internal/logging"
	"github.com/ido50/mccs/internal/server"
	"github.com/ido50/mccs/internal/version"
)

// cliOptions collects the result of parsing CLI flags, kept as a
// struct (rather than package globals) so tests can inject values
// without touching os.Args.
type cliOptions struct {
	root        string
	configPath  string
	minify      *bool
	compress    *bool
	etag        *bool
	vhostMode   *bool
	ignoreFile  *string
	host        *string
	port        *int
	showVersion bool
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}
	os.Exit(run(opts))
}

// run executes the process according to the parsed CLI options and
// returns the process exit code, so tests can call it directly.
func run(opts cliOptions) int {
	if opts.showVersion {
		printVersion()
		return 0
	}

	if opts.root == "" {
		fmt.Fprintln(stdErr, "missing required DIR argument")
		return 2
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "loading config: %v\n", err)
		return 1
	}

	cfg.Apply(config.CLIOverrides{
		Minify:     opts.minify,
		Compress:   opts.compress,
		ETag:       opts.etag,
		VHostMode:  opts.vhostMode,
		IgnoreFile: opts.ignoreFile,
		Host:       opts.host,
		Port:       opts.port,
	})

	logger, err := logging.InitLogger(cfg.Global, logging.ServingContext{
		Root:      opts.root,
		VHostMode: cfg.Global.VHostMode,
	})
	if err != nil {
		fmt.Fprintf(stdErr, "initializing logger: %v\n", err)
		return 1
	}

	ignore, err := loadIgnoreMatcher(cfg.Global.IgnoreFile)
	if err != nil {
		fmt.Fprintf(stdErr, "loading ignore file: %v\n", err)
		return 1
	}

	template := config.ToFileserverConfig(cfg, opts.root, fileserver.StdlibMediaTypes{}, ignore)

	warn := func(msg string, fields map[string]any) {
		logger.WithFields(logrus.Fields(fields)).Warn(msg)
	}

	registry, err := server.NewRegistry(opts.root, cfg.Global.VHostMode, template, warn)
	if err != nil {
		fmt.Fprintf(stdErr, "building vhost registry: %v\n", err)
		return 1
	}

	fields := logging.BaseFields("startup", opts.configPath)
	fields["root"] = opts.root
	fields["listen_port"] = cfg.Global.ListenPort
	fields["vhost_mode"] = cfg.Global.VHostMode
	fields["minifiers"] = fileserver.AvailableMinifiers()
	fields["compressors"] = fileserver.AvailableCompressors()
	fields["version"] = version.Full()
	logger.WithFields(fields).Info("config loaded")

	if err := startHTTPServer(cfg, registry, logger); err != nil {
		fmt.Fprintf(stdErr, "HTTP server failed: %v\n", err)
		return 1
	}
	return 0
}

// parseCLIFlags parses the positional DIR argument (default ".") plus the
// --minify/--no-minify-style tri-state flags, leaving each override
// nil unless the caller explicitly passed it so config.Apply can
// distinguish "not passed" from "passed as false".
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("mccs", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFlag string
		minify     bool
		noMinify   bool
		compress   bool
		noCompress bool
		etag       bool
		noETag     bool
		vhostMode  bool
		ignoreFile string
		host       string
		port       int
		showVer    bool
	)

	fs.StringVar(&configFlag, "config", "", "path to a TOML config file")
	fs.BoolVar(&minify, "minify", false, "enable CSS/JS minification")
	fs.BoolVar(&noMinify, "no-minify", false, "disable CSS/JS minification")
	fs.BoolVar(&compress, "compress", false, "enable content-encoding compression")
	fs.BoolVar(&noCompress, "no-compress", false, "disable content-encoding compression")
	fs.BoolVar(&etag, "etag", false, "enable ETag generation")
	fs.BoolVar(&noETag, "no-etag", false, "disable ETag generation")
	fs.BoolVar(&vhostMode, "vhost-mode", false, "treat DIR as a directory-per-host tree")
	fs.StringVar(&ignoreFile, "ignore-file", "", "path to a newline-separated glob ignore list")
	fs.StringVar(&host, "host", "", "listen address")
	fs.IntVar(&port, "port", 0, "listen port")
	fs.BoolVar(&showVer, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("parsing flags: %w", err)
	}

	if minify && noMinify {
		return cliOptions{}, fmt.Errorf("--minify and --no-minify are mutually exclusive")
	}
	if compress && noCompress {
		return cliOptions{}, fmt.Errorf("--compress and --no-compress are mutually exclusive")
	}
	if etag && noETag {
		return cliOptions{}, fmt.Errorf("--etag and --no-etag are mutually exclusive")
	}

	opts := cliOptions{
		configPath:  configFlag,
		showVersion: showVer,
	}

	if minify || noMinify {
		opts.minify = boolPtr(minify)
	}
	if compress || noCompress {
		opts.compress = boolPtr(compress)
	}
	if etag || noETag {
		opts.etag = boolPtr(etag)
	}
	if vhostMode {
		opts.vhostMode = boolPtr(true)
	}
	if ignoreFile != "" {
		opts.ignoreFile = &ignoreFile
	}
	if host != "" {
		opts.host = &host
	}
	if port != 0 {
		opts.port = &port
	}

	opts.root = "."
	if rest := fs.Args(); len(rest) > 0 {
		opts.root = rest[0]
	}

	return opts, nil
}

func boolPtr(v bool) *bool { return &v }

// loadIgnoreMatcher reads path (when set) into a GlobIgnore, returning
// a nil IgnoreMatcher when no ignore file was configured.
func loadIgnoreMatcher(path string) (fileserver.IgnoreMatcher, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	matcher := fileserver.NewGlobIgnore(string(raw))
	return matcher, nil
}

func startHTTPServer(cfg *config.Config, registry *server.Registry, logger *logrus.Logger) error {
	port := cfg.Global.ListenPort
	app, err := server.NewApp(server.AppOptions{
		Logger:     logger,
		Registry:   registry,
		ListenPort: port,
	})
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Global.Host, port)
	logger.WithFields(logrus.Fields{
		"action": "listen",
		"addr":   addr,
	}).Info("fiber server starting")

	return app.Listen(addr)
}
