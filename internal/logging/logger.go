package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ido50/mccs/internal/config"
)

// ServingContext carries the fileserver-specific facts worth stamping
// onto every log line emitted by a given process: which directory
// tree it's serving and whether --vhost-mode splits that tree by
// Host. Unlike GlobalConfig, these aren't logger settings — they're
// domain context InitLogger folds into its own startup line so a
// reader of the log doesn't have to cross-reference the process's
// command line to know what "path" in a later request line is
// relative to.
type ServingContext struct {
	Root      string
	VHostMode bool
}

// InitLogger builds a JSON structured logger from the global config,
// rotating to disk through lumberjack when a log file path is set and
// falling back to stdout otherwise. Once the logger is usable it logs
// its own "logger_ready" line carrying serving, so root/vhost_mode
// appear in the log stream from the very first line rather than only
// in a separate startup message main.go would otherwise have to
// assemble itself.
func InitLogger(cfg config.GlobalConfig, serving ServingContext) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	output, outErr := buildOutput(cfg)
	if outErr != nil {
		fmt.Fprintf(os.Stderr, "logger_fallback: %v\n", outErr)
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetOutput(output)
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})

	logrus.SetFormatter(logger.Formatter)
	logrus.SetOutput(logger.Out)
	logrus.SetLevel(logger.GetLevel())

	if outErr != nil {
		logger.WithFields(logrus.Fields{
			"action": "logger_fallback",
			"path":   cfg.LogFilePath,
		}).Warn(outErr.Error())
	}

	logger.WithFields(logrus.Fields{
		"action":     "logger_ready",
		"root":       serving.Root,
		"vhost_mode": serving.VHostMode,
	}).Info("logger initialized")

	return logger, nil
}

// buildOutput picks the log output writer for cfg, falling back to
// stdout (and returning the error) if the configured file's directory
// can't be created.
func buildOutput(cfg config.GlobalConfig) (io.Writer, error) {
	if cfg.LogFilePath == "" {
		return os.Stdout, nil
	}

	dir := filepath.Dir(cfg.LogFilePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return os.Stdout, fmt.Errorf("creating log directory: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.LogFilePath,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		Compress:   cfg.LogCompress,
		LocalTime:  true,
	}
	return rotator, nil
}
