// Package logger holds the process-wide charm logger. Records go to a
// rotating file under <configdir>/logs and, for --debug or the proxy server,
// to stderr as well.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/omayami/internal/constants"
)

// Logger is nil until Init; the helpers below drop records in that case.
var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Stderr mirrors records at info level and above to stderr.
	Stderr bool
	// Prefix defaults to the app name.
	Prefix string
}

func (c Config) level() log.Level {
	switch {
	case c.Debug:
		return log.DebugLevel
	case c.Stderr:
		return log.InfoLevel
	}
	return log.WarnLevel
}

func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	var out io.Writer = &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.AppName+".log"),
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	if cfg.Debug || cfg.Stderr {
		out = io.MultiWriter(os.Stderr, out)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = constants.AppName
	}

	Logger = log.NewWithOptions(out, log.Options{
		Level:           cfg.level(),
		Prefix:          prefix,
		ReportTimestamp: true,
		ReportCaller:    cfg.Debug,
	})
	return nil
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
