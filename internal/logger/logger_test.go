package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if Logger.GetPrefix() != "omayami" {
		t.Errorf("prefix = %q, want %q", Logger.GetPrefix(), "omayami")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestInitWritesLogFile(t *testing.T) {
	configDir := t.TempDir()

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	Warn("post save failed", "error", "disk full")

	data, err := os.ReadFile(filepath.Join(configDir, "logs", "omayami.log"))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "post save failed") {
		t.Errorf("log file missing record, got %q", string(data))
	}
}

func TestInitCustomPrefix(t *testing.T) {
	if err := Init(Config{ConfigDir: t.TempDir(), Stderr: true, Prefix: "omayami-proxy"}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if Logger.GetPrefix() != "omayami-proxy" {
		t.Errorf("prefix = %q, want %q", Logger.GetPrefix(), "omayami-proxy")
	}
	Info("Test info message on stderr")
}

func TestInitDebugMode(t *testing.T) {
	if err := Init(Config{Debug: true, ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	if Logger == nil {
		t.Error("Logger is nil after initialization")
	}
	Debug("Test debug message in debug mode")
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestConfigLevel(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want log.Level
	}{
		{name: "default", cfg: Config{}, want: log.WarnLevel},
		{name: "proxy server", cfg: Config{Stderr: true}, want: log.InfoLevel},
		{name: "debug wins", cfg: Config{Debug: true, Stderr: true}, want: log.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.level(); got != tt.want {
				t.Errorf("level() = %v, want %v", got, tt.want)
			}
		})
	}
}
