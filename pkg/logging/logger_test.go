package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/openagora/agora/pkg/config"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.LoggingConfig
	}{
		{"json format", config.LoggingConfig{Level: "INFO", Format: "json"}},
		{"text format", config.LoggingConfig{Level: "DEBUG", Format: "text"}},
		{"unknown level falls back to info", config.LoggingConfig{Level: "bogus", Format: "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldLogger := Logger
			defer func() { Logger = oldLogger }()

			if err := InitLogger(&tt.cfg); err != nil {
				t.Fatalf("InitLogger() error: %v", err)
			}
			if Logger == nil {
				t.Fatal("InitLogger() left Logger nil")
			}
		})
	}
}

func TestInitLoggerLevel(t *testing.T) {
	oldLogger := Logger
	defer func() { Logger = oldLogger }()

	cfg := config.LoggingConfig{Level: "WARN", Format: "json"}
	if err := InitLogger(&cfg); err != nil {
		t.Fatalf("InitLogger() error: %v", err)
	}

	if Logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("Expected info level to be disabled at WARN")
	}
	if !Logger.Core().Enabled(zapcore.WarnLevel) {
		t.Error("Expected warn level to be enabled at WARN")
	}
}

func TestGetLoggerFallback(t *testing.T) {
	oldLogger := Logger
	defer func() { Logger = oldLogger }()

	Logger = nil
	if GetLogger() == nil {
		t.Error("GetLogger() must never return nil")
	}
}
