package config

import (
	"os"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid memory backend config",
			config: Config{
				Port:        "8081",
				DataBackend: "memory",
				GeminiModel: "gemini-3-pro-preview",
			},
			wantErr: false,
		},
		{
			name: "valid sqlite backend config",
			config: Config{
				Port:         "8081",
				DataBackend:  "sqlite",
				SQLiteDBPath: "./test.db",
				GeminiModel:  "gemini-3-pro-preview",
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:        "abc",
				DataBackend: "memory",
				GeminiModel: "m",
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:        "70000",
				DataBackend: "memory",
				GeminiModel: "m",
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "invalid backend",
			config: Config{
				Port:        "8081",
				DataBackend: "postgres",
				GeminiModel: "m",
			},
			wantErr:     true,
			errorString: "invalid data backend 'postgres'",
		},
		{
			name: "sqlite backend without db path",
			config: Config{
				Port:        "8081",
				DataBackend: "sqlite",
				GeminiModel: "m",
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "blank model name",
			config: Config{
				Port:        "8081",
				DataBackend: "memory",
			},
			wantErr:     true,
			errorString: "Gemini model name cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q", tt.errorString)
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATA_BACKEND", "SQLITE_DB_PATH", "GEMINI_API_KEY", "GEMINI_MODEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg := Load()
	if cfg.Port != "8081" {
		t.Fatalf("default port: %s", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Fatalf("default backend: %s", cfg.DataBackend)
	}
	if cfg.GeminiModel != "gemini-3-pro-preview" {
		t.Fatalf("default model: %s", cfg.GeminiModel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SQLITE_DB_PATH", "/tmp/x.db")

	cfg := Load()
	if cfg.Port != "9090" || cfg.DataBackend != "sqlite" || cfg.SQLiteDBPath != "/tmp/x.db" {
		t.Fatalf("env not honored: %+v", cfg)
	}
}
