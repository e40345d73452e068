package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

// overrideConfigPath points ConfigPath at path for the duration of the test
func overrideConfigPath(t *testing.T, path string) {
	t.Helper()
	originalConfigPath := ConfigPath
	ConfigPath = func() string {
		return path
	}
	t.Cleanup(func() {
		ConfigPath = originalConfigPath
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.OutputDir != "./output" {
		t.Errorf("Expected OutputDir ./output, got %q", cfg.OutputDir)
	}
	if cfg.LogFile == "" {
		t.Error("Expected LogFile to be set")
	}
	if cfg.StateFile == "" {
		t.Error("Expected StateFile to be set")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel info, got %q", cfg.LogLevel)
	}
	if cfg.Strict || cfg.Force {
		t.Error("Expected Strict and Force to default to false")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "empty output_dir",
			config: &Config{
				OutputDir: "",
				StateFile: "/tmp/state.json",
				LogLevel:  "info",
			},
			wantErr: true,
		},
		{
			name: "empty state_file",
			config: &Config{
				OutputDir: "/tmp/out",
				StateFile: "",
				LogLevel:  "info",
			},
			wantErr: true,
		},
		{
			name: "bad log level",
			config: &Config{
				OutputDir: "/tmp/out",
				StateFile: "/tmp/state.json",
				LogLevel:  "loud",
			},
			wantErr: true,
		},
		{
			name: "empty log file is allowed",
			config: &Config{
				OutputDir: "/tmp/out",
				StateFile: "/tmp/state.json",
				LogLevel:  "debug",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	overrideConfigPath(t, filepath.Join(tmpDir, "config.json"))

	testCfg := &Config{
		OutputDir: filepath.Join(tmpDir, "cards"),
		LogFile:   filepath.Join(tmpDir, "quizmd.log"),
		LogLevel:  "debug",
		StateFile: filepath.Join(tmpDir, "state.json"),
		Strict:    true,
	}

	if err := testCfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(ConfigPath()); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loadedCfg.OutputDir != testCfg.OutputDir {
		t.Errorf("OutputDir mismatch: got %v, want %v", loadedCfg.OutputDir, testCfg.OutputDir)
	}
	if !loadedCfg.Strict {
		t.Error("Strict should round-trip")
	}
	if loadedCfg.Level() != log.DebugLevel {
		t.Errorf("Level() = %v, want debug", loadedCfg.Level())
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")
	overrideConfigPath(t, path)

	if err := os.WriteFile(path, []byte(`{"force": true}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Force {
		t.Error("Force should be read from file")
	}
	if filepath.Base(cfg.OutputDir) != "output" || !filepath.IsAbs(cfg.OutputDir) {
		t.Errorf("OutputDir should default to an absolute ./output, got %q", cfg.OutputDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel should default to info, got %q", cfg.LogLevel)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")
	overrideConfigPath(t, path)

	if err := os.WriteFile(path, []byte(`{"log_level": "shout"}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() should reject an invalid log level")
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	tmpDir := t.TempDir()
	overrideConfigPath(t, filepath.Join(tmpDir, "nonexistent.json"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level, got %q", cfg.LogLevel)
	}
}

func TestExpandPath(t *testing.T) {
	homeDir, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expansion",
			input:    "~/test",
			expected: filepath.Join(homeDir, "test"),
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: homeDir,
		},
		{
			name:     "absolute path",
			input:    "/tmp/test",
			expected: "/tmp/test",
		},
		{
			name:     "empty stays empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := expandPath(tt.input)
			if err != nil {
				t.Fatalf("expandPath() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
