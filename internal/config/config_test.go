package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"musselbed-sim/internal/simulation"
)

func TestDefault(t *testing.T) {
	config := Default()
	want := simulation.DefaultParams()

	if got := config.Params(); got != want {
		t.Errorf("Default().Params() = %+v, want %+v", got, want)
	}
	if config.Run.Workers != 1 {
		t.Errorf("expected Workers 1, got %d", config.Run.Workers)
	}
	if config.Logging.Level != "info" {
		t.Errorf("expected Logging.Level 'info', got '%s'", config.Logging.Level)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
model:
  n: 10
  length: 10
  end_time: 5
  p3: 100

run:
  seed: 42
  workers: 4

logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.Model.N != 10 || config.Model.Length != 10 || config.Model.EndTime != 5 {
		t.Errorf("unexpected model sizes: %+v", config.Model)
	}
	if config.Model.P3 != 100 {
		t.Errorf("expected P3 100, got %v", config.Model.P3)
	}
	// Keys absent from the file keep defaults.
	if config.Model.D1 != simulation.DefaultParams().D1 {
		t.Errorf("expected default D1, got %v", config.Model.D1)
	}
	if config.Run.Seed != 42 || config.Run.Workers != 4 {
		t.Errorf("unexpected run config: %+v", config.Run)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("expected level debug, got %s", config.Logging.Level)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("model: [unclosed"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	_, err := LoadFromFile(path)
	if err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MUSSEL_N", "25")
	t.Setenv("MUSSEL_LENGTH", "12.5")
	t.Setenv("MUSSEL_STEPS", "7")
	t.Setenv("MUSSEL_SEED", "99")
	t.Setenv("MUSSEL_WORKERS", "3")
	t.Setenv("MUSSEL_LOG_LEVEL", "trace")

	config, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config.Model.N != 25 {
		t.Errorf("expected N 25, got %d", config.Model.N)
	}
	if config.Model.Length != 12.5 {
		t.Errorf("expected Length 12.5, got %v", config.Model.Length)
	}
	if config.Model.EndTime != 7 {
		t.Errorf("expected EndTime 7, got %d", config.Model.EndTime)
	}
	if config.Run.Seed != 99 {
		t.Errorf("expected Seed 99, got %d", config.Run.Seed)
	}
	if config.Run.Workers != 3 {
		t.Errorf("expected Workers 3, got %d", config.Run.Workers)
	}
	if config.Logging.Level != "trace" {
		t.Errorf("expected level trace, got %s", config.Logging.Level)
	}
}

func TestEnvOverrides_BadNumber(t *testing.T) {
	t.Setenv("MUSSEL_N", "many")
	if _, err := Load(""); err == nil {
		t.Error("expected error for non-numeric MUSSEL_N")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *MusselConfig)
		wantErr bool
		params  bool
	}{
		{"valid", func(c *MusselConfig) {}, false, false},
		{"zero mussels", func(c *MusselConfig) { c.Model.N = 0 }, true, true},
		{"zero length", func(c *MusselConfig) { c.Model.Length = 0 }, true, true},
		{"negative radius", func(c *MusselConfig) { c.Model.D2 = -1 }, true, true},
		{"negative workers", func(c *MusselConfig) { c.Run.Workers = -2 }, true, false},
		{"bad level", func(c *MusselConfig) { c.Logging.Level = "loud" }, true, false},
		{"bad format", func(c *MusselConfig) { c.Logging.Format = "xml" }, true, false},
		{"empty level ok", func(c *MusselConfig) { c.Logging.Level = "" }, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.params && !errors.Is(err, simulation.ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}
