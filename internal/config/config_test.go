package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nukilabs/jdeob"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if got := cfg.Options(); got != jdeob.DefaultOptions() {
		t.Errorf("Options() = %+v, want %+v", got, jdeob.DefaultOptions())
	}
	if cfg.Format != "yaml" {
		t.Errorf("Format = %q, want %q", cfg.Format, "yaml")
	}
	if cfg.Output != "" {
		t.Errorf("Output = %q, want empty", cfg.Output)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jdeob.yaml")
	data := "verify: true\ndummy_handlers: false\nformat: dot\noutput: out.dot\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !cfg.Verify {
		t.Errorf("Verify = false, want true")
	}
	if cfg.DummyHandlers {
		t.Errorf("DummyHandlers = true, want false")
	}
	if !cfg.RemoveEmptyRanges {
		t.Errorf("RemoveEmptyRanges = false, want true")
	}
	if cfg.Format != "dot" || cfg.Output != "out.dot" {
		t.Errorf("Format, Output = %q, %q, want %q, %q", cfg.Format, cfg.Output, "dot", "out.dot")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("LoadConfig() error = nil, want error")
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("JDEOB_SPLIT_MULTIPLE_ENTRY", "false")
	t.Setenv("JDEOB_VERIFY", "true")
	t.Setenv("JDEOB_FORMAT", "dot")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.SplitMultipleEntry {
		t.Errorf("SplitMultipleEntry = true, want false")
	}
	if !cfg.Verify {
		t.Errorf("Verify = false, want true")
	}
	if cfg.Format != "dot" {
		t.Errorf("Format = %q, want %q", cfg.Format, "dot")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"yaml", false},
		{"dot", false},
		{"json", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg := &Config{Format: tt.format}
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
