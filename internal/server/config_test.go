package server

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Address != ":8080" {
		t.Errorf("address = %q, expected :8080", cfg.Address)
	}
	if cfg.UploadSizeBytes() != 256*1024 {
		t.Errorf("upload size = %d, expected %d", cfg.UploadSizeBytes(), 256*1024)
	}
}

func TestLoadConfigEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Address != ":8080" {
		t.Errorf("address = %q, expected :8080", cfg.Address)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	contents := `---
address: ":9090"
maxUploadSize: 1M
logging:
  level: debug
  format: console
`
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Address != ":9090" {
		t.Errorf("address = %q, expected :9090", cfg.Address)
	}
	if cfg.UploadSizeBytes() != 1024*1024 {
		t.Errorf("upload size = %d, expected %d", cfg.UploadSizeBytes(), 1024*1024)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadConfigInvalidSize(t *testing.T) {
	contents := "maxUploadSize: huge\n"
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for unparseable upload size")
	}
}

func TestSetUploadSizeBytes(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	cfg.SetUploadSizeBytes(2048)
	if cfg.UploadSizeBytes() != 2048 {
		t.Errorf("upload size = %d, expected 2048", cfg.UploadSizeBytes())
	}

	// Non-positive overrides are ignored.
	cfg.SetUploadSizeBytes(0)
	if cfg.UploadSizeBytes() != 2048 {
		t.Errorf("upload size = %d, expected 2048 after ignored override", cfg.UploadSizeBytes())
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
		wantErr  bool
	}{
		{"Plain bytes", "1024", 1024, false},
		{"Bytes suffix", "512B", 512, false},
		{"Kilobytes", "256K", 256 * 1024, false},
		{"Kilobytes long", "256KB", 256 * 1024, false},
		{"Megabytes", "10M", 10 * 1024 * 1024, false},
		{"Gigabytes", "1G", 1024 * 1024 * 1024, false},
		{"Lowercase unit", "64k", 64 * 1024, false},
		{"Whitespace", "  128K  ", 128 * 1024, false},
		{"Empty uses default", "", 256 * 1024, false},
		{"No digits", "MB", 0, true},
		{"Unknown unit", "10T", 0, true},
		{"Garbage", "ten megs", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseSize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSize(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSize(%q) returned error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("ParseSize(%q) = %d, expected %d", tt.input, result, tt.expected)
			}
		})
	}
}
