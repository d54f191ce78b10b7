package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trek", "trek-config.json")

	cfg := LoadFrom(path)

	if cfg == nil {
		t.Fatal("LoadFrom() returned nil")
	}
	if !cfg.ShowHidden {
		t.Error("ShowHidden default should be true")
	}
	if cfg.HistoryLimit != 100 {
		t.Errorf("HistoryLimit = %d, want 100", cfg.HistoryLimit)
	}
	if len(cfg.SkipDirectories) == 0 {
		t.Error("default skip directories not set")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config not written: %v", err)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trek-config.json")

	cfg := &Config{
		StartDir:        "/srv/data",
		ShowHidden:      false,
		SkipDirectories: []string{"Python*"},
		MaxResults:      200,
		MaxDepth:        3,
		MaxFilesScanned: 5000,
		HistoryLimit:    0,
		DoubleClickMS:   300,
	}

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo() failed: %v", err)
	}

	loaded := LoadFrom(path)

	if loaded.StartDir != cfg.StartDir {
		t.Errorf("StartDir mismatch: got %s, want %s", loaded.StartDir, cfg.StartDir)
	}
	if loaded.ShowHidden {
		t.Error("ShowHidden mismatch: got true, want false")
	}
	if len(loaded.SkipDirectories) != 1 || loaded.SkipDirectories[0] != "Python*" {
		t.Errorf("SkipDirectories mismatch: got %v", loaded.SkipDirectories)
	}
	if loaded.MaxDepth != 3 || loaded.MaxResults != 200 || loaded.MaxFilesScanned != 5000 {
		t.Errorf("search limits mismatch: got %d/%d/%d", loaded.MaxResults, loaded.MaxDepth, loaded.MaxFilesScanned)
	}
	if loaded.HistoryLimit != 0 {
		t.Errorf("HistoryLimit = %d, want 0 (unlimited)", loaded.HistoryLimit)
	}
}

func TestLoadClampsBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trek-config.json")
	raw := `{"max_results": 5, "max_depth": 500, "max_files_scanned": -1, "history_limit": -4, "double_click_ms": 10}`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadFrom(path)

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"max_results", cfg.MaxResults, 100},
		{"max_depth", cfg.MaxDepth, 64},
		{"max_files_scanned", cfg.MaxFilesScanned, 200000},
		{"history_limit", cfg.HistoryLimit, 0},
		{"double_click_ms", cfg.DoubleClickMS, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoadInvalidJSONFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trek-config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadFrom(path)
	if cfg.MaxResults != Default().MaxResults {
		t.Errorf("MaxResults = %d, want default %d", cfg.MaxResults, Default().MaxResults)
	}
}
