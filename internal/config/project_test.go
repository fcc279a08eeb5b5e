package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseProject(t *testing.T) {
	p, err := ParseProject([]byte("store: data/snap.db\nlisten: 0.0.0.0:9000\ncolor: never\n"))
	if err != nil {
		t.Fatalf("ParseProject: %v", err)
	}
	if p.Store != "data/snap.db" || p.Listen != "0.0.0.0:9000" || p.Color != ColorNever {
		t.Errorf("project = %+v", p)
	}
	if p.History != "~/"+DefaultHistory {
		t.Errorf("History = %q, want default", p.History)
	}
}

func TestParseProjectErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"bad color", "color: rainbow\n", "color:"},
		{"bad listen", "listen: nowhere\n", "listen:"},
		{"bad yaml", "store: [", "invalid YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProject([]byte(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("ParseProject error = %v, want %q", err, tt.contains)
			}
		})
	}
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()

	missing, err := LoadProject(filepath.Join(dir, ProjectFileName))
	if err != nil {
		t.Fatalf("LoadProject(missing): %v", err)
	}
	if missing.StorePath() != filepath.Join(dir, DefaultStore) || missing.Listen != DefaultListen {
		t.Errorf("defaults = %+v", missing)
	}

	path := filepath.Join(dir, ProjectFileName)
	if err := os.WriteFile(path, []byte("store: /abs/snap.db\nhistory: hist\n"), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if p.StorePath() != "/abs/snap.db" {
		t.Errorf("StorePath() = %q", p.StorePath())
	}
	if p.HistoryPath() != "hist" {
		t.Errorf("HistoryPath() = %q", p.HistoryPath())
	}
}

func TestProjectPathEnv(t *testing.T) {
	t.Setenv(ConfigPathEnv, "/tmp/other.yaml")
	if got := ProjectPath(); got != "/tmp/other.yaml" {
		t.Errorf("ProjectPath() = %q", got)
	}
	t.Setenv(ConfigPathEnv, "")
	if got := ProjectPath(); got != ProjectFileName {
		t.Errorf("ProjectPath() = %q", got)
	}
}
