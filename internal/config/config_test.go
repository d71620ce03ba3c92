package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadDBPathFromEnvironment(t *testing.T) {
	t.Setenv("TODOIT_DB_PATH", "/tmp/todoit-test.db")
	t.Setenv("TODOIT_FORCE_TAGS", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DBPath != "/tmp/todoit-test.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/tmp/todoit-test.db")
	}
}

func TestLoadExpandsHomeInDBPath(t *testing.T) {
	t.Setenv("HOME", "/home/testuser")
	t.Setenv("TODOIT_DB_PATH", "$HOME/todoit.db")
	t.Setenv("TODOIT_FORCE_TAGS", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := filepath.Join("/home/testuser", "todoit.db")
	if cfg.DBPath != want {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, want)
	}
}

func TestLoadMissingDBPathFails(t *testing.T) {
	os.Unsetenv("TODOIT_DB_PATH")
	os.Unsetenv("TODOIT_FORCE_TAGS")

	if _, err := Load(""); err == nil {
		t.Fatal("Load() with no TODOIT_DB_PATH set and no override error = nil, want non-nil")
	}
}

func TestLoadExplicitOverrideWinsOverEnvironment(t *testing.T) {
	t.Setenv("TODOIT_DB_PATH", "/env/path.db")

	cfg, err := Load("/explicit/path.db")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DBPath != "/explicit/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/explicit/path.db")
	}
}

func TestLoadForceTagsParsing(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "comma separated", raw: "dev,test,staging", want: []string{"dev", "test", "staging"}},
		{name: "spaces and empty segments", raw: " dev , , test , , staging ", want: []string{"dev", "test", "staging"}},
		{name: "case normalized", raw: "DEV,Test,STAGING", want: []string{"dev", "test", "staging"}},
		{name: "empty string", raw: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TODOIT_DB_PATH", "/tmp/todoit-test.db")
			t.Setenv("TODOIT_FORCE_TAGS", tt.raw)

			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !reflect.DeepEqual(cfg.ForceTags, tt.want) {
				t.Errorf("ForceTags = %v, want %v", cfg.ForceTags, tt.want)
			}
		})
	}
}
