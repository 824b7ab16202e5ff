package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/aasgraph/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	var buf bytes.Buffer
	path := writeConfig(t, `
strict = true
log_level = "debug"
cache = false
identity_cache_size = 16
store_dir = "/srv/aas"
colour = "blue"
`)
	cfg, err := loadConfig(path, newLogger(&buf, log.InfoLevel))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	want := Config{Strict: true, LogLevel: "debug", IdentityCacheSize: 16, StoreDir: "/srv/aas"}
	if cfg != want {
		t.Errorf("config = %+v, want %+v", cfg, want)
	}
	if !strings.Contains(buf.String(), "colour") {
		t.Errorf("unknown key not reported, log: %q", buf.String())
	}
	if dir, _ := cfg.storeDir(); dir != "/srv/aas" {
		t.Errorf("storeDir = %q", dir)
	}
	if level, _ := cfg.level(); level != log.DebugLevel {
		t.Errorf("level = %v, want debug", level)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.toml")
	for _, path := range []string{"", missing} {
		cfg, err := loadConfig(path, log.Default())
		if err != nil {
			t.Fatalf("loadConfig(%q): %v", path, err)
		}
		if cfg != DefaultConfig() {
			t.Errorf("loadConfig(%q) = %+v, want defaults", path, cfg)
		}
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := loadConfig(writeConfig(t, "strict = "), log.Default()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("syntax error err = %v, want INVALID_INPUT", err)
	}

	cfg, err := loadConfig(writeConfig(t, `log_level = "loud"`), log.Default())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.level(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad level err = %v, want INVALID_INPUT", err)
	}
}

func TestXDGDirs(t *testing.T) {
	tests := []struct {
		name string
		env  string
		fn   func() (string, error)
		def  string
	}{
		{"cache", "XDG_CACHE_HOME", cacheDir, ".cache"},
		{"config", "XDG_CONFIG_HOME", configDir, ".config"},
		{"data", "XDG_DATA_HOME", dataDir, filepath.Join(".local", "share")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			t.Setenv(tt.env, base)
			dir, err := tt.fn()
			if err != nil {
				t.Fatal(err)
			}
			if want := filepath.Join(base, appName); dir != want {
				t.Errorf("with %s: dir = %q, want %q", tt.env, dir, want)
			}

			home := t.TempDir()
			t.Setenv("HOME", home)
			t.Setenv(tt.env, "")
			dir, err = tt.fn()
			if err != nil {
				t.Fatal(err)
			}
			if want := filepath.Join(home, tt.def, appName); dir != want {
				t.Errorf("default dir = %q, want %q", dir, want)
			}
		})
	}
}
