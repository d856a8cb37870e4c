package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		wantErr bool
		check   func(Config) bool
	}{
		{
			name:   "overrides",
			values: map[string]string{"HUKUM_ADDR": ":9000", "HUKUM_DB_DRIVER": "pgx", "HUKUM_DB_DSN": "postgres://x"},
			check:  func(c Config) bool { return c.Addr == ":9000" && c.DBDriver == "pgx" && c.DBDSN == "postgres://x" },
		},
		{
			name:   "delays",
			values: map[string]string{"HUKUM_HAND_END_DELAY": "500ms", "HUKUM_MATCH_RESTART_DELAY": "1m"},
			check: func(c Config) bool {
				return c.HandEndDelay == 500*time.Millisecond && c.MatchRestartDelay == time.Minute
			},
		},
		{
			name:   "manual dealer",
			values: map[string]string{"HUKUM_AUTO_DEALER": "false"},
			check:  func(c Config) bool { return !c.AutoDealer },
		},
		{name: "bad duration", values: map[string]string{"HUKUM_HAND_END_DELAY": "soon"}, wantErr: true},
		{name: "negative duration", values: map[string]string{"HUKUM_MATCH_RESTART_DELAY": "-1s"}, wantErr: true},
		{name: "bad bool", values: map[string]string{"HUKUM_AUTO_DEALER": "maybe"}, wantErr: true},
		{name: "bad driver", values: map[string]string{"HUKUM_DB_DRIVER": "mysql"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromEnv(env(tt.values))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %+v", cfg)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromEnv: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("unexpected config %+v", cfg)
			}
		})
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("HUKUM_STATIC_DIR=/srv/hukum\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HUKUM_STATIC_DIR", "")
	os.Unsetenv("HUKUM_STATIC_DIR")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StaticDir != "/srv/hukum" {
		t.Errorf("expected static dir from file, got %q", cfg.StaticDir)
	}
}

func TestLoadToleratesMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}
}
