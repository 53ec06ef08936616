package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DB_PATH", "REFRESH_SCHEDULE", "REFRESH_ON_STARTUP"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "3001" {
		t.Errorf("port = %q, want 3001", cfg.Port)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("driver = %q, want sqlite", cfg.DBDriver)
	}
	if cfg.RefreshSchedule != "0 3 * * *" {
		t.Errorf("schedule = %q", cfg.RefreshSchedule)
	}
	if cfg.RefreshOnStartup {
		t.Error("refresh on startup should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/garagebook")
	t.Setenv("REFRESH_ON_STARTUP", "true")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("driver = %q, want postgres", cfg.DBDriver)
	}
	if cfg.DBURL != "postgres://localhost/garagebook" {
		t.Errorf("db url = %q", cfg.DBURL)
	}
	if !cfg.RefreshOnStartup {
		t.Error("refresh on startup should be true")
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		val      string
		fallback bool
		want     bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"FALSE", true, false},
		{"", true, true},
		{"not-a-bool", false, false},
	}
	for _, tt := range tests {
		t.Setenv("TEST_BOOL", tt.val)
		if got := getEnvBool("TEST_BOOL", tt.fallback); got != tt.want {
			t.Errorf("getEnvBool(%q, %v) = %v, want %v", tt.val, tt.fallback, got, tt.want)
		}
	}
}
