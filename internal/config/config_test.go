package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	if cfg.ListenAddr != ":8080" {
		t.Fatalf("unexpected listen addr: %s", cfg.ListenAddr)
	}
	if !cfg.S3Enabled || cfg.DBEnabled {
		t.Fatalf("s3 should be the default source: %+v", cfg)
	}
	if cfg.RiskHighBelow != -1 || cfg.RiskMediumBelow != -1 {
		t.Fatalf("threshold overrides should default to unset: %+v", cfg)
	}
	if cfg.AttributionSelect != "label" {
		t.Fatalf("unexpected attribution mode: %s", cfg.AttributionSelect)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("APP_LISTEN_ADDR", ":9999")
	t.Setenv("APP_DB_ENABLED", "true")
	t.Setenv("APP_RISK_HIGH_BELOW", "33")
	t.Setenv("APP_RISK_MEDIUM_BELOW", "66")

	cfg := FromEnv()
	if cfg.ListenAddr != ":9999" {
		t.Fatalf("env override ignored: %s", cfg.ListenAddr)
	}
	if !cfg.DBEnabled {
		t.Fatalf("db enable ignored")
	}
	if cfg.RiskHighBelow != 33 || cfg.RiskMediumBelow != 66 {
		t.Fatalf("threshold overrides ignored: %+v", cfg)
	}
}

func TestApplyEnvDefaultsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.env")
	body := "# comment\nAPP_TEST_SCHEMA_PATH=\"/etc/mapping.yml\"\n\nAPP_TEST_BUCKET=shelter-data\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("APP_TEST_SCHEMA_PATH", "")
	t.Setenv("APP_TEST_BUCKET", "preset")
	_ = os.Unsetenv("APP_TEST_SCHEMA_PATH")

	if err := applyEnvDefaultsFromFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := os.Getenv("APP_TEST_SCHEMA_PATH"); got != "/etc/mapping.yml" {
		t.Fatalf("quoted value not applied: %q", got)
	}
	// Preset environment wins over file defaults.
	if got := os.Getenv("APP_TEST_BUCKET"); got != "preset" {
		t.Fatalf("file default overrode environment: %q", got)
	}
}

func TestMySQLDSN(t *testing.T) {
	cfg := Config{
		DBUser:     "triage",
		DBPassword: "secret",
		DBHost:     "db.internal",
		DBPort:     3306,
		DBName:     "predictions",
	}
	dsn := cfg.MySQLDSN()
	if !strings.HasPrefix(dsn, "triage:secret@tcp(db.internal:3306)/predictions?") {
		t.Fatalf("unexpected dsn: %s", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("dsn should enable parseTime: %s", dsn)
	}
}
