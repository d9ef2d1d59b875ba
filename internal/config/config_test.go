package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetenv(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	if got := getenv("TEST_STR", "def"); got != "value" {
		t.Errorf("getenv() = %v, want value", got)
	}
	if got := getenv("TEST_STR_MISSING", "def"); got != "def" {
		t.Errorf("getenv() = %v, want def", got)
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{name: "valid duration", value: "30s", def: time.Minute, expected: 30 * time.Second},
		{name: "invalid duration falls back", value: "not-a-duration", def: time.Minute, expected: time.Minute},
		{name: "empty falls back", value: "", def: time.Minute, expected: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_DURATION"
			if tt.value != "" {
				t.Setenv(key, tt.value)
			} else {
				os.Unsetenv(key)
			}
			if got := mustDuration(key, tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "false")
	if got := mustBool("TEST_BOOL", true); got != false {
		t.Errorf("mustBool() = %v, want false", got)
	}
	t.Setenv("TEST_BOOL", "garbage")
	if got := mustBool("TEST_BOOL", true); got != true {
		t.Errorf("mustBool() with invalid value = %v, want default", got)
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(` http://a.com , "http://b.com" ,, `)
	if len(got) != 2 || got[0] != "http://a.com" || got[1] != "http://b.com" {
		t.Errorf("splitAndTrim() = %v", got)
	}
	if splitAndTrim("") != nil {
		t.Error("splitAndTrim(\"\") should be nil")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %v, want :8080", cfg.ListenPort)
	}
	if cfg.RCFile != "links.rc" {
		t.Errorf("RCFile = %v, want links.rc", cfg.RCFile)
	}
	if cfg.KeepSpecialFolders {
		t.Error("KeepSpecialFolders should default to false")
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr should default to empty (disabled), got %v", cfg.RedisAddr)
	}
}

func TestLoadFileConfigOverriddenByEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "startpage.yaml")
	content := "listen_port: \":9000\"\nrc_file: /data/links.rc\nredis:\n  addr: localhost:6379\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("STARTPAGE_CONFIG_FILE", path)
	t.Setenv("STARTPAGE_LISTEN_PORT", ":7000")

	cfg := Load()
	if cfg.ListenPort != ":7000" {
		t.Errorf("env should override file: ListenPort = %v, want :7000", cfg.ListenPort)
	}
	if cfg.RCFile != "/data/links.rc" {
		t.Errorf("file value not applied: RCFile = %v", cfg.RCFile)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("nested file value not applied: RedisAddr = %v", cfg.RedisAddr)
	}
}
