package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thenaterhood/dnschat/models"
)

func TestGetConfigMissingFileReturnsDefaults(t *testing.T) {
	config, err := GetConfig("./does-not-exist.json")

	if err == nil {
		t.Error("expected an error for a missing config file")
	}
	if config == nil {
		t.Fatal("config was unexpectedly nil")
	}
	if config.MaxRetries != 3 {
		t.Errorf("default max retries = %d, expected 3", config.MaxRetries)
	}
	if config.Preference() != models.PreferenceAutomatic {
		t.Errorf("default preference = %s, expected automatic", config.Preference())
	}
}

func TestGetConfigJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dnschat.json")
	content := `{"server": "ch.at", "method_preference": "never-https", "enable_mock_dns": true}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := GetConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if config.Server != "ch.at" {
		t.Errorf("server = %q, expected ch.at", config.Server)
	}
	if config.Preference() != models.PreferenceNeverHTTPS {
		t.Errorf("preference = %s, expected never-https", config.Preference())
	}
	if !config.EnableMockDns {
		t.Error("enable_mock_dns not applied")
	}
	if config.MaxRetries != 3 {
		t.Errorf("unset field lost its default: max retries = %d", config.MaxRetries)
	}
}

func TestGetConfigYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dnschat.yaml")
	content := "server: llm.pieter.com\nprefer_https: true\nmax_retries: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := GetConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if config.Server != "llm.pieter.com" {
		t.Errorf("server = %q, expected llm.pieter.com", config.Server)
	}
	if !config.PreferHttps {
		t.Error("prefer_https not applied")
	}
	if config.MaxRetries != 5 {
		t.Errorf("max_retries = %d, expected 5", config.MaxRetries)
	}
}

func TestGetConfigRejectsInvalidServer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dnschat.json")
	if err := os.WriteFile(path, []byte(`{"server": "256.1.1.1"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := GetConfig(path)
	if err == nil {
		t.Error("expected validation error for invalid server")
	}
	if config.Server != "" {
		t.Errorf("invalid config leaked through: server = %q", config.Server)
	}
}
