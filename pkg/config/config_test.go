package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Name  string `yaml:"name"`
	Vault string `yaml:"vault"`
}

var errNameRequired = errors.New("name is required")

type validatedConfig struct {
	Name string `yaml:"name"`
}

func (c *validatedConfig) Validate() error {
	if c.Name == "" {
		return errNameRequired
	}
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "name: ansuz\nvault: ./vault\n")
	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "ansuz" || cfg.Vault != "./vault" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_VAULT_DIR", "/srv/vault")
	path := writeFile(t, "vault: ${TEST_VAULT_DIR}\n")
	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Vault != "/srv/vault" {
		t.Fatalf("vault = %q, want the expanded value", cfg.Vault)
	}
}

func TestLoadMissingFile(t *testing.T) {
	var cfg testConfig
	if err := Load(filepath.Join(t.TempDir(), "nope.yaml"), &cfg); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeFile(t, ": : not yaml [\n")
	var cfg testConfig
	if err := Load(path, &cfg); err == nil {
		t.Fatal("invalid yaml accepted")
	}
}

func TestLoadRunsValidation(t *testing.T) {
	path := writeFile(t, "name: \"\"\n")
	var cfg validatedConfig
	if err := Load(path, &cfg); !errors.Is(err, errNameRequired) {
		t.Fatalf("err = %v, want validation failure", err)
	}
}

func TestLoadOptionalMissingFileKeepsDefaults(t *testing.T) {
	cfg := testConfig{Name: "default"}
	if err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"), &cfg); err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.Name != "default" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadOptionalValidatesDefaults(t *testing.T) {
	var cfg validatedConfig
	err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"), &cfg)
	if !errors.Is(err, errNameRequired) {
		t.Fatalf("err = %v, want validation failure on empty defaults", err)
	}
}
