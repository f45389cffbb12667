package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sqlintent/config"
)

func TestLoadProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environments.yaml")
	content := `environments:
  - name: dev
    driver: sqlserver
    server: localhost
    port: "1433"
    database: sales_dev
    user: dev_user
    password: secret
  - name: staging
    driver: postgres
    server: staging-db
    port: "5432"
    database: sales_staging
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write environments file: %v", err)
	}

	profiles, err := config.LoadProfiles(path)
	if err != nil {
		t.Fatalf("LoadProfiles: %v", err)
	}

	dev, err := profiles.Lookup("DEV") // lookup is case-insensitive
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if dev.Server != "localhost" || dev.Database != "sales_dev" {
		t.Errorf("unexpected dev profile: %+v", dev)
	}

	staging, err := profiles.Lookup("staging")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if staging.Driver != "postgres" {
		t.Errorf("staging driver = %q, want postgres", staging.Driver)
	}

	if got := profiles.Names(); len(got) != 2 || got[0] != "dev" {
		t.Errorf("Names() = %v", got)
	}
}

func TestLookupUnknownEnvironment(t *testing.T) {
	profiles, err := config.NewProfiles([]config.EnvironmentProfile{{Name: "dev"}})
	if err != nil {
		t.Fatalf("NewProfiles: %v", err)
	}

	_, err = profiles.Lookup("staging")
	if !errors.Is(err, config.ErrEnvironmentNotConfigured) {
		t.Errorf("expected ErrEnvironmentNotConfigured, got %v", err)
	}
}

func TestEnvVarOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environments.yaml")
	content := `environments:
  - name: prod
    server: prod-db
    database: sales
    user: app_user
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write environments file: %v", err)
	}

	t.Setenv("PROD_SQL_PASSWORD", "from-env")
	t.Setenv("PROD_SQL_ENCRYPT", "true")

	profiles, err := config.LoadProfiles(path)
	if err != nil {
		t.Fatalf("LoadProfiles: %v", err)
	}

	prod, err := profiles.Lookup("prod")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if prod.Password != "from-env" {
		t.Errorf("password override not applied: %q", prod.Password)
	}
	if !prod.Encrypt {
		t.Error("encrypt override not applied")
	}
	if prod.Driver != "sqlserver" {
		t.Errorf("driver default = %q, want sqlserver", prod.Driver)
	}
}

func TestNewProfilesValidation(t *testing.T) {
	if _, err := config.NewProfiles([]config.EnvironmentProfile{{}}); err == nil {
		t.Error("expected error for a nameless environment")
	}
	if _, err := config.NewProfiles([]config.EnvironmentProfile{{Name: "dev"}, {Name: "DEV"}}); err == nil {
		t.Error("expected error for duplicate environment names")
	}
}
