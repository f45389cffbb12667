package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEnvironmentNotConfigured is returned by Profiles.Lookup when no profile
// exists for the requested environment name.
var ErrEnvironmentNotConfigured = errors.New("environment not configured")

// EnvironmentProfile is the connection target and credentials for one named
// deployment environment (dev, staging, prod, ...).
type EnvironmentProfile struct {
	Name     string `yaml:"name"`
	Driver   string `yaml:"driver"` // "sqlserver" or "postgres"
	Server   string `yaml:"server"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
	UserID   string `yaml:"user"`
	Password string `yaml:"password"`
	Encrypt  bool   `yaml:"encrypt"`
}

// Profiles is the set of environment profiles, loaded once at startup and
// read-only afterwards.
type Profiles struct {
	byName map[string]EnvironmentProfile
	names  []string
}

type environmentsFile struct {
	Environments []EnvironmentProfile `yaml:"environments"`
}

// LoadProfiles reads the environments file and applies per-environment env
// var overrides (e.g. STAGING_SQL_PASSWORD overrides the staging password),
// so credentials can stay out of the file.
func LoadProfiles(path string) (*Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read environments file: %w", err)
	}

	var parsed environmentsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse environments file %s: %w", path, err)
	}

	for i := range parsed.Environments {
		applyOverrides(&parsed.Environments[i])
	}

	return NewProfiles(parsed.Environments)
}

// NewProfiles builds the profile set from already-parsed data.
func NewProfiles(environments []EnvironmentProfile) (*Profiles, error) {
	profiles := &Profiles{byName: make(map[string]EnvironmentProfile, len(environments))}
	for _, p := range environments {
		if p.Name == "" {
			return nil, errors.New("environment entry has no name")
		}
		if p.Driver == "" {
			p.Driver = "sqlserver"
		}
		key := strings.ToLower(p.Name)
		if _, dup := profiles.byName[key]; dup {
			return nil, fmt.Errorf("duplicate environment name %q", p.Name)
		}
		profiles.byName[key] = p
		profiles.names = append(profiles.names, key)
	}

	return profiles, nil
}

func applyOverrides(p *EnvironmentProfile) {
	prefix := strings.ToUpper(p.Name) + "_"
	p.Driver = getEnv(prefix+"SQL_DRIVER", p.Driver)
	p.Server = getEnv(prefix+"SQL_SERVER", p.Server)
	p.Port = getEnv(prefix+"SQL_PORT", p.Port)
	p.Database = getEnv(prefix+"SQL_DATABASE", p.Database)
	p.UserID = getEnv(prefix+"SQL_USER", p.UserID)
	p.Password = getEnv(prefix+"SQL_PASSWORD", p.Password)
	if v := os.Getenv(prefix + "SQL_ENCRYPT"); v != "" {
		p.Encrypt = v == "true"
	}
}

// Lookup resolves an environment name case-insensitively.
func (p *Profiles) Lookup(name string) (EnvironmentProfile, error) {
	profile, ok := p.byName[strings.ToLower(name)]
	if !ok {
		return EnvironmentProfile{}, fmt.Errorf("%w: %s", ErrEnvironmentNotConfigured, name)
	}
	return profile, nil
}

// Names returns the configured environment names in file order.
func (p *Profiles) Names() []string {
	return p.names
}
