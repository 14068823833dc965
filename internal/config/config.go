package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/ksyq12/cpf/internal/errors"
)

// DefaultPath is where the tools look for their configuration file
const DefaultPath = "/etc/cpf/config.yaml"

// Defaults used when the config file is absent or leaves a key out
const (
	DefaultEditor     = "nano"
	DefaultPHPVersion = "7.4"
	DefaultShell      = "/bin/bash"
)

var versionPattern = regexp.MustCompile(`^\d+\.\d+$`)

// Config represents the tool configuration
type Config struct {
	Nginx  NginxConfig `yaml:"nginx"`
	PHP    PHPConfig   `yaml:"php"`
	Users  UsersConfig `yaml:"users"`
	Editor string      `yaml:"editor"`
}

// NginxConfig locates the nginx site directories and binaries
type NginxConfig struct {
	SitesAvailable string `yaml:"sites_available"`
	SitesEnabled   string `yaml:"sites_enabled"`
	Binary         string `yaml:"binary"`
	Unit           string `yaml:"unit"`
}

// PHPConfig locates PHP-FPM pool directories, sockets and logs
type PHPConfig struct {
	BaseDir        string `yaml:"base_dir"`
	SocketDir      string `yaml:"socket_dir"`
	LogDir         string `yaml:"log_dir"`
	Binary         string `yaml:"binary"`
	DefaultVersion string `yaml:"default_version"`
	ListenOwner    string `yaml:"listen_owner"`
	ListenGroup    string `yaml:"listen_group"`
}

// UsersConfig controls host account creation
type UsersConfig struct {
	Shell string `yaml:"shell"`
}

// New creates a new Config with default values
func New() *Config {
	return &Config{
		Nginx: NginxConfig{
			SitesAvailable: "/etc/nginx/sites-available",
			SitesEnabled:   "/etc/nginx/sites-enabled",
			Binary:         "nginx",
			Unit:           "nginx",
		},
		PHP: PHPConfig{
			BaseDir:        "/etc/php",
			SocketDir:      "/run/php",
			LogDir:         "/var/log",
			Binary:         "php",
			DefaultVersion: DefaultPHPVersion,
			ListenOwner:    "www-data",
			ListenGroup:    "www-data",
		},
		Users: UsersConfig{
			Shell: DefaultShell,
		},
		Editor: DefaultEditor,
	}
}

// Load reads the config from path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := New()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", errors.ErrConfigInvalid, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errors.ErrConfigInvalid, path, err)
	}

	return cfg, nil
}

// ApplyEnv applies environment overrides using lookup (os.LookupEnv in
// production). Only a non-empty $EDITOR is honoured.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		return
	}
	if editor, ok := lookup("EDITOR"); ok && editor != "" {
		c.Editor = editor
	}
}

// Validate checks that paths are absolute and values well formed
func (c *Config) Validate() error {
	dirs := map[string]string{
		"nginx.sites_available": c.Nginx.SitesAvailable,
		"nginx.sites_enabled":   c.Nginx.SitesEnabled,
		"php.base_dir":          c.PHP.BaseDir,
		"php.socket_dir":        c.PHP.SocketDir,
		"php.log_dir":           c.PHP.LogDir,
	}
	for key, dir := range dirs {
		if dir == "" {
			return fmt.Errorf("%s cannot be empty", key)
		}
		if !filepath.IsAbs(dir) {
			return fmt.Errorf("%s must be an absolute path: %s", key, dir)
		}
	}

	if !versionPattern.MatchString(c.PHP.DefaultVersion) {
		return fmt.Errorf("php.default_version must look like 8.1, got %q", c.PHP.DefaultVersion)
	}
	if c.Editor == "" {
		return fmt.Errorf("editor cannot be empty")
	}
	if c.Users.Shell == "" {
		return fmt.Errorf("users.shell cannot be empty")
	}
	if c.Nginx.Binary == "" || c.Nginx.Unit == "" || c.PHP.Binary == "" {
		return fmt.Errorf("binary and unit names cannot be empty")
	}
	return nil
}

// WithRoot returns a copy whose on-disk config directories live under root.
// Socket and log paths are left alone since they are rendered into files.
func (c *Config) WithRoot(root string) *Config {
	cp := *c
	cp.Nginx.SitesAvailable = filepath.Join(root, c.Nginx.SitesAvailable)
	cp.Nginx.SitesEnabled = filepath.Join(root, c.Nginx.SitesEnabled)
	cp.PHP.BaseDir = filepath.Join(root, c.PHP.BaseDir)
	return &cp
}
