package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ksyq12/cpf/internal/errors"
	"github.com/ksyq12/cpf/internal/logger"
)

// NginxDriver manages sites-available files and their sites-enabled links
type NginxDriver struct {
	paths Paths
}

// NewNginx creates a new Nginx driver with the Debian default paths
func NewNginx() *NginxDriver {
	return NewNginxWithPaths("/etc/nginx/sites-available", "/etc/nginx/sites-enabled")
}

// NewNginxWithPaths creates a new Nginx driver with custom paths
func NewNginxWithPaths(available, enabled string) *NginxDriver {
	return &NginxDriver{
		paths: Paths{
			Available: available,
			Enabled:   enabled,
		},
	}
}

// Name returns the driver name
func (n *NginxDriver) Name() string {
	return "nginx"
}

// Paths returns the config paths
func (n *NginxDriver) Paths() Paths {
	return n.paths
}

// ConfigPath returns the sites-available path of a site
func (n *NginxDriver) ConfigPath(name string) string {
	return filepath.Join(n.paths.Available, name)
}

func (n *NginxDriver) linkPath(name string) string {
	return filepath.Join(n.paths.Enabled, name)
}

// Create writes a new site file to sites-available
func (n *NginxDriver) Create(name, content string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	if err := os.MkdirAll(n.paths.Available, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to create sites-available directory", err)
	}

	path := n.ConfigPath(name)
	if err := createExclusive(path, content, 0644); err != nil {
		return err
	}

	logger.DebugFields("site file written", map[string]interface{}{"path": path, "bytes": len(content)})
	return nil
}

// Copy copies an existing site file into sites-available
func (n *NginxDriver) Copy(src string) (string, error) {
	name, err := copyInto(src, n.paths.Available)
	if err != nil {
		return "", err
	}
	logger.Debug("copied %s to %s", src, n.ConfigPath(name))
	return name, nil
}

// Remove deletes the enabled link (if any) and then the site file.
// NOT_FOUND is returned when no site file existed.
func (n *NginxDriver) Remove(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	if enabled, _ := n.IsEnabled(name); enabled {
		if err := os.Remove(n.linkPath(name)); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeInternal, "failed to remove enabled link", err)
		}
	}

	return removeFile(n.ConfigPath(name))
}

// Enable activates a site by creating a symlink.
// NOT_FOUND when the site file is missing, ALREADY_EXISTS when already linked.
func (n *NginxDriver) Enable(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	source := n.ConfigPath(name)
	target := n.linkPath(name)

	if _, err := os.Stat(source); os.IsNotExist(err) {
		return errors.NotFound(source)
	}

	if _, err := os.Lstat(target); err == nil {
		return errors.AlreadyExists(target)
	}

	if err := os.MkdirAll(n.paths.Enabled, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to create sites-enabled directory", err)
	}

	if err := os.Symlink(source, target); err != nil {
		if os.IsExist(err) {
			return errors.AlreadyExists(target)
		}
		return errors.Wrap(errors.ErrCodeInternal, "failed to enable site", err)
	}

	logger.Debug("linked %s -> %s", target, source)
	return nil
}

// Disable deactivates a site by removing the symlink.
// NOT_FOUND when the site is not enabled.
func (n *NginxDriver) Disable(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	target := n.linkPath(name)

	info, err := os.Lstat(target)
	if os.IsNotExist(err) {
		return errors.NotFound(target)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to check site status", err)
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return errors.Validation(fmt.Sprintf("%s is not a symlink, refusing to remove", target))
	}

	if err := os.Remove(target); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to disable site", err)
	}

	logger.Debug("removed link %s", target)
	return nil
}

// List returns all site names from sites-available
func (n *NginxDriver) List() ([]string, error) {
	return listDir(n.paths.Available)
}

// ListEnabled returns all names from sites-enabled
func (n *NginxDriver) ListEnabled() ([]string, error) {
	return listDir(n.paths.Enabled)
}

// IsEnabled checks if a site is enabled
func (n *NginxDriver) IsEnabled(name string) (bool, error) {
	_, err := os.Lstat(n.linkPath(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check site status: %w", err)
	}
	return true, nil
}
