package driver

import (
	"os"
	"path/filepath"

	"github.com/ksyq12/cpf/internal/errors"
	"github.com/ksyq12/cpf/internal/logger"
)

// PoolDriver manages PHP-FPM pool files in one version's pool.d directory
type PoolDriver struct {
	paths Paths
}

// NewPool creates a pool driver for the given pool.d directory
func NewPool(poolDir string) *PoolDriver {
	return &PoolDriver{paths: Paths{Available: poolDir}}
}

// Name returns the driver name
func (p *PoolDriver) Name() string {
	return "php-fpm"
}

// Paths returns the pool directory
func (p *PoolDriver) Paths() Paths {
	return p.paths
}

// ConfigPath returns the path of a pool file
func (p *PoolDriver) ConfigPath(name string) string {
	return filepath.Join(p.paths.Available, name)
}

// Create writes a new pool file
func (p *PoolDriver) Create(name, content string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	if err := os.MkdirAll(p.paths.Available, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to create pool directory", err)
	}

	path := p.ConfigPath(name)
	if err := createExclusive(path, content, 0644); err != nil {
		return err
	}

	logger.DebugFields("pool file written", map[string]interface{}{"path": path, "bytes": len(content)})
	return nil
}

// Copy copies an existing pool file into the pool directory
func (p *PoolDriver) Copy(src string) (string, error) {
	name, err := copyInto(src, p.paths.Available)
	if err != nil {
		return "", err
	}
	logger.Debug("copied %s to %s", src, p.ConfigPath(name))
	return name, nil
}

// Remove deletes a pool file; NOT_FOUND when it does not exist
func (p *PoolDriver) Remove(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return removeFile(p.ConfigPath(name))
}

// List returns all pool file names
func (p *PoolDriver) List() ([]string, error) {
	return listDir(p.paths.Available)
}
