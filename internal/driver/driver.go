package driver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ksyq12/cpf/internal/errors"
)

// Driver manages the configuration files of one service
type Driver interface {
	// Name returns the driver name (nginx, php-fpm)
	Name() string

	// Paths returns the driver's config directories
	Paths() Paths

	// ConfigPath returns the path of the named config file
	ConfigPath(name string) string

	// Create writes a new config file; an existing file is left untouched
	Create(name, content string) error

	// Copy copies src into the config directory under its base name
	Copy(src string) (string, error)

	// Remove deletes a config file, disabling it first where applicable
	Remove(name string) error

	// List returns the config file names, sorted
	List() ([]string, error)
}

// Linker is implemented by drivers that activate configs through symlinks
type Linker interface {
	// Enable links the config into the enabled directory
	Enable(name string) error

	// Disable removes the link from the enabled directory
	Disable(name string) error

	// IsEnabled checks if the link exists
	IsEnabled(name string) (bool, error)

	// ListEnabled returns the names in the enabled directory, sorted
	ListEnabled() ([]string, error)
}

// Paths contains the config directory paths
type Paths struct {
	Available string // config available directory
	Enabled   string // config enabled directory; empty when unused
}

// createExclusive writes content to path, refusing to replace an existing file
func createExclusive(path, content string, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if os.IsExist(err) {
			return errors.AlreadyExists(path)
		}
		return errors.Wrap(errors.ErrCodeInternal, "failed to create config file", err)
	}

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return errors.Wrap(errors.ErrCodeInternal, "failed to write config file", err)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to write config file", err)
	}
	return nil
}

// copyInto copies src into dir keeping its base name and permission bits
func copyInto(src, dir string) (string, error) {
	name := filepath.Base(src)
	if name == "." || name == string(filepath.Separator) {
		return "", errors.Validation(fmt.Sprintf("invalid source file: %s", src))
	}

	in, err := os.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NotFound(src)
		}
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to open source file", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to stat source file", err)
	}
	if info.IsDir() {
		return "", errors.Validation(fmt.Sprintf("source is a directory: %s", src))
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to create config directory", err)
	}

	dst := filepath.Join(dir, name)
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		if os.IsExist(err) {
			return "", errors.AlreadyExists(dst)
		}
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to create config file", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to copy config file", err)
	}
	if err := out.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to copy config file", err)
	}

	return name, nil
}

// listDir returns the non-hidden entry names of dir; a missing dir is empty
func listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// removeFile deletes path, reporting NOT_FOUND when it was already absent
func removeFile(path string) error {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return errors.NotFound(path)
		}
		return errors.Wrap(errors.ErrCodeInternal, "failed to remove config file", err)
	}
	return nil
}

// ValidateName rejects names that would escape the config directory
func ValidateName(name string) error {
	if name == "" {
		return errors.Validation("config name cannot be empty")
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return errors.Validation(fmt.Sprintf("invalid config name: %s", name))
	}
	return nil
}
