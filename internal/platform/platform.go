// Package platform answers questions about the host the tools run on.
package platform

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/ksyq12/cpf/internal/errors"
)

// IsRoot reports whether the effective user is root.
func IsRoot() bool {
	return unix.Geteuid() == 0
}

// RequireRoot returns errors.ErrRootRequired unless running as root.
func RequireRoot() error {
	if !IsRoot() {
		return errors.ErrRootRequired
	}
	return nil
}

// Supported reports whether the host layout (systemd units, Debian style
// nginx and PHP directories) can be managed on this OS.
func Supported() error {
	if runtime.GOOS != "linux" {
		return fmt.Errorf("unsupported platform: %s (linux required)", Platform())
	}
	return nil
}

// Platform returns a string describing the current platform.
func Platform() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
