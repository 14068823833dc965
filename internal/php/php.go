// Package php detects the installed PHP version and derives the
// version-specific PHP-FPM names: pool directory, systemd unit, self-test
// binary, per-pool socket and error log.
package php

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/ksyq12/cpf/internal/executor"
	"github.com/ksyq12/cpf/internal/logger"
)

var (
	outputPattern  = regexp.MustCompile(`PHP (\d+\.\d+)`)
	versionPattern = regexp.MustCompile(`^\d+\.\d+$`)
)

// ParseVersion extracts the first major.minor pair following "PHP " in
// the interpreter's version banner.
func ParseVersion(output string) (string, bool) {
	m := outputPattern.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// DetectVersion runs `<binary> -v` and returns the parsed version, or
// fallback when the interpreter is missing or its output is unparsable.
// The exit status of the interpreter is not inspected.
func DetectVersion(exec executor.CommandExecutor, binary, fallback string) string {
	out, err := exec.Execute(binary, "-v")
	if err != nil {
		logger.Debug("%s -v failed: %v", binary, err)
	}
	if version, ok := ParseVersion(string(out)); ok {
		logger.Debug("detected PHP %s", version)
		return version
	}
	logger.Debug("could not detect PHP version, using %s", fallback)
	return fallback
}

// ValidVersion reports whether v looks like 8.1
func ValidVersion(v string) bool {
	return versionPattern.MatchString(v)
}

// PoolDir returns {baseDir}/{version}/fpm/pool.d
func PoolDir(baseDir, version string) string {
	return filepath.Join(baseDir, version, "fpm", "pool.d")
}

// Unit returns the systemd unit name, e.g. php8.1-fpm
func Unit(version string) string {
	return fmt.Sprintf("php%s-fpm", version)
}

// FPMBinary returns the FPM daemon binary used for config tests, e.g. php-fpm8.1
func FPMBinary(version string) string {
	return fmt.Sprintf("php-fpm%s", version)
}

// SocketPath returns the per-pool listen socket, e.g. /run/php/php8.1-fpm-example.com.sock
func SocketPath(socketDir, version, domain string) string {
	return filepath.Join(socketDir, fmt.Sprintf("php%s-fpm-%s.sock", version, domain))
}

// ErrorLogPath returns the per-pool error log, e.g. /var/log/php8.1-fpm-example.com.log
func ErrorLogPath(logDir, version, domain string) string {
	return filepath.Join(logDir, fmt.Sprintf("php%s-fpm-%s.log", version, domain))
}
