package cli

import (
	"os"

	"github.com/ksyq12/cpf/internal/config"
	"github.com/ksyq12/cpf/internal/driver"
	"github.com/ksyq12/cpf/internal/errors"
	"github.com/ksyq12/cpf/internal/executor"
	"github.com/ksyq12/cpf/internal/input"
	"github.com/ksyq12/cpf/internal/platform"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader  ConfigLoader
	RootChecker   RootChecker
	DriverFactory DriverFactory
	Executor      executor.CommandExecutor
	Prompter      input.Prompter
	WorkDir       WorkDir
}

// ConfigLoader handles configuration loading
type ConfigLoader interface {
	Load(path string) (*config.Config, error)
}

// SiteDriver manages site files that are switched on through links
type SiteDriver interface {
	driver.Driver
	driver.Linker
}

// DriverFactory creates driver instances
type DriverFactory interface {
	Sites(paths driver.Paths) SiteDriver
	Pools(poolDir string) driver.Driver
}

// RootChecker checks root privileges
type RootChecker interface {
	RequireRoot() error
}

// WorkDir resolves the directory relative --file sources are read from
type WorkDir interface {
	Getwd() (string, error)
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	ConfigLoader:  &realConfigLoader{},
	RootChecker:   &realRootChecker{},
	DriverFactory: &realDriverFactory{},
	Executor:      executor.NewSystemExecutor(),
	Prompter:      input.NewTerminalPrompter(),
	WorkDir:       &realWorkDir{},
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}

type realConfigLoader struct{}

func (r *realConfigLoader) Load(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

type realRootChecker struct{}

func (r *realRootChecker) RequireRoot() error {
	if err := platform.Supported(); err != nil {
		return errors.Wrap(errors.ErrCodePermission, "cannot manage services here", err)
	}
	return platform.RequireRoot()
}

type realDriverFactory struct{}

func (r *realDriverFactory) Sites(paths driver.Paths) SiteDriver {
	return driver.NewNginxWithPaths(paths.Available, paths.Enabled)
}

func (r *realDriverFactory) Pools(poolDir string) driver.Driver {
	return driver.NewPool(poolDir)
}

type realWorkDir struct{}

func (r *realWorkDir) Getwd() (string, error) {
	return os.Getwd()
}
