package cli

import (
	"github.com/ksyq12/cpf/internal/config"
	"github.com/ksyq12/cpf/internal/driver"
	"github.com/ksyq12/cpf/internal/errors"
	"github.com/ksyq12/cpf/internal/executor"
	"github.com/ksyq12/cpf/internal/input"
)

// MockConfigLoader is a test double for ConfigLoader
type MockConfigLoader struct {
	Cfg     *config.Config
	LoadErr error
	Paths   []string
}

func (m *MockConfigLoader) Load(path string) (*config.Config, error) {
	m.Paths = append(m.Paths, path)
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Cfg == nil {
		m.Cfg = config.New()
	}
	return m.Cfg, nil
}

// MockRootChecker is a test double for RootChecker
type MockRootChecker struct {
	IsRoot bool
	Calls  int
}

func (m *MockRootChecker) RequireRoot() error {
	m.Calls++
	if !m.IsRoot {
		return errors.ErrRootRequired
	}
	return nil
}

// MockDriverFactory hands out one MockDriver for sites and pools alike
type MockDriverFactory struct {
	Driver    *driver.MockDriver
	SitePaths []driver.Paths
	PoolDirs  []string
}

func (m *MockDriverFactory) Sites(paths driver.Paths) SiteDriver {
	m.SitePaths = append(m.SitePaths, paths)
	return m.Driver
}

func (m *MockDriverFactory) Pools(poolDir string) driver.Driver {
	m.PoolDirs = append(m.PoolDirs, poolDir)
	return m.Driver
}

// MockWorkDir returns a fixed working directory
type MockWorkDir struct {
	Dir string
	Err error
}

func (m *MockWorkDir) Getwd() (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Dir, nil
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults.
// Drivers work on the real file system unless WithDriver is used.
func NewMockDeps() *MockDependenciesBuilder {
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			ConfigLoader:  &MockConfigLoader{Cfg: config.New()},
			RootChecker:   &MockRootChecker{IsRoot: true},
			DriverFactory: &realDriverFactory{},
			Executor:      &executor.MockExecutor{},
			Prompter:      input.NewStringPrompter(),
			WorkDir:       &MockWorkDir{Dir: "/root"},
		},
	}
}

// WithConfig sets the config for the mock
func (b *MockDependenciesBuilder) WithConfig(cfg *config.Config) *MockDependenciesBuilder {
	b.deps.ConfigLoader = &MockConfigLoader{Cfg: cfg}
	return b
}

// WithConfigLoader sets a custom config loader
func (b *MockDependenciesBuilder) WithConfigLoader(loader ConfigLoader) *MockDependenciesBuilder {
	b.deps.ConfigLoader = loader
	return b
}

// WithDriver routes every driver request to drv
func (b *MockDependenciesBuilder) WithDriver(drv *driver.MockDriver) *MockDependenciesBuilder {
	b.deps.DriverFactory = &MockDriverFactory{Driver: drv}
	return b
}

// WithDriverFactory sets a custom driver factory
func (b *MockDependenciesBuilder) WithDriverFactory(factory DriverFactory) *MockDependenciesBuilder {
	b.deps.DriverFactory = factory
	return b
}

// WithRootAccess sets whether root access is available
func (b *MockDependenciesBuilder) WithRootAccess(isRoot bool) *MockDependenciesBuilder {
	b.deps.RootChecker = &MockRootChecker{IsRoot: isRoot}
	return b
}

// WithExecutor sets the command executor
func (b *MockDependenciesBuilder) WithExecutor(exec executor.CommandExecutor) *MockDependenciesBuilder {
	b.deps.Executor = exec
	return b
}

// WithAnswers queues prompt answers, in order
func (b *MockDependenciesBuilder) WithAnswers(answers ...string) *MockDependenciesBuilder {
	b.deps.Prompter = input.NewStringPrompter(answers...)
	return b
}

// WithWorkDir sets the directory relative --file sources resolve against
func (b *MockDependenciesBuilder) WithWorkDir(dir string) *MockDependenciesBuilder {
	b.deps.WorkDir = &MockWorkDir{Dir: dir}
	return b
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}
