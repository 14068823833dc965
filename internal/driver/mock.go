package driver

import "path/filepath"

// MockDriver is a test double for the Driver and Linker interfaces
type MockDriver struct {
	name  string
	paths Paths

	// Function mocks - set these to customize behavior
	CreateFunc      func(name, content string) error
	CopyFunc        func(src string) (string, error)
	RemoveFunc      func(name string) error
	ListFunc        func() ([]string, error)
	EnableFunc      func(name string) error
	DisableFunc     func(name string) error
	IsEnabledFunc   func(name string) (bool, error)
	ListEnabledFunc func() ([]string, error)

	// Call tracking - check these to verify interactions
	CreateCalls  []CreateCall
	CopyCalls    []string
	RemoveCalls  []string
	EnableCalls  []string
	DisableCalls []string
	ListCalls    int
}

// CreateCall records arguments passed to Create
type CreateCall struct {
	Name    string
	Content string
}

// NewMockDriver creates a new MockDriver with default no-op implementations
func NewMockDriver(name, availableDir, enabledDir string) *MockDriver {
	return &MockDriver{
		name: name,
		paths: Paths{
			Available: availableDir,
			Enabled:   enabledDir,
		},
	}
}

// Name returns the driver name
func (m *MockDriver) Name() string {
	return m.name
}

// Paths returns the configured paths
func (m *MockDriver) Paths() Paths {
	return m.paths
}

// ConfigPath joins name onto the available directory
func (m *MockDriver) ConfigPath(name string) string {
	return filepath.Join(m.paths.Available, name)
}

// Create records the call and invokes the mock function if set
func (m *MockDriver) Create(name, content string) error {
	m.CreateCalls = append(m.CreateCalls, CreateCall{Name: name, Content: content})
	if m.CreateFunc != nil {
		return m.CreateFunc(name, content)
	}
	return nil
}

// Copy records the call and invokes the mock function if set
func (m *MockDriver) Copy(src string) (string, error) {
	m.CopyCalls = append(m.CopyCalls, src)
	if m.CopyFunc != nil {
		return m.CopyFunc(src)
	}
	return filepath.Base(src), nil
}

// Remove records the call and invokes the mock function if set
func (m *MockDriver) Remove(name string) error {
	m.RemoveCalls = append(m.RemoveCalls, name)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(name)
	}
	return nil
}

// List records the call and invokes the mock function if set
func (m *MockDriver) List() ([]string, error) {
	m.ListCalls++
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return []string{}, nil
}

// Enable records the call and invokes the mock function if set
func (m *MockDriver) Enable(name string) error {
	m.EnableCalls = append(m.EnableCalls, name)
	if m.EnableFunc != nil {
		return m.EnableFunc(name)
	}
	return nil
}

// Disable records the call and invokes the mock function if set
func (m *MockDriver) Disable(name string) error {
	m.DisableCalls = append(m.DisableCalls, name)
	if m.DisableFunc != nil {
		return m.DisableFunc(name)
	}
	return nil
}

// IsEnabled invokes the mock function if set
func (m *MockDriver) IsEnabled(name string) (bool, error) {
	if m.IsEnabledFunc != nil {
		return m.IsEnabledFunc(name)
	}
	return false, nil
}

// ListEnabled invokes the mock function if set
func (m *MockDriver) ListEnabled() ([]string, error) {
	if m.ListEnabledFunc != nil {
		return m.ListEnabledFunc()
	}
	return []string{}, nil
}
