package executor

import (
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/ksyq12/cpf/internal/logger"
)

// CommandExecutor is an interface for executing system commands
type CommandExecutor interface {
	// Execute runs a command and captures its combined output
	Execute(name string, args ...string) ([]byte, error)

	// Run runs a command attached to the terminal; output is passed through
	Run(name string, args ...string) error

	// RunWithInput runs a command with input piped to its stdin
	RunWithInput(input string, name string, args ...string) error

	// LookPath searches for an executable in the directories named by the PATH
	LookPath(file string) (string, error)
}

// SystemExecutor implements CommandExecutor using os/exec
type SystemExecutor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewSystemExecutor creates a SystemExecutor bound to the process terminal
func NewSystemExecutor() *SystemExecutor {
	return &SystemExecutor{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Execute runs a command and returns combined output
func (e *SystemExecutor) Execute(name string, args ...string) ([]byte, error) {
	logger.Debug("exec: %s %s", name, strings.Join(args, " "))
	cmd := exec.Command(name, args...)
	return cmd.CombinedOutput()
}

// Run runs a command with the executor's stdio
func (e *SystemExecutor) Run(name string, args ...string) error {
	logger.Debug("run: %s %s", name, strings.Join(args, " "))
	cmd := exec.Command(name, args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	return cmd.Run()
}

// RunWithInput runs a command reading stdin from input. The input is
// never logged since it may carry credentials.
func (e *SystemExecutor) RunWithInput(input string, name string, args ...string) error {
	logger.Debug("run (piped stdin): %s %s", name, strings.Join(args, " "))
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	return cmd.Run()
}

// LookPath searches for an executable
func (e *SystemExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// MockExecutor is a mock implementation for testing
type MockExecutor struct {
	ExecuteFunc  func(name string, args ...string) ([]byte, error)
	RunFunc      func(name string, args ...string) error
	LookPathFunc func(file string) (string, error)
	Calls        []CommandCall
}

// CommandCall records a command execution for verification
type CommandCall struct {
	Name  string
	Args  []string
	Input string
}

// String renders the call as a shell-like command line
func (c CommandCall) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Execute records the call and invokes ExecuteFunc if set
func (m *MockExecutor) Execute(name string, args ...string) ([]byte, error) {
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args})
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(name, args...)
	}
	return []byte(""), nil
}

// Run records the call and invokes RunFunc if set
func (m *MockExecutor) Run(name string, args ...string) error {
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args})
	if m.RunFunc != nil {
		return m.RunFunc(name, args...)
	}
	return nil
}

// RunWithInput records the call with its input and invokes RunFunc if set
func (m *MockExecutor) RunWithInput(input string, name string, args ...string) error {
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args, Input: input})
	if m.RunFunc != nil {
		return m.RunFunc(name, args...)
	}
	return nil
}

// LookPath calls the mock function
func (m *MockExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}

// Commands returns every recorded call rendered as a command line
func (m *MockExecutor) Commands() []string {
	out := make([]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		out = append(out, c.String())
	}
	return out
}

// Called reports whether a command with the given name was recorded
func (m *MockExecutor) Called(name string) bool {
	for _, c := range m.Calls {
		if c.Name == name {
			return true
		}
	}
	return false
}
