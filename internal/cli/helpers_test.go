package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/ksyq12/cpf/internal/config"
	"github.com/ksyq12/cpf/internal/executor"
	"github.com/ksyq12/cpf/internal/output"
	"github.com/spf13/cobra"
)

// testEnv runs commands against a config re-rooted into a temp dir
type testEnv struct {
	root string
	cfg  *config.Config
	exec *executor.MockExecutor
	out  *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, NewMockDeps())
}

// newTestEnvWith installs the builder's deps, overriding config, executor
// and work dir with the temp-dir ones.
func newTestEnvWith(t *testing.T, b *MockDependenciesBuilder) *testEnv {
	t.Helper()

	root := t.TempDir()
	env := &testEnv{
		root: root,
		cfg:  config.New().WithRoot(root),
		exec: &executor.MockExecutor{},
		out:  &bytes.Buffer{},
	}

	oldDeps := deps
	deps = b.WithConfig(env.cfg).WithExecutor(env.exec).WithWorkDir(root).Build()
	output.SetOutput(env.out)
	color.NoColor = true
	resetFlags()

	t.Cleanup(func() {
		deps = oldDeps
		output.SetOutput(nil)
		resetFlags()
	})
	return env
}

// resetFlags restores flag defaults between runs of the shared commands
func resetFlags() {
	nginxOpts = nginxOptions{port: defaultPort}
	fpmOpts = fpmOptions{}
	configPath = config.DefaultPath
	jsonOutput = false
	verbose = false
}

func (e *testEnv) run(root *cobra.Command, args ...string) error {
	resetFlags()
	root.SetArgs(args)
	return root.Execute()
}

func (e *testEnv) sitePath(name string) string {
	return filepath.Join(e.cfg.Nginx.SitesAvailable, name)
}

func (e *testEnv) linkPath(name string) string {
	return filepath.Join(e.cfg.Nginx.SitesEnabled, name)
}

func (e *testEnv) poolPath(version, name string) string {
	return filepath.Join(e.cfg.PHP.BaseDir, version, "fpm", "pool.d", name)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func fileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// mustRun fails the test when the command returns an error
func (e *testEnv) mustRun(t *testing.T, root *cobra.Command, args ...string) {
	t.Helper()
	if err := e.run(root, args...); err != nil {
		t.Fatalf("%s %s failed: %v", root.Name(), strings.Join(args, " "), err)
	}
}

// wantOutput checks that every line was printed
func (e *testEnv) wantOutput(t *testing.T, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if !strings.Contains(e.out.String(), line) {
			t.Errorf("output missing %q, got:\n%s", line, e.out.String())
		}
	}
}
