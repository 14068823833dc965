package cli

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/ksyq12/cpf/internal/driver"
	"github.com/ksyq12/cpf/internal/errors"
)

const wantPool = `[example.com]
user = web
group = web
listen = /run/php/php8.1-fpm-example.com.sock
listen.owner = www-data
listen.group = www-data
pm = dynamic
pm.max_children = 50
pm.start_servers = 5
pm.min_spare_servers = 5
pm.max_spare_servers = 35
pm.max_requests = 500
chdir = /var/www/example

; Adjust php.ini settings for this pool
php_admin_value[error_log] = /var/log/php8.1-fpm-example.com.log
`

func TestFPMAdd(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun(t, fpmRootCmd, "add",
		"--domain", "https://example.com/",
		"--root-dir", "/var/www/example",
		"--user", "web",
		"--php-version", "8.1")

	if got := readFile(t, env.poolPath("8.1", "example.com.conf")); got != wantPool {
		t.Errorf("pool mismatch:\n%s", got)
	}
	if len(env.exec.Calls) != 0 {
		t.Errorf("an explicit version skips detection, got %v", env.exec.Commands())
	}
	env.wantOutput(t,
		"Configuration for example.com.conf added.",
		"Run 'systemctl restart php8.1-fpm' to restart PHP-FPM service.")
}

func TestFPMAdd_DetectedVersion(t *testing.T) {
	env := newTestEnv(t)
	env.exec.ExecuteFunc = func(name string, args ...string) ([]byte, error) {
		return []byte("PHP 8.2.7 (cli) (built: Jun  9 2023 07:39:06) (NTS)\n"), nil
	}

	env.mustRun(t, fpmRootCmd, "add",
		"--domain", "example.com", "--root-dir", "/var/www/example", "--user", "web")

	if want := []string{"php -v"}; !reflect.DeepEqual(env.exec.Commands(), want) {
		t.Errorf("expected %v, got %v", want, env.exec.Commands())
	}
	content := readFile(t, env.poolPath("8.2", "example.com.conf"))
	for _, want := range []string{
		"listen = /run/php/php8.2-fpm-example.com.sock",
		"php_admin_value[error_log] = /var/log/php8.2-fpm-example.com.log",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("pool missing %q", want)
		}
	}
}

func TestFPMAdd_ExistingFileUnchanged(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, env.poolPath("8.1", "example.com.conf"), "; mine\n")

	env.mustRun(t, fpmRootCmd, "add", "--domain", "example.com",
		"--root-dir", "/var/www/example", "--user", "web", "--php-version", "8.1")

	if got := readFile(t, env.poolPath("8.1", "example.com.conf")); got != "; mine\n" {
		t.Errorf("existing pool was overwritten: %q", got)
	}
	env.wantOutput(t,
		"Cannot create config file.",
		fmt.Sprintf("Config file '%s' already exists.", env.poolPath("8.1", "example.com.conf")))
}

func TestFPMAdd_MissingOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no domain", []string{"--root-dir", "/var/www", "--user", "web"}},
		{"no root", []string{"--domain", "example.com", "--user", "web"}},
		{"no user", []string{"--domain", "example.com", "--root-dir", "/var/www"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			args := append([]string{"add", "--php-version", "8.1"}, tt.args...)
			err := env.run(fpmRootCmd, args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if want := "Please provide all required options: domain, root directory, and user."; err.Error() != want {
				t.Errorf("expected %q, got %q", want, err.Error())
			}
			if errors.ExitStatus(err) != 1 {
				t.Errorf("expected exit 1, got %d", errors.ExitStatus(err))
			}
		})
	}
}

func TestFPMAdd_RejectsUnsafeValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"directive injected through user", []string{"--domain", "example.com", "--user", "bob\nphp_admin_value[open_basedir] = /"}},
		{"uppercase user", []string{"--domain", "example.com", "--user", "Bob"}},
		{"semicolon in domain", []string{"--domain", "example.com;x", "--user", "web"}},
		{"newline in root", []string{"--domain", "example.com", "--user", "web", "--root-dir", "/var/www\nuser = root"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			args := append([]string{"add", "--php-version", "8.1", "--root-dir", "/var/www/example"}, tt.args...)
			err := env.run(fpmRootCmd, args...)
			if !errors.Is(err, errors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if fileExists(env.poolPath("8.1", "example.com.conf")) {
				t.Error("no pool should be written")
			}
		})
	}
}

func TestFPMAdd_CreatedUserRunsPool(t *testing.T) {
	env := newTestEnvWith(t, NewMockDeps().WithAnswers("web", "pw", "pw"))

	env.mustRun(t, fpmRootCmd, "add", "--adduser",
		"--domain", "example.com", "--root-dir", "/var/www/example", "--php-version", "8.1")

	if want := []string{"useradd -m -s /bin/bash web", "chpasswd"}; !reflect.DeepEqual(env.exec.Commands(), want) {
		t.Errorf("expected %v, got %v", want, env.exec.Commands())
	}
	if got := readFile(t, env.poolPath("8.1", "example.com.conf")); got != wantPool {
		t.Errorf("pool mismatch:\n%s", got)
	}
}

func TestFPMAdd_File(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, env.root+"/pool.conf", "[pool]\n")

	env.mustRun(t, fpmRootCmd, "add", "--file", "pool.conf", "--php-version", "8.3")
	if got := readFile(t, env.poolPath("8.3", "pool.conf")); got != "[pool]\n" {
		t.Errorf("copied content mismatch: %q", got)
	}
	env.wantOutput(t, "Configuration for pool.conf added.")

	env.out.Reset()
	env.mustRun(t, fpmRootCmd, "add", "--file", "pool.conf", "--php-version", "8.3")
	env.wantOutput(t, fmt.Sprintf("File %s already exists.", env.poolPath("8.3", "pool.conf")))

	env.out.Reset()
	env.mustRun(t, fpmRootCmd, "add", "--file", "/nonexistent/pool.conf", "--php-version", "8.3")
	env.wantOutput(t, "File /nonexistent/pool.conf not found.")
}

func TestFPMDelete(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, env.poolPath("8.1", "example.com.conf"), "[example.com]\n")

	env.mustRun(t, fpmRootCmd, "delete", "--file", "example.com.conf", "--php-version", "8.1")
	env.wantOutput(t, "Configuration for example.com.conf deleted.")
	if fileExists(env.poolPath("8.1", "example.com.conf")) {
		t.Error("pool should be removed")
	}

	env.out.Reset()
	env.mustRun(t, fpmRootCmd, "delete", "--file", "example.com.conf", "--php-version", "8.1")
	env.wantOutput(t, "Configuration file example.com.conf does not exist.")

	err := env.run(fpmRootCmd, "delete", "--php-version", "8.1")
	if err == nil || err.Error() != "Please provide the file name to delete using --file" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFPMList(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, env.poolPath("8.1", "www.conf"), "")
	writeFile(t, env.poolPath("8.1", "example.com.conf"), "")
	writeFile(t, env.poolPath("8.2", "other.conf"), "")

	env.mustRun(t, fpmRootCmd, "list", "--php-version", "8.1")
	if want := "PHP-FPM pool configurations:\n  - example.com.conf\n  - www.conf\n"; env.out.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, env.out.String())
	}

	env.out.Reset()
	env.mustRun(t, fpmRootCmd, "list", "--php-version", "8.1", "--json")
	var got struct {
		Version string   `json:"version"`
		PoolDir string   `json:"pool_dir"`
		Pools   []string `json:"pools"`
	}
	if err := json.Unmarshal(env.out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Version != "8.1" {
		t.Errorf("expected version 8.1, got %s", got.Version)
	}
	if got.PoolDir != env.poolPath("8.1", "") {
		t.Errorf("expected pool dir %s, got %s", env.poolPath("8.1", ""), got.PoolDir)
	}
	if !reflect.DeepEqual(got.Pools, []string{"example.com.conf", "www.conf"}) {
		t.Errorf("unexpected pools: %v", got.Pools)
	}
}

func TestFPM_DriverCalls(t *testing.T) {
	mockDrv := driver.NewMockDriver("php-fpm", "/etc/php/8.1/fpm/pool.d", "")
	env := newTestEnvWith(t, NewMockDeps().WithDriver(mockDrv))

	env.mustRun(t, fpmRootCmd, "add", "--domain", "example.com",
		"--root-dir", "/var/www/example", "--user", "web", "--php-version", "8.1")

	if len(mockDrv.CreateCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mockDrv.CreateCalls))
	}
	if call := mockDrv.CreateCalls[0]; call.Name != "example.com.conf" || call.Content != wantPool {
		t.Errorf("unexpected Create call: %s\n%s", call.Name, call.Content)
	}
	factory := deps.DriverFactory.(*MockDriverFactory)
	if want := []string{env.poolPath("8.1", "")}; !reflect.DeepEqual(factory.PoolDirs, want) {
		t.Errorf("expected pool dirs %v, got %v", want, factory.PoolDirs)
	}
}

func TestFPM_DriverFailures(t *testing.T) {
	diskErr := errors.Wrap(errors.ErrCodeInternal, "failed to read directory", fmt.Errorf("permission denied"))

	tests := []struct {
		name  string
		args  []string
		setup func(*driver.MockDriver)
	}{
		{
			name:  "add",
			args:  []string{"add", "--domain", "example.com", "--root-dir", "/var/www/example", "--user", "web"},
			setup: func(m *driver.MockDriver) { m.CreateFunc = func(string, string) error { return diskErr } },
		},
		{
			name:  "add --file",
			args:  []string{"add", "--file", "/srv/pool.conf"},
			setup: func(m *driver.MockDriver) { m.CopyFunc = func(string) (string, error) { return "", diskErr } },
		},
		{
			name:  "delete",
			args:  []string{"delete", "--file", "example.com.conf"},
			setup: func(m *driver.MockDriver) { m.RemoveFunc = func(string) error { return diskErr } },
		},
		{
			name:  "list",
			args:  []string{"list"},
			setup: func(m *driver.MockDriver) { m.ListFunc = func() ([]string, error) { return nil, diskErr } },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDrv := driver.NewMockDriver("php-fpm", "/etc/php/8.1/fpm/pool.d", "")
			tt.setup(mockDrv)
			env := newTestEnvWith(t, NewMockDeps().WithDriver(mockDrv))

			err := env.run(fpmRootCmd, append(tt.args, "--php-version", "8.1")...)
			if !errors.Is(err, diskErr) {
				t.Fatalf("expected internal error, got %v", err)
			}
			if errors.ExitStatus(err) != 1 {
				t.Errorf("expected exit 1, got %d", errors.ExitStatus(err))
			}
			if strings.Contains(env.out.String(), "✓") {
				t.Errorf("no success line expected, got:\n%s", env.out.String())
			}
		})
	}
}

func TestFPMService(t *testing.T) {
	tests := []struct {
		name     string
		banner   string
		args     []string
		wantCmds []string
		wantLine string
	}{
		{
			name:     "restart with detected version",
			banner:   "PHP 8.1.2-1ubuntu2.14 (cli)",
			args:     []string{"restart"},
			wantCmds: []string{"php -v", "systemctl restart php8.1-fpm"},
			wantLine: "Restarting PHP-FPM 8.1...",
		},
		{
			name:     "garbage banner falls back",
			banner:   "command not found",
			args:     []string{"start"},
			wantCmds: []string{"php -v", "systemctl start php7.4-fpm"},
			wantLine: "Starting PHP-FPM 7.4...",
		},
		{
			name:     "status with explicit version",
			args:     []string{"status", "--php-version", "8.3"},
			wantCmds: []string{"php-fpm8.3 -t"},
			wantLine: "Checking PHP-FPM 8.3 configuration...",
		},
		{
			name:     "reload with explicit version",
			args:     []string{"reload", "--php-version", "8.0"},
			wantCmds: []string{"systemctl reload php8.0-fpm"},
			wantLine: "Reloading PHP-FPM 8.0...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.exec.ExecuteFunc = func(name string, args ...string) ([]byte, error) {
				return []byte(tt.banner), nil
			}

			env.mustRun(t, fpmRootCmd, tt.args...)
			if !reflect.DeepEqual(env.exec.Commands(), tt.wantCmds) {
				t.Errorf("expected %v, got %v", tt.wantCmds, env.exec.Commands())
			}
			env.wantOutput(t, tt.wantLine)
		})
	}
}

func TestFPM_InvalidVersion(t *testing.T) {
	env := newTestEnv(t)

	err := env.run(fpmRootCmd, "restart", "--php-version", "eight")
	if !errors.Is(err, errors.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if len(env.exec.Calls) != 0 {
		t.Errorf("nothing should run, got %v", env.exec.Commands())
	}
}

func TestFPM_RequiresRoot(t *testing.T) {
	env := newTestEnvWith(t, NewMockDeps().WithRootAccess(false))

	err := env.run(fpmRootCmd, "list")
	if !errors.Is(err, errors.ErrRootRequired) {
		t.Errorf("expected root error, got %v", err)
	}
	if len(env.exec.Calls) != 0 {
		t.Errorf("nothing should run, got %v", env.exec.Commands())
	}
}
