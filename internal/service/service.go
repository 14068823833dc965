// Package service drives systemd units and the services' own config tests.
//
// Nothing here interprets results: helper output goes straight to the
// terminal and a non-zero exit comes back as an errors.External value that
// carries the helper's exit status.
package service

import (
	"github.com/ksyq12/cpf/internal/errors"
	"github.com/ksyq12/cpf/internal/executor"
	"github.com/ksyq12/cpf/internal/logger"
	"github.com/ksyq12/cpf/internal/output"
)

// Action is a lifecycle action
type Action string

// Lifecycle actions
const (
	Start   Action = "start"
	Stop    Action = "stop"
	Restart Action = "restart"
	Reload  Action = "reload"
	Status  Action = "status"
)

var progress = map[Action]string{
	Start:   "Starting",
	Stop:    "Stopping",
	Restart: "Restarting",
	Reload:  "Reloading",
}

// Actions returns every lifecycle action in display order
func Actions() []Action {
	return []Action{Start, Stop, Restart, Reload, Status}
}

// Unit describes a managed service
type Unit struct {
	Name       string // systemd unit, e.g. php8.1-fpm
	Label      string // shown to the user, e.g. PHP-FPM 8.1
	TestBinary string // binary run with -t for status, e.g. php-fpm8.1
}

// Manager runs lifecycle actions through systemctl
type Manager struct {
	exec executor.CommandExecutor
}

// New creates a Manager
func New(exec executor.CommandExecutor) *Manager {
	return &Manager{exec: exec}
}

// Do performs action on unit. status runs the unit's config test instead
// of asking systemd.
func (m *Manager) Do(action Action, unit Unit) error {
	logger.DebugFields("service action", map[string]interface{}{"action": action, "unit": unit.Name})

	if action == Status {
		output.Info("Checking %s configuration...", unit.Label)
		return errors.External(unit.TestBinary, m.exec.Run(unit.TestBinary, "-t"))
	}

	verb, ok := progress[action]
	if !ok {
		return errors.Validation("unknown action: " + string(action))
	}

	output.Info("%s %s...", verb, unit.Label)
	return errors.External("systemctl", m.exec.Run("systemctl", string(action), unit.Name))
}
