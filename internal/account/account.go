// Package account creates the host user a site or pool runs as.
package account

import (
	"fmt"
	"regexp"

	"github.com/ksyq12/cpf/internal/errors"
	"github.com/ksyq12/cpf/internal/executor"
	"github.com/ksyq12/cpf/internal/input"
	"github.com/ksyq12/cpf/internal/logger"
	"github.com/ksyq12/cpf/internal/output"
)

// Prompts shown while collecting credentials
const (
	UsernamePrompt = "Please type username for the new user: "
	PasswordPrompt = "Password: "
	RetypePrompt   = "Retype password: "
)

// Same rule as useradd's default NAME_REGEX; also keeps names from
// being read as flags.
var usernamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_-]*\$?$`)

// ValidUsername reports whether name is acceptable to useradd
func ValidUsername(name string) bool {
	return len(name) <= 32 && usernamePattern.MatchString(name)
}

// Credentials is a username with its confirmed password
type Credentials struct {
	Username string
	Password string
}

// Provisioner prompts for and creates host accounts
type Provisioner struct {
	exec     executor.CommandExecutor
	prompter input.Prompter
	shell    string
}

// NewProvisioner creates a Provisioner that gives new accounts shell
func NewProvisioner(exec executor.CommandExecutor, prompter input.Prompter, shell string) *Provisioner {
	return &Provisioner{exec: exec, prompter: prompter, shell: shell}
}

// Prompt asks for a username and a password entered twice.
// errors.ErrPasswordMismatch is returned when the entries differ.
func (p *Provisioner) Prompt() (Credentials, error) {
	username, err := p.prompter.ReadLine(UsernamePrompt)
	if err != nil {
		return Credentials{}, errors.Wrap(errors.ErrCodeValidation, "failed to read username", err)
	}
	if !ValidUsername(username) {
		return Credentials{}, errors.Validation(fmt.Sprintf("invalid username: %q", username))
	}

	password, err := p.prompter.ReadPassword(PasswordPrompt)
	if err != nil {
		return Credentials{}, errors.Wrap(errors.ErrCodeValidation, "failed to read password", err)
	}
	retyped, err := p.prompter.ReadPassword(RetypePrompt)
	if err != nil {
		return Credentials{}, errors.Wrap(errors.ErrCodeValidation, "failed to read password", err)
	}

	if password != retyped {
		return Credentials{}, errors.ErrPasswordMismatch
	}

	return Credentials{Username: username, Password: password}, nil
}

// Create adds the account with a home directory and sets its password.
// The password is not set when useradd fails, so an existing account
// keeps its password.
func (p *Provisioner) Create(c Credentials) error {
	logger.Debug("creating user %s with shell %s", c.Username, p.shell)

	if err := p.exec.Run("useradd", "-m", "-s", p.shell, c.Username); err != nil {
		return errors.External("useradd", err)
	}
	if err := p.exec.RunWithInput(c.Username+":"+c.Password, "chpasswd"); err != nil {
		return errors.External("chpasswd", err)
	}

	output.Success("User %s created.", c.Username)
	return nil
}

// Provision prompts for credentials and creates the account. The username
// is returned even when an account tool failed.
func (p *Provisioner) Provision() (string, error) {
	creds, err := p.Prompt()
	if err != nil {
		return "", err
	}
	return creds.Username, p.Create(creds)
}
