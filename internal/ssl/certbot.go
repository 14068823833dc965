// Package ssl requests Let's Encrypt certificates through certbot's nginx
// integration. certbot talks to the user directly (email, terms of
// service) so it runs attached to the terminal.
package ssl

import (
	"fmt"
	"strings"

	"github.com/ksyq12/cpf/internal/errors"
	"github.com/ksyq12/cpf/internal/executor"
	"github.com/ksyq12/cpf/internal/output"
)

const certbotBinary = "certbot"

// Certbot runs certbot commands
type Certbot struct {
	exec executor.CommandExecutor
}

// NewCertbot creates a Certbot using exec
func NewCertbot(exec executor.CommandExecutor) *Certbot {
	return &Certbot{exec: exec}
}

// IsInstalled checks if certbot is installed
func (c *Certbot) IsInstalled() bool {
	_, err := c.exec.LookPath(certbotBinary)
	return err == nil
}

// NginxArgs builds `--nginx -d <domain>...` for the given domains
func NginxArgs(domains []string) []string {
	args := make([]string, 0, 1+2*len(domains))
	args = append(args, "--nginx")
	for _, domain := range domains {
		args = append(args, "-d", domain)
	}
	return args
}

// IssueNginx obtains and installs a certificate for domains using the
// nginx plugin
func (c *Certbot) IssueNginx(domains []string) error {
	if len(domains) == 0 {
		return errors.Validation("at least one domain is required for a certificate")
	}
	if !c.IsInstalled() {
		return errors.Wrap(errors.ErrCodeExternal, "certbot is not installed",
			fmt.Errorf("install it with: apt install certbot python3-certbot-nginx"))
	}

	args := NginxArgs(domains)
	output.Info("Running: %s %s", certbotBinary, strings.Join(args, " "))
	return errors.External(certbotBinary, c.exec.Run(certbotBinary, args...))
}
