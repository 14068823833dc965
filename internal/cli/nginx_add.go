package cli

import (
	"path/filepath"

	"github.com/ksyq12/cpf/internal/config"
	"github.com/ksyq12/cpf/internal/driver"
	"github.com/ksyq12/cpf/internal/errors"
	"github.com/ksyq12/cpf/internal/logger"
	"github.com/ksyq12/cpf/internal/output"
	"github.com/ksyq12/cpf/internal/ssl"
	"github.com/ksyq12/cpf/internal/template"
	"github.com/spf13/cobra"
)

var nginxAddCmd = &cobra.Command{
	Use:   "add [domain...]",
	Short: "Add and enable a site",
	Long: `Add a site to sites-available and enable it.

With --file the given configuration file is copied as-is. Otherwise a PHP
site is rendered from --domain, --root-dir and --php-sock; words after the
flags are taken as further domains.

Examples:
  cpfn add --domain example.com www.example.com --root-dir /var/www/example --php-sock php8.1-fpm.sock
  cpfn add --domain example.com --root-dir /var/www/example --php-sock php8.1-fpm.sock --routing index.php --ssl
  cpfn add --file example.com.conf`,
	RunE: runNginxAdd,
}

var errSiteUsage = &errors.Error{
	Code:    errors.ErrCodeValidation,
	Message: "Please provide all required options: domains, root directory, and PHP socket",
	Hint:    "Or use --file option to add a configuration file.\nUse -h for help.",
}

func init() {
	nginxRootCmd.AddCommand(nginxAddCmd)
}

func runNginxAdd(cmd *cobra.Command, args []string) error {
	cfg, ok, err := setupNginx(false)
	if err != nil || !ok {
		return err
	}
	drv := newSiteDriver(cfg)

	if nginxOpts.file != "" {
		return addSiteFile(drv, nginxOpts.file)
	}

	domains := splitDomains(nginxOpts.domains, args)
	if len(domains) == 0 || nginxOpts.rootDir == "" || nginxOpts.phpSock == "" {
		return errSiteUsage
	}
	if err := validateRoot(nginxOpts.rootDir); err != nil {
		return err
	}
	if err := validateValue("PHP socket", nginxOpts.phpSock); err != nil {
		return err
	}
	if err := validateValue("routing", nginxOpts.routing); err != nil {
		return err
	}

	names := make([]string, 0, len(domains))
	for _, d := range domains {
		name := stripScheme(d)
		if err := validateDomain(name); err != nil {
			return err
		}
		names = append(names, name)
	}

	content, err := template.RenderSite(template.SiteData{
		Port:        nginxOpts.port,
		Root:        nginxOpts.rootDir,
		ServerNames: names,
		Routing:     nginxOpts.routing,
		PHPSocket:   siteSocket(cfg, nginxOpts.phpSock),
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeValidation, "failed to generate config", err)
	}

	name := names[0] + ".conf"
	created, err := createConfig(drv, name, content)
	if err != nil || !created {
		return err
	}
	logger.DebugFields("site created", map[string]interface{}{
		"name":    name,
		"port":    nginxOpts.port,
		"routing": nginxOpts.routing,
	})

	if err := enableSite(drv, name); err != nil {
		return err
	}
	output.Success("Configuration for %s added and enabled.", name)
	output.Info("Run `cpfn restart` to restart nginx service.")

	if nginxOpts.ssl {
		return ssl.NewCertbot(deps.Executor).IssueNginx(names)
	}
	return nil
}

func addSiteFile(drv SiteDriver, file string) error {
	name, ok, err := copyConfig(drv, file)
	if err != nil || !ok {
		return err
	}
	if err := enableSite(drv, name); err != nil {
		return err
	}
	output.Success("Configuration for %s added and enabled.", name)
	output.Info("Run `cpfn restart` to restart nginx service.")
	return nil
}

// enableSite links a freshly added site; an existing link is fine.
func enableSite(l driver.Linker, name string) error {
	if err := l.Enable(name); err != nil && !errors.Is(err, errors.ErrExists) {
		return err
	}
	return nil
}

// siteSocket places a bare socket name in the PHP socket directory
func siteSocket(cfg *config.Config, sock string) string {
	if filepath.IsAbs(sock) {
		return sock
	}
	return filepath.Join(cfg.PHP.SocketDir, sock)
}
