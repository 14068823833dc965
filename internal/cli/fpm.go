package cli

import (
	"fmt"

	"github.com/ksyq12/cpf/internal/account"
	"github.com/ksyq12/cpf/internal/config"
	"github.com/ksyq12/cpf/internal/driver"
	"github.com/ksyq12/cpf/internal/errors"
	"github.com/ksyq12/cpf/internal/output"
	"github.com/ksyq12/cpf/internal/php"
	"github.com/ksyq12/cpf/internal/service"
	"github.com/ksyq12/cpf/internal/template"
	"github.com/spf13/cobra"
)

type fpmOptions struct {
	file       string
	domain     string
	user       string
	addUser    bool
	rootDir    string
	phpVersion string
}

var fpmOpts fpmOptions

// fpmSession is the prepared state every cpfp action starts from
type fpmSession struct {
	cfg     *config.Config
	version string
	created string // account created by --adduser, if any
}

// setupFPM runs the shared setup and resolves the PHP version. The
// interpreter is only asked when --php-version is not given.
func setupFPM() (*fpmSession, error) {
	cfg, created, err := prepare(fpmOpts.addUser)
	if err != nil {
		return nil, err
	}

	v := fpmOpts.phpVersion
	if v == "" {
		v = php.DetectVersion(deps.Executor, cfg.PHP.Binary, cfg.PHP.DefaultVersion)
	} else if !php.ValidVersion(v) {
		return nil, errors.Usage(fmt.Sprintf("invalid PHP version %q, expected a value like 8.1", v))
	}
	return &fpmSession{cfg: cfg, version: v, created: created}, nil
}

func (s *fpmSession) driver() driver.Driver {
	return deps.DriverFactory.Pools(php.PoolDir(s.cfg.PHP.BaseDir, s.version))
}

func fpmUnit() (service.Unit, error) {
	s, err := setupFPM()
	if err != nil {
		return service.Unit{}, err
	}
	return service.Unit{
		Name:       php.Unit(s.version),
		Label:      "PHP-FPM " + s.version,
		TestBinary: php.FPMBinary(s.version),
	}, nil
}

var fpmAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a pool",
	Long: `Add a PHP-FPM pool for a site.

With --file the given pool file is copied as-is. Otherwise a pool is rendered
from --domain, --root-dir and --user; its socket is
/run/php/php{version}-fpm-{domain}.sock.

Examples:
  cpfp add --domain example.com --root-dir /var/www/example --user example
  cpfp add --domain example.com --root-dir /var/www/example --adduser --php-version 8.1
  cpfp add --file example.com.conf`,
	Args: cobra.NoArgs,
	RunE: runFPMAdd,
}

var fpmDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a pool",
	Long: `Remove a pool file from the pool directory.

Example:
  cpfp delete --file example.com.conf`,
	Args: cobra.NoArgs,
	RunE: runFPMDelete,
}

var fpmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pools",
	Args:  cobra.NoArgs,
	RunE:  runFPMList,
}

func init() {
	f := fpmRootCmd.PersistentFlags()
	f.StringVar(&fpmOpts.file, "file", "", "Pool configuration file to add or delete")
	f.StringVar(&fpmOpts.domain, "domain", "", "Domain the pool serves")
	f.StringVar(&fpmOpts.user, "user", "", "User the pool runs as")
	f.BoolVar(&fpmOpts.addUser, "adduser", false, "Create a host user before running the action")
	f.StringVar(&fpmOpts.rootDir, "root-dir", "", "Working directory of the pool")
	f.StringVar(&fpmOpts.phpVersion, "php-version", "", "PHP version (default: detected from php -v)")

	fpmRootCmd.AddCommand(fpmAddCmd, fpmDeleteCmd, fpmListCmd)
}

func runFPMAdd(cmd *cobra.Command, args []string) error {
	s, err := setupFPM()
	if err != nil {
		return err
	}
	drv := s.driver()

	if fpmOpts.file != "" {
		name, ok, err := copyConfig(drv, fpmOpts.file)
		if err != nil || !ok {
			return err
		}
		reportPoolAdded(name, s.version)
		return nil
	}

	user := fpmOpts.user
	if user == "" {
		user = s.created
	}
	if fpmOpts.domain == "" || fpmOpts.rootDir == "" || user == "" {
		return errors.Usage("Please provide all required options: domain, root directory, and user.")
	}
	if err := validateRoot(fpmOpts.rootDir); err != nil {
		return err
	}
	if !account.ValidUsername(user) {
		return errors.Validation(fmt.Sprintf("invalid user name %q", user))
	}
	domain := stripScheme(fpmOpts.domain)
	if err := validateDomain(domain); err != nil {
		return err
	}

	pc := s.cfg.PHP
	content, err := template.RenderPool(template.PoolData{
		Name:        domain,
		User:        user,
		Socket:      php.SocketPath(pc.SocketDir, s.version, domain),
		ListenOwner: pc.ListenOwner,
		ListenGroup: pc.ListenGroup,
		Root:        fpmOpts.rootDir,
		ErrorLog:    php.ErrorLogPath(pc.LogDir, s.version, domain),
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeValidation, "failed to generate config", err)
	}

	name := domain + ".conf"
	created, err := createConfig(drv, name, content)
	if err != nil || !created {
		return err
	}
	reportPoolAdded(name, s.version)
	return nil
}

func reportPoolAdded(name, version string) {
	output.Success("Configuration for %s added.", name)
	output.Info("Run 'systemctl restart %s' to restart PHP-FPM service.", php.Unit(version))
}

func runFPMDelete(cmd *cobra.Command, args []string) error {
	s, err := setupFPM()
	if err != nil {
		return err
	}
	name, err := requireFile(fpmOpts.file, "name to delete")
	if err != nil {
		return err
	}

	err = s.driver().Remove(name)
	if errors.Is(err, errors.ErrNotFound) {
		output.Warn("Configuration file %s does not exist.", name)
		return nil
	}
	if err != nil {
		return err
	}
	output.Success("Configuration for %s deleted.", name)
	return nil
}

func runFPMList(cmd *cobra.Command, args []string) error {
	s, err := setupFPM()
	if err != nil {
		return err
	}
	drv := s.driver()

	pools, err := drv.List()
	if err != nil {
		return err
	}
	return outputList(map[string]interface{}{
		"version":  s.version,
		"pool_dir": drv.Paths().Available,
		"pools":    pools,
	}, "PHP-FPM pool configurations:", pools)
}
