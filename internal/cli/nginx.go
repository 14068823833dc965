package cli

import (
	"github.com/ksyq12/cpf/internal/config"
	"github.com/ksyq12/cpf/internal/driver"
	"github.com/ksyq12/cpf/internal/output"
	"github.com/ksyq12/cpf/internal/service"
)

// nginxOptions holds the cpfn flags. Like the service itself they are
// accepted by every action and read by the ones that need them.
type nginxOptions struct {
	file       string
	ssl        bool
	port       int
	domains    []string
	rootDir    string
	createUser bool
	phpSock    string
	routing    string
}

const defaultPort = 80

var nginxOpts = nginxOptions{port: defaultPort}

// setupNginx prepares an nginx action. When the nginx binary is missing
// only service actions, which go through systemctl, still run; file
// actions get ok=false.
func setupNginx(serviceAction bool) (cfg *config.Config, ok bool, err error) {
	cfg, _, err = prepare(nginxOpts.createUser)
	if err != nil {
		return nil, false, err
	}

	if _, err := deps.Executor.LookPath(cfg.Nginx.Binary); err != nil {
		output.Warn("Nginx service does not exist. Using systemctl.")
		return cfg, serviceAction, nil
	}
	return cfg, true, nil
}

func nginxUnit() (service.Unit, error) {
	cfg, _, err := setupNginx(true)
	if err != nil {
		return service.Unit{}, err
	}
	return service.Unit{
		Name:       cfg.Nginx.Unit,
		Label:      "Nginx",
		TestBinary: cfg.Nginx.Binary,
	}, nil
}

func newSiteDriver(cfg *config.Config) SiteDriver {
	return deps.DriverFactory.Sites(driver.Paths{
		Available: cfg.Nginx.SitesAvailable,
		Enabled:   cfg.Nginx.SitesEnabled,
	})
}

func init() {
	f := nginxRootCmd.PersistentFlags()
	f.StringVar(&nginxOpts.file, "file", "", "Site configuration file to add, edit, enable, disable or delete")
	f.BoolVar(&nginxOpts.ssl, "ssl", false, "Obtain a Let's Encrypt certificate with certbot after adding")
	f.IntVar(&nginxOpts.port, "port", defaultPort, "Port the site listens on")
	f.StringArrayVar(&nginxOpts.domains, "domain", nil, "Domain names of the site, comma separated or repeated (first one names the file)")
	f.StringVar(&nginxOpts.rootDir, "root-dir", "", "Document root of the site")
	f.BoolVar(&nginxOpts.createUser, "create-user", false, "Create a host user before running the action")
	f.StringVar(&nginxOpts.phpSock, "php-sock", "", "PHP-FPM socket file name in the socket directory, or an absolute path")
	f.StringVar(&nginxOpts.routing, "routing", "", "Front controller that unmatched requests are routed to, e.g. index.php")
}
