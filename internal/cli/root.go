package cli

import (
	"os"

	"github.com/ksyq12/cpf/internal/config"
	"github.com/ksyq12/cpf/internal/errors"
	"github.com/ksyq12/cpf/internal/logger"
	"github.com/ksyq12/cpf/internal/output"
	"github.com/spf13/cobra"
)

var (
	configPath = config.DefaultPath
	jsonOutput bool
	verbose    bool
	version    = "dev"
)

// nginxRootCmd is the base command of the nginx control panel
var nginxRootCmd = &cobra.Command{
	Use:   "cpfn",
	Short: "Control Panel For Nginx Server",
	Long: `cpfn manages the nginx service and its sites.

It controls the service through systemctl, creates site configurations from a
PHP-ready template or an existing file, and enables, disables, lists, edits
and deletes sites in sites-available / sites-enabled.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// fpmRootCmd is the base command of the PHP-FPM control panel
var fpmRootCmd = &cobra.Command{
	Use:   "cpfp",
	Short: "Control Panel For PHP-FPM Server",
	Long: `cpfp manages the PHP-FPM service and its pools.

The PHP version is detected from "php -v" unless --php-version is given, and
selects the pool directory, the systemd unit and the socket path.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExecuteNginx runs the cpfn command tree
func ExecuteNginx() {
	execute(nginxRootCmd)
}

// ExecuteFPM runs the cpfp command tree
func ExecuteFPM() {
	execute(fpmRootCmd)
}

func execute(root *cobra.Command) {
	logger.SetPrefix(root.Name())
	// Initialize logger based on verbose flag (parsed by cobra)
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	if err := root.Execute(); err != nil {
		os.Exit(report(err))
	}
}

// report prints err unless the failing helper already spoke for itself,
// and returns the exit status for it.
func report(err error) int {
	if !errors.Silent(err) {
		output.Error("%s", err)
		if hint := errors.HintOf(err); hint != "" {
			output.Print("%s", hint)
		}
	}
	logger.LogError(err, "command failed")
	return errors.ExitStatus(err)
}

// SetVersion sets the version string for both CLIs
func SetVersion(v string) {
	version = v
	nginxRootCmd.Version = v
	fpmRootCmd.Version = v
}

func init() {
	for _, root := range []*cobra.Command{nginxRootCmd, fpmRootCmd} {
		root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the configuration file")
		root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
		root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
		root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
			return errors.Usage(err.Error())
		})
	}
}
