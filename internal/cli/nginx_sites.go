package cli

import (
	"fmt"
	"os"

	"github.com/ksyq12/cpf/internal/driver"
	"github.com/ksyq12/cpf/internal/errors"
	"github.com/ksyq12/cpf/internal/logger"
	"github.com/ksyq12/cpf/internal/output"
	"github.com/spf13/cobra"
)

var nginxEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable a site",
	Long: `Link a site from sites-available into sites-enabled.

Example:
  cpfn enable --file example.com.conf`,
	Args: cobra.NoArgs,
	RunE: runNginxEnable,
}

var nginxDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable a site",
	Long: `Remove a site's link from sites-enabled. The configuration in
sites-available is kept.

Example:
  cpfn disable --file example.com.conf`,
	Args: cobra.NoArgs,
	RunE: runNginxDisable,
}

var nginxDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a site",
	Long: `Remove a site's link and its configuration file.

Example:
  cpfn delete --file example.com.conf`,
	Args: cobra.NoArgs,
	RunE: runNginxDelete,
}

var nginxListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available and enabled sites",
	Args:  cobra.NoArgs,
	RunE:  runNginxList,
}

var nginxEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a site configuration",
	Long: `Open a site configuration from sites-available in an editor.

The editor is $EDITOR when set, otherwise the "editor" setting of the
configuration file (nano by default).

Example:
  cpfn edit --file example.com.conf`,
	Args: cobra.NoArgs,
	RunE: runNginxEdit,
}

func init() {
	nginxRootCmd.AddCommand(nginxEnableCmd, nginxDisableCmd, nginxDeleteCmd, nginxListCmd, nginxEditCmd)
}

func runNginxEnable(cmd *cobra.Command, args []string) error {
	cfg, ok, err := setupNginx(false)
	if err != nil || !ok {
		return err
	}
	name, err := requireFile(nginxOpts.file, "name to enable")
	if err != nil {
		return err
	}

	return switchOn(newSiteDriver(cfg), name)
}

// switchOn enables name, treating an existing link or a missing site as
// a warning
func switchOn(l driver.Linker, name string) error {
	err := l.Enable(name)
	switch {
	case errors.Is(err, errors.ErrExists), errors.Is(err, errors.ErrNotFound):
		logger.Debug("enable %s: %v", name, err)
		output.Warn("Site %s is already enabled or does not exist.", name)
		return nil
	case err != nil:
		return err
	}
	output.Success("Site %s enabled.", name)
	return nil
}

func runNginxDisable(cmd *cobra.Command, args []string) error {
	cfg, ok, err := setupNginx(false)
	if err != nil || !ok {
		return err
	}
	name, err := requireFile(nginxOpts.file, "name to disable")
	if err != nil {
		return err
	}

	return switchOff(newSiteDriver(cfg), name)
}

// switchOff removes the link for name. Anything that is not a link into
// sites-available only gets a warning.
func switchOff(l driver.Linker, name string) error {
	err := l.Disable(name)
	switch {
	case errors.Is(err, errors.ErrNotFound), errors.Is(err, errors.ErrValidation):
		logger.Debug("disable %s: %v", name, err)
		output.Warn("Site %s is not enabled or does not exist.", name)
		return nil
	case err != nil:
		return err
	}
	output.Success("Site %s disabled.", name)
	return nil
}

func runNginxDelete(cmd *cobra.Command, args []string) error {
	cfg, ok, err := setupNginx(false)
	if err != nil || !ok {
		return err
	}
	name, err := requireFile(nginxOpts.file, "name to delete")
	if err != nil {
		return err
	}

	if err := newSiteDriver(cfg).Remove(name); err != nil && !errors.Is(err, errors.ErrNotFound) {
		return err
	}
	output.Success("Configuration for %s deleted.", name)
	return nil
}

func runNginxList(cmd *cobra.Command, args []string) error {
	cfg, ok, err := setupNginx(false)
	if err != nil || !ok {
		return err
	}
	drv := newSiteDriver(cfg)

	available, err := drv.List()
	if err != nil {
		return err
	}
	enabled, err := drv.ListEnabled()
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(map[string][]string{
			"available": available,
			"enabled":   enabled,
		})
	}
	output.List("Available sites:", available)
	output.Blank()
	output.List("Enabled sites:", enabled)
	return nil
}

func runNginxEdit(cmd *cobra.Command, args []string) error {
	cfg, ok, err := setupNginx(false)
	if err != nil || !ok {
		return err
	}
	name, err := requireFile(nginxOpts.file, "to edit")
	if err != nil {
		return err
	}

	path := newSiteDriver(cfg).ConfigPath(name)
	if _, err := os.Stat(path); err != nil {
		return errors.New(errors.ErrCodeNotFound, fmt.Sprintf("File %s does not exist.", path))
	}

	if _, err := deps.Executor.LookPath(cfg.Editor); err != nil {
		return errors.Wrap(errors.ErrCodeExternal, fmt.Sprintf("editor not found: %s", cfg.Editor), err)
	}
	logger.Debug("editing %s with %s", path, cfg.Editor)
	return errors.External(cfg.Editor, deps.Executor.Run(cfg.Editor, path))
}
