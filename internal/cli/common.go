package cli

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/ksyq12/cpf/internal/account"
	"github.com/ksyq12/cpf/internal/config"
	"github.com/ksyq12/cpf/internal/driver"
	"github.com/ksyq12/cpf/internal/errors"
	"github.com/ksyq12/cpf/internal/logger"
	"github.com/ksyq12/cpf/internal/output"
)

var schemePattern = regexp.MustCompile(`^(?:https?://)?([^/]+)`)

// stripScheme reduces a URL-ish domain argument to its host part:
// https://example.com/path becomes example.com.
func stripScheme(domain string) string {
	m := schemePattern.FindStringSubmatch(domain)
	if m == nil {
		return domain
	}
	return m[1]
}

// configUnsafe are characters that would end or open a directive in the
// rendered nginx or pool file
const configUnsafe = ";{}#$\"'\\"

// validateValue rejects a flag value that cannot be written into a config
// file verbatim
func validateValue(flag, value string) error {
	for _, r := range value {
		if unicode.IsSpace(r) || unicode.IsControl(r) || strings.ContainsRune(configUnsafe, r) {
			return errors.Validation(fmt.Sprintf("%s %q contains invalid character %q", flag, value, r))
		}
	}
	return nil
}

// validateDomain checks if domain is valid
func validateDomain(domain string) error {
	if domain == "" {
		return errors.Validation("domain cannot be empty")
	}
	if err := validateValue("domain", domain); err != nil {
		return err
	}
	if strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") {
		return errors.Validation(fmt.Sprintf("domain %q cannot start or end with hyphen", domain))
	}
	return nil
}

// validateRoot checks if root path is valid
func validateRoot(root string) error {
	if !filepath.IsAbs(root) {
		return errors.Validation(fmt.Sprintf("root directory must be an absolute path: %s", root))
	}
	return validateValue("root directory", root)
}

// splitDomains flattens --domain values and positional words, allowing
// comma separated lists in either
func splitDomains(values ...[]string) []string {
	var domains []string
	for _, vs := range values {
		for _, v := range vs {
			for _, d := range strings.Split(v, ",") {
				if d = strings.TrimSpace(d); d != "" {
					domains = append(domains, d)
				}
			}
		}
	}
	return domains
}

// prepare runs the steps every action shares: the privilege check, loading
// the configuration and, when asked for, creating a host account. It
// returns the name of the account created, if any.
func prepare(provision bool) (*config.Config, string, error) {
	if err := deps.RootChecker.RequireRoot(); err != nil {
		return nil, "", err
	}

	cfg, err := deps.ConfigLoader.Load(configPath)
	if errors.Is(err, errors.ErrConfigInvalid) {
		return nil, "", err
	}
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeConfig, "failed to load config", err)
	}
	logger.Debug("loaded config from %s", configPath)

	if !provision {
		return cfg, "", nil
	}

	prov := account.NewProvisioner(deps.Executor, deps.Prompter, cfg.Users.Shell)
	username, err := prov.Provision()
	if err != nil {
		if !errors.Is(err, errors.ErrExternal) {
			return nil, "", err
		}
		// Account tools failing does not stop the main action
		logger.WarnFields("account provisioning incomplete", map[string]interface{}{
			"user":   username,
			"status": errors.ExitStatus(err),
		})
		output.Warn("User %s was not fully created: %v", username, err)
	}
	return cfg, username, nil
}

// resolveSource returns the path a --file argument refers to
func resolveSource(file string) (string, error) {
	if filepath.IsAbs(file) {
		return file, nil
	}
	wd, err := deps.WorkDir.Getwd()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to resolve working directory", err)
	}
	return filepath.Join(wd, file), nil
}

// requireFile returns the --file value for actions that cannot run
// without it.
func requireFile(file, verb string) (string, error) {
	if file == "" {
		return "", errors.Usage(fmt.Sprintf("Please provide the file %s using --file", verb))
	}
	if err := driver.ValidateName(file); err != nil {
		return "", err
	}
	return file, nil
}

// copyConfig copies a --file source into drv. It reports the two
// non-fatal outcomes itself and returns ok=false for them.
func copyConfig(drv driver.Driver, file string) (string, bool, error) {
	src, err := resolveSource(file)
	if err != nil {
		return "", false, err
	}

	name, err := drv.Copy(src)
	switch {
	case errors.Is(err, errors.ErrNotFound):
		output.Warn("File %s not found.", src)
		return "", false, nil
	case errors.Is(err, errors.ErrExists):
		output.Warn("File %s already exists.", drv.ConfigPath(filepath.Base(src)))
		return "", false, nil
	case err != nil:
		return "", false, err
	}

	logger.Debug("copied %s to %s", src, drv.ConfigPath(name))
	return name, true, nil
}

// createConfig writes rendered content into drv under name. An existing
// file is reported and left untouched.
func createConfig(drv driver.Driver, name, content string) (bool, error) {
	err := drv.Create(name, content)
	if errors.Is(err, errors.ErrExists) {
		output.Warn("Cannot create config file.")
		output.Warn("Config file '%s' already exists.", drv.ConfigPath(name))
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// outputList prints a titled list, or data as JSON with --json
func outputList(data interface{}, title string, items []string) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.List(title, items)
	return nil
}
