package template

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"text/template"
)

// SiteData contains the values of an nginx server block
type SiteData struct {
	Port        int
	Root        string
	ServerNames []string
	Routing     string // front controller for try_files; empty means =404
	PHPSocket   string // absolute UNIX socket path
}

// PoolData contains the values of a PHP-FPM pool
type PoolData struct {
	Name        string
	User        string
	Group       string
	Socket      string
	ListenOwner string
	ListenGroup string
	Root        string
	ErrorLog    string
}

// RenderSite renders the nginx server block
func RenderSite(data SiteData) (string, error) {
	if data.Port < 1 || data.Port > 65535 {
		return "", fmt.Errorf("invalid port: %d", data.Port)
	}
	if len(data.ServerNames) == 0 {
		return "", fmt.Errorf("at least one server name is required")
	}
	if data.Root == "" || data.PHPSocket == "" {
		return "", fmt.Errorf("root and PHP socket are required")
	}
	return render(siteTemplate, data)
}

// RenderPool renders the PHP-FPM pool configuration
func RenderPool(data PoolData) (string, error) {
	if data.Name == "" || data.User == "" || data.Root == "" {
		return "", fmt.Errorf("pool name, user and root are required")
	}
	if data.Group == "" {
		data.Group = data.User
	}
	return render(poolTemplate, data)
}

func render(name string, data interface{}) (string, error) {
	content, err := templates.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("template not found: %s", name)
	}

	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	tmpl, err := template.New(path.Base(name)).Funcs(funcMap).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}

	return buf.String(), nil
}
