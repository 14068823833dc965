package template

import "embed"

//go:embed nginx/*.tmpl phpfpm/*.tmpl
var templates embed.FS

const (
	siteTemplate = "nginx/site.conf.tmpl"
	poolTemplate = "phpfpm/pool.conf.tmpl"
)
