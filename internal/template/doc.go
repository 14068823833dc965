// Package template renders the nginx server block and the PHP-FPM pool file
// from templates embedded in the binary.
//
//	nginx/site.conf.tmpl   one server block per site
//	phpfpm/pool.conf.tmpl  one pool per domain
//
// Both shapes are fixed: the caller supplies values, never directives.
//
//	content, err := template.RenderSite(template.SiteData{
//	    Port:        80,
//	    Root:        "/var/www/example",
//	    ServerNames: []string{"example.com", "www.example.com"},
//	    PHPSocket:   "/run/php/php8.1-fpm.sock",
//	})
package template
