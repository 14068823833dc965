// Package driver manages the configuration files of nginx sites and
// PHP-FPM pools on disk.
//
// Both services keep one file per site in a directory; nginx additionally
// activates a site through a symlink in sites-enabled pointing back at the
// file in sites-available. The link is the only enabled/disabled state, so
// enabling and disabling never touch file content.
//
//	sites := driver.NewNginxWithPaths("/etc/nginx/sites-available", "/etc/nginx/sites-enabled")
//	if err := sites.Create("example.com.conf", content); errors.Is(err, errors.ErrExists) {
//	    // left untouched
//	}
//	_ = sites.Enable("example.com.conf")
//
//	pools := driver.NewPool("/etc/php/8.1/fpm/pool.d")
//
// Existing files are never overwritten: Create and Copy open their target
// with O_EXCL and report errors.ErrExists instead.
//
// Reported conditions come back as *errors.Error values with NOT_FOUND or
// ALREADY_EXISTS codes so the command layer can print them without failing.
package driver
