// Package config holds the settings shared by cpfn and cpfp.
//
// Every directory the tools touch, the editor used by `cpfn edit` and the
// PHP fallback version live here, so commands take them as explicit input
// instead of reading globals. The file is optional; when it is missing the
// Debian/Ubuntu layout below is used as-is.
//
// Example /etc/cpf/config.yaml:
//
//	nginx:
//	  sites_available: /etc/nginx/sites-available
//	  sites_enabled: /etc/nginx/sites-enabled
//	  binary: nginx
//	  unit: nginx
//	php:
//	  base_dir: /etc/php
//	  socket_dir: /run/php
//	  log_dir: /var/log
//	  binary: php
//	  default_version: "7.4"
//	  listen_owner: www-data
//	  listen_group: www-data
//	users:
//	  shell: /bin/bash
//	editor: nano
//
// Keys left out of the file keep their defaults. $EDITOR, when set,
// overrides the editor key (see ApplyEnv).
package config
