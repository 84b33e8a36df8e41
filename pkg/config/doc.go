// Package config manages SiteVault configuration.
//
// Configuration is layered: built-in defaults, then the sitevault.yml file,
// then SITEVAULT_* environment variables, with later layers winning. The
// source of each attribute is tracked so operators can see where a value
// came from.
package config
