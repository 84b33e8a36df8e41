// Package sitevaultctl is the CLI for the SiteVault credential server.
//
// SiteVault stores per-site login secrets for a multi-property operation
// and exposes them over a REST API, scoped by group membership and direct
// site grants.
//
// # Quick Start
//
// The server is run via the sitevaultctl CLI:
//
//	# Generate a data key for secret encoding
//	sitevaultctl data-key generate > data_key
//	export SITEVAULT_DATA_KEY=$(cat data_key)
//
//	# Run database migrations
//	sitevaultctl db migrate
//
//	# Register the first administrator
//	sitevaultctl user create --email admin@example.com --name Admin --access-level admin
//
//	# Start the server
//	sitevaultctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - SITEVAULT_DATA_KEY: Base64-encoded 256-bit key for secret encoding
//   - SITEVAULT_SESSION_KEY: Base64-encoded key verifying session tokens
//   - SITEVAULT_CONFIG_PATH: Config directory (default /etc/sitevault/config)
//   - AUDIT_DATABASE_URL: Optional separate DSN for the audit message store
//   - SITEVAULT_LOG_LEVEL: Log level (debug enables SQL logging)
//   - PORT: Server port (default: 8000)
package main
