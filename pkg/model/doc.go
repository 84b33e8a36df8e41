// Package model defines the database models for SiteVault.
//
// This package contains GORM models that map to the SiteVault database
// schema. Every table's primary key is a random UUID in its first column.
//
// # Core Models
//
//   - User: registered principals with an access level tier
//   - Site: organizational units ("hotels") that scope credentials
//   - Group: coarse organizational units granting inherited site visibility
//   - Permission: direct (user, site) visibility grants
//   - Credential: stored login secrets, one current row per id
//   - CredentialHistory: immutable snapshots of prior credential states
//
// # Database Schema
//
// The database uses PostgreSQL with the following tables:
//
//   - users: registered principals, looked up by lowercase email
//   - sites: credential scopes, optionally attached to a group
//   - groups: organizational units
//   - permissions: direct user-to-site grants
//   - credentials: current credential rows, secrets stored encoded
//   - credential_history: append-only prior states of credentials
package model
