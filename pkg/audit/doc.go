// Package audit emits security audit events for SiteVault operations.
//
// Events are written to stdout in RFC5424 syslog format and, when
// AUDIT_DATABASE_URL is set, persisted to a messages table. Every login
// attempt, credential access or mutation, and access-level change produces
// one event.
package audit
