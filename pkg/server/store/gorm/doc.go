// Package gorm implements the store contracts using GORM over PostgreSQL.
package gorm
