// Package persistence provides the GORM-backed key catalog.
// It stores metadata of generated key files in SQLite or PostgreSQL and
// validates entries before they are written.
package persistence
