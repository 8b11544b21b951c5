// Package database provides the GORM database connector.
//
// It supports MySQL for deployments and sqlite for tests and local
// development (Driver: "sqlite", Name: ":memory:"). Connection pooling and
// DSN-level timeouts are applied for MySQL; the initial connection is
// verified with a ping before the handle is returned.
package database
