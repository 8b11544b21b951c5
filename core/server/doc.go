// Package server holds configuration for the HTTP server surface.
package server
