// Package utils provides small type-coercion helpers used at the edges of
// the system, where values arrive as strings (configuration parameters,
// request payloads) or as loosely typed JSON numbers.
package utils
