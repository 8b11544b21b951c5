// Package archive stores JSON reports of batch runs (composite
// recalculation, price push, stock sync) in S3-compatible object storage.
//
// Archiving is optional; when disabled New returns a nil Archiver, and a nil
// Archiver's Put is a no-op. A failed upload never fails the run it
// describes — callers log the error and move on.
package archive
