// Package errs defines the error kinds upnext surfaces to its callers.
//
// Every failure that leaves a core operation is tagged with one of the
// sentinel markers below so the CLI and the logs can classify it with
// errors.Is without string matching. Wrap keeps the operation context in the
// message while preserving both the marker and the underlying cause.
package errs
