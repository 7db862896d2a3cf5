// Package preflight provides the readiness checks behind `upnext check`:
// the document can be read and rewritten, the configured player is on PATH,
// and the series directory can be listed.
//
// Checks never fail the command themselves; each returns a Result that the
// CLI renders as an OK or ERROR line.
package preflight
