// Package main hosts the upnext CLI entrypoint and command graph.
//
// The Cobra command tree resolves the series document, the series directory
// (the working directory unless --dir is given) and the tool settings once
// per invocation, then hands the work to internal/tracker. Commands print
// the resulting record state to stdout; errors are reported by main as a
// single line on stderr.
//
// Keep this package thin: behaviour belongs in the internal packages, and
// commands here only translate flags and format output.
package main
