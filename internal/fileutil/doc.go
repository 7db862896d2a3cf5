// Package fileutil contains small filesystem helpers shared by the store and
// the CLI.
package fileutil
