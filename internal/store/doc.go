// Package store persists the series list inside the user's TOML document.
//
// Updates go through the document package so that everything the program
// does not own (comments, spacing, unknown keys, other tables) survives a
// save byte for byte. The same record-application step backs both Save and
// Render, so a rendered record always matches what the next save writes.
package store
