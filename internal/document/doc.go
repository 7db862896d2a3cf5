// Package document implements a lossless, editable TOML document.
//
// A Document is parsed once from text into an arena of tables addressed by
// TableID handles. Every table keeps the exact text around its header and
// key/value lines (comments, blank lines, indentation, spacing around '=')
// separately from the semantic values, so serializing an unedited Document
// reproduces the input byte for byte. Edits go through the handles and only
// rewrite the values they touch; the decoration of a replaced value is kept
// when the caller passes it back through WithDecor.
//
// Well-formedness is delegated to go-toml: Parse rejects anything the TOML
// decoder rejects before the lossless scan runs, and scalar values and quoted
// keys are decoded through the same decoder.
package document
