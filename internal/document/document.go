package document

import (
	"errors"
	"strings"
)

// TableID is a stable handle to a table in a Document. Handles stay valid
// for the lifetime of the Document, including after the table is removed
// from the serialized output.
type TableID int

// RootTable is the implicit table holding the key/value lines that precede
// the first header.
const RootTable TableID = 0

var (
	// ErrMalformed reports text that is not well-formed TOML.
	ErrMalformed = errors.New("malformed document")
	// ErrNotArrayOfTables reports a key that exists but is not an array of tables.
	ErrNotArrayOfTables = errors.New("not an array of tables")
	// ErrNotValue reports a key that exists but holds a table.
	ErrNotValue = errors.New("not a value")
)

type entry struct {
	// leading holds the blank and comment lines above the key plus its indentation.
	leading   string
	rawKey    string
	keys      []string
	keySuffix string
	value     Value
	newline   string
}

func (e *entry) write(b *strings.Builder) {
	b.WriteString(e.leading)
	b.WriteString(e.rawKey)
	b.WriteString(e.keySuffix)
	b.WriteByte('=')
	b.WriteString(e.value.decor.Prefix)
	b.WriteString(e.value.raw)
	b.WriteString(e.value.decor.Suffix)
	b.WriteString(e.newline)
}

type table struct {
	leading string
	header  string
	keys    []string
	array   bool
	trailer string
	newline string
	entries []entry
}

// Document is an editable TOML document that remembers its formatting.
type Document struct {
	tables   []table
	order    []TableID
	trailing string
	eol      string
}

// New returns an empty document.
func New() *Document {
	return &Document{tables: []table{{}}, eol: "\n"}
}

// String serializes the document. An unedited parsed document serializes to
// its source text.
func (d *Document) String() string {
	var b strings.Builder
	d.writeEntries(&b, RootTable)
	for _, id := range d.order {
		t := &d.tables[id]
		b.WriteString(t.leading)
		b.WriteString(t.header)
		b.WriteString(t.trailer)
		b.WriteString(t.newline)
		d.writeEntries(&b, id)
	}
	b.WriteString(d.trailing)
	return b.String()
}

func (d *Document) writeEntries(b *strings.Builder, id TableID) {
	for i := range d.tables[id].entries {
		d.tables[id].entries[i].write(b)
	}
}

// RenderTable renders a single table: its header line followed by its own
// key/value lines, comments included. The root table renders without a header.
func (d *Document) RenderTable(id TableID) string {
	t := &d.tables[id]
	var b strings.Builder
	if id != RootTable {
		b.WriteString(t.header)
		b.WriteString(t.trailer)
		b.WriteString("\n")
	}
	for i := range t.entries {
		e := &t.entries[i]
		e.write(&b)
		if e.newline == "" {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (d *Document) indexOf(id TableID) int {
	for i, candidate := range d.order {
		if candidate == id {
			return i
		}
	}
	return -1
}

// descendants returns the order indices of the tables nested under the
// table at order index i. A sub-table belongs to the nearest preceding
// element of its array, however many unrelated tables sit in between.
func (d *Document) descendants(i int) []int {
	base := d.tables[d.order[i]]
	var out []int
	for j := i + 1; j < len(d.order); j++ {
		t := &d.tables[d.order[j]]
		if t.array && len(t.keys) <= len(base.keys) && hasPrefix(base.keys, t.keys) {
			break
		}
		if len(t.keys) > len(base.keys) && hasPrefix(t.keys, base.keys) {
			out = append(out, j)
		}
	}
	return out
}

// blockEnd returns the order index just past the last table nested under
// the table at i.
func (d *Document) blockEnd(i int) int {
	nested := d.descendants(i)
	if len(nested) == 0 {
		return i + 1
	}
	return nested[len(nested)-1] + 1
}

func hasPrefix(keys, prefix []string) bool {
	if len(keys) < len(prefix) {
		return false
	}
	for i := range prefix {
		if keys[i] != prefix[i] {
			return false
		}
	}
	return true
}
