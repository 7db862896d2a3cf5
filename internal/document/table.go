package document

import "fmt"

// ItemKind describes what a key resolves to inside a table.
type ItemKind int

const (
	ItemNone ItemKind = iota
	ItemValue
	ItemTable
	ItemArrayOfTables
)

func (k ItemKind) String() string {
	switch k {
	case ItemValue:
		return "value"
	case ItemTable:
		return "table"
	case ItemArrayOfTables:
		return "array of tables"
	default:
		return "none"
	}
}

// Get looks up key in table id. The Value is only meaningful when the
// returned kind is ItemValue.
func (d *Document) Get(id TableID, key string) (Value, ItemKind) {
	for _, e := range d.tables[id].entries {
		if e.keys[0] != key {
			continue
		}
		if len(e.keys) == 1 {
			return e.value, ItemValue
		}
		return Value{}, ItemTable
	}
	return Value{}, d.childKind(id, key)
}

// childKind reports whether key names a header table nested under id.
func (d *Document) childKind(id TableID, key string) ItemKind {
	var base []string
	var children []int
	if id == RootTable {
		for i := range d.order {
			children = append(children, i)
		}
	} else {
		i := d.indexOf(id)
		if i < 0 {
			return ItemNone
		}
		base = d.tables[id].keys
		children = d.descendants(i)
	}
	for _, j := range children {
		t := &d.tables[d.order[j]]
		if len(t.keys) <= len(base) || !hasPrefix(t.keys, base) || t.keys[len(base)] != key {
			continue
		}
		if len(t.keys) == len(base)+1 && t.array {
			return ItemArrayOfTables
		}
		return ItemTable
	}
	return ItemNone
}

// Set replaces the value stored under key in table id, decoration included,
// or appends a new key/value line at the end of the table. It fails with
// ErrNotValue when key already names a table.
func (d *Document) Set(id TableID, key string, v Value) error {
	if _, kind := d.Get(id, key); kind == ItemTable || kind == ItemArrayOfTables {
		return fmt.Errorf("%w: %q is a %s", ErrNotValue, key, kind)
	}
	t := &d.tables[id]
	for i := range t.entries {
		e := &t.entries[i]
		if len(e.keys) == 1 && e.keys[0] == key {
			e.value = v
			return nil
		}
	}

	if n := len(t.entries); n > 0 {
		if t.entries[n-1].newline == "" {
			t.entries[n-1].newline = d.eol
		}
	} else if id != RootTable && t.newline == "" {
		t.newline = d.eol
	}
	t.entries = append(t.entries, entry{
		rawKey:    encodeKey(key),
		keys:      []string{key},
		keySuffix: " ",
		value:     v,
		newline:   d.eol,
	})
	return nil
}

// ArrayOfTables returns the elements of the top-level array of tables named
// key, in document order. A missing key or an empty inline array such as
// "key = []" yields no elements.
func (d *Document) ArrayOfTables(key string) ([]TableID, error) {
	for i, e := range d.tables[RootTable].entries {
		if e.keys[0] == key && i != d.emptyArrayEntry(key) {
			return nil, fmt.Errorf("%w: %q is defined as a value", ErrNotArrayOfTables, key)
		}
	}
	var ids []TableID
	for _, id := range d.order {
		t := &d.tables[id]
		if t.keys[0] != key {
			continue
		}
		if len(t.keys) == 1 && t.array {
			ids = append(ids, id)
			continue
		}
		if len(t.keys) == 1 || len(ids) == 0 {
			return nil, fmt.Errorf("%w: %q is defined by %s", ErrNotArrayOfTables, key, t.header)
		}
	}
	return ids, nil
}

// NewArrayTable creates an empty, detached element for the top-level array
// of tables named key. It is not serialized until AppendArrayTable attaches it.
func (d *Document) NewArrayTable(key string) TableID {
	d.tables = append(d.tables, table{
		header:  "[[" + encodeKey(key) + "]]",
		keys:    []string{key},
		array:   true,
		newline: d.eol,
	})
	return TableID(len(d.tables) - 1)
}

// AppendArrayTable attaches a table created by NewArrayTable after the last
// existing element of its array and every sub-table that element owns, or at
// the end of the document when the array has no elements yet.
func (d *Document) AppendArrayTable(id TableID) {
	if id == RootTable || d.indexOf(id) >= 0 {
		return
	}
	keys := d.tables[id].keys
	pos := len(d.order)
	for i := 0; i < len(d.order); i++ {
		t := &d.tables[d.order[i]]
		if t.array && len(t.keys) == len(keys) && hasPrefix(t.keys, keys) {
			pos = d.blockEnd(i)
		}
	}
	d.terminateBefore(pos)
	d.order = append(d.order, 0)
	copy(d.order[pos+1:], d.order[pos:])
	d.order[pos] = id
	if i := d.emptyArrayEntry(keys[0]); i >= 0 {
		d.dropRootEntry(i)
	}
}

// emptyArrayEntry returns the index of the root entry "key = []", or -1.
func (d *Document) emptyArrayEntry(key string) int {
	for i, e := range d.tables[RootTable].entries {
		if len(e.keys) != 1 || e.keys[0] != key || e.value.kind != KindArray {
			continue
		}
		inner := e.value.raw[1 : len(e.value.raw)-1]
		if skipGap(inner, 0) == len(inner) {
			return i
		}
	}
	return -1
}

// dropRootEntry removes a root entry. The comments above it move to
// whatever is serialized next.
func (d *Document) dropRootEntry(i int) {
	root := &d.tables[RootTable]
	leading := root.entries[i].leading
	root.entries = append(root.entries[:i], root.entries[i+1:]...)
	switch {
	case i < len(root.entries):
		root.entries[i].leading = leading + root.entries[i].leading
	case len(d.order) > 0:
		first := &d.tables[d.order[0]]
		first.leading = leading + first.leading
	default:
		d.trailing = leading + d.trailing
	}
}

// RemoveArrayTable drops an array element and the sub-tables it owns from
// the serialized document, including sub-tables written after unrelated
// tables.
func (d *Document) RemoveArrayTable(id TableID) {
	i := d.indexOf(id)
	if i < 0 {
		return
	}
	drop := map[int]bool{i: true}
	for _, j := range d.descendants(i) {
		drop[j] = true
	}
	kept := d.order[:0]
	for j, other := range d.order {
		if !drop[j] {
			kept = append(kept, other)
		}
	}
	d.order = kept
}

// terminateBefore makes sure the line preceding order position pos ends
// with a line break.
func (d *Document) terminateBefore(pos int) {
	owner := RootTable
	if pos > 0 {
		owner = d.order[pos-1]
	}
	t := &d.tables[owner]
	if n := len(t.entries); n > 0 {
		if t.entries[n-1].newline == "" {
			t.entries[n-1].newline = d.eol
		}
		return
	}
	if owner != RootTable && t.newline == "" {
		t.newline = d.eol
	}
}
