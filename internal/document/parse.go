package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// Parse builds a Document from text. Empty text yields an empty Document.
func Parse(text string) (*Document, error) {
	if err := validate(text); err != nil {
		return nil, err
	}

	b := &builder{src: text, doc: New()}
	if eol := firstEOL(text); eol != "" {
		b.doc.eol = eol
	}
	b.parser.KeepComments = true
	b.parser.Reset([]byte(text))
	for b.parser.NextExpression() {
		if err := b.expression(b.parser.Expression()); err != nil {
			return nil, err
		}
	}
	if err := b.parser.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	b.doc.trailing = text[b.cursor:]
	return b.doc, nil
}

// validate decodes text once so that semantic errors the expression parser
// does not track (duplicate keys, redefined tables, a table stored into an
// array) are rejected with a line and column.
func validate(text string) error {
	var sink map[string]any
	err := toml.Unmarshal([]byte(text), &sink)
	if err == nil {
		return nil
	}
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Errorf("%w: line %d, column %d: %s", ErrMalformed, row, col, decodeErr.Error())
	}
	return fmt.Errorf("%w: %w", ErrMalformed, err)
}

// builder turns the expressions of unstable.Parser into tables and entries.
// The text between two expressions (blank lines, comment lines and
// indentation) becomes the leading trivia of the second one.
type builder struct {
	src     string
	parser  unstable.Parser
	doc     *Document
	current TableID
	// cursor is the offset just past the last consumed line break.
	cursor int
}

func (b *builder) expression(n *unstable.Node) error {
	switch n.Kind {
	case unstable.Table, unstable.ArrayTable:
		t, err := b.header(n)
		if err != nil {
			return err
		}
		b.doc.tables = append(b.doc.tables, t)
		b.current = TableID(len(b.doc.tables) - 1)
		b.doc.order = append(b.doc.order, b.current)
	case unstable.KeyValue:
		e, err := b.keyValue(n)
		if err != nil {
			return err
		}
		b.doc.tables[b.current].entries = append(b.doc.tables[b.current].entries, e)
	}
	// Standalone comments stay in the leading trivia of the next item.
	return nil
}

func (b *builder) header(n *unstable.Node) (table, error) {
	keys, keyStart, keyEnd := b.key(n.Key())
	open, closing := "[", "]"
	array := n.Kind == unstable.ArrayTable
	if array {
		open, closing = "[[", "]]"
	}
	start := strings.LastIndex(b.src[b.cursor:keyStart], open)
	if start < 0 {
		return table{}, b.errorf(keyStart, "expected %q before table key", open)
	}
	start += b.cursor
	end := skipBlank(b.src, keyEnd)
	if !strings.HasPrefix(b.src[end:], closing) {
		return table{}, b.errorf(end, "expected %q to close table header", closing)
	}
	end += len(closing)

	leading := b.src[b.cursor:start]
	trailer, newline, err := b.lineEnd(n, end)
	if err != nil {
		return table{}, err
	}
	return table{
		leading: leading,
		header:  b.src[start:end],
		keys:    keys,
		array:   array,
		trailer: trailer,
		newline: newline,
	}, nil
}

func (b *builder) keyValue(n *unstable.Node) (entry, error) {
	keys, keyStart, keyEnd := b.key(n.Key())
	eq := skipBlank(b.src, keyEnd)
	if eq >= len(b.src) || b.src[eq] != '=' {
		return entry{}, b.errorf(eq, "expected '=' after key %q", b.src[keyStart:keyEnd])
	}
	valueStart := skipBlank(b.src, eq+1)
	value := n.Value()
	valueEnd, err := b.valueEnd(value, valueStart)
	if err != nil {
		return entry{}, err
	}

	leading := b.src[b.cursor:keyStart]
	suffix, newline, err := b.lineEnd(n, valueEnd)
	if err != nil {
		return entry{}, err
	}
	return entry{
		leading:   leading,
		rawKey:    b.src[keyStart:keyEnd],
		keys:      keys,
		keySuffix: b.src[keyEnd:eq],
		value: Value{
			kind: kindOf(value.Kind),
			raw:  b.src[valueStart:valueEnd],
			decor: Decor{
				Prefix: b.src[eq+1 : valueStart],
				Suffix: suffix,
			},
		},
		newline: newline,
	}, nil
}

// key collects the decoded segments of a possibly dotted key and the byte
// range from its first to its last segment.
func (b *builder) key(it unstable.Iterator) (keys []string, start, end int) {
	start = -1
	for it.Next() {
		k := it.Node()
		keys = append(keys, string(k.Data))
		if start < 0 {
			start = int(k.Raw.Offset)
		}
		end = int(k.Raw.Offset + k.Raw.Length)
	}
	return keys, start, end
}

// valueEnd returns the offset just past the value n, which starts at start.
func (b *builder) valueEnd(n *unstable.Node, start int) (int, error) {
	switch n.Kind {
	case unstable.Array:
		return b.containerEnd(n, start, ']')
	case unstable.InlineTable:
		return b.containerEnd(n, start, '}')
	}
	if n.Raw.Length > 0 {
		return int(n.Raw.Offset + n.Raw.Length), nil
	}
	r := b.parser.Range(n.Data)
	return int(r.Offset + r.Length), nil
}

// containerEnd walks the elements of an array or inline table whose opening
// bracket is at start and returns the offset past the closing bracket.
func (b *builder) containerEnd(n *unstable.Node, start int, closing byte) (int, error) {
	pos := start + 1
	it := n.Children()
	for it.Next() {
		child := it.Node()
		var err error
		switch child.Kind {
		case unstable.Comment:
			continue
		case unstable.KeyValue:
			_, _, keyEnd := b.key(child.Key())
			eq := skipBlank(b.src, keyEnd)
			pos, err = b.valueEnd(child.Value(), skipBlank(b.src, eq+1))
		default:
			pos, err = b.valueEnd(child, skipGap(b.src, pos))
		}
		if err != nil {
			return 0, err
		}
	}
	pos = skipGap(b.src, pos)
	if pos >= len(b.src) || b.src[pos] != closing {
		return 0, b.errorf(pos, "expected %q", closing)
	}
	return pos + 1, nil
}

// lineEnd consumes the whitespace, the comment the parser chained to n, and
// the line break after offset pos. newline is empty at end of input.
func (b *builder) lineEnd(n *unstable.Node, pos int) (suffix, newline string, err error) {
	end := skipBlank(b.src, pos)
	if c := n.Next(); c != nil && c.Kind == unstable.Comment {
		end = int(c.Raw.Offset + c.Raw.Length)
		if end > pos && b.src[end-1] == '\r' {
			end--
		}
	}
	switch {
	case end >= len(b.src):
	case strings.HasPrefix(b.src[end:], "\r\n"):
		newline = "\r\n"
	case b.src[end] == '\n':
		newline = "\n"
	default:
		return "", "", b.errorf(end, "unexpected %q after value", b.src[end])
	}
	b.cursor = end + len(newline)
	return b.src[pos:end], newline, nil
}

func (b *builder) errorf(pos int, format string, args ...any) error {
	line := strings.Count(b.src[:min(pos, len(b.src))], "\n") + 1
	return fmt.Errorf("%w: line %d: %s", ErrMalformed, line, fmt.Sprintf(format, args...))
}

func kindOf(k unstable.Kind) Kind {
	switch k {
	case unstable.String:
		return KindString
	case unstable.Integer:
		return KindInteger
	case unstable.Float:
		return KindFloat
	case unstable.Bool:
		return KindBoolean
	case unstable.LocalDate, unstable.LocalTime, unstable.LocalDateTime, unstable.DateTime:
		return KindDatetime
	case unstable.Array:
		return KindArray
	case unstable.InlineTable:
		return KindInlineTable
	default:
		return 0
	}
}

func firstEOL(text string) string {
	idx := strings.IndexByte(text, '\n')
	switch {
	case idx < 0:
		return ""
	case idx > 0 && text[idx-1] == '\r':
		return "\r\n"
	default:
		return "\n"
	}
}

func skipBlank(s string, pos int) int {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t') {
		pos++
	}
	return pos
}

// skipGap skips the separators between container elements: whitespace,
// line breaks, commas and comments.
func skipGap(s string, pos int) int {
	for pos < len(s) {
		switch s[pos] {
		case ' ', '\t', '\r', '\n', ',':
			pos++
		case '#':
			for pos < len(s) && s[pos] != '\n' {
				pos++
			}
		default:
			return pos
		}
	}
	return pos
}
