package document

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Kind is the TOML type of a value.
type Kind int

const (
	KindString Kind = iota + 1
	KindInteger
	KindFloat
	KindBoolean
	KindDatetime
	KindArray
	KindInlineTable
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindDatetime:
		return "datetime"
	case KindArray:
		return "array"
	case KindInlineTable:
		return "inline table"
	default:
		return "unknown"
	}
}

// Decor is the text surrounding a value on its line.
type Decor struct {
	// Prefix is the whitespace between '=' and the value.
	Prefix string
	// Suffix is the whitespace and optional comment between the value and
	// the line break.
	Suffix string
}

// DefaultDecor is the decoration given to values built by String and Integer.
var DefaultDecor = Decor{Prefix: " "}

// Value is a TOML value as written in the document plus its decoration.
type Value struct {
	kind  Kind
	raw   string
	decor Decor
}

// String builds a basic-string value.
func String(s string) Value {
	return Value{kind: KindString, raw: quote(s), decor: DefaultDecor}
}

// Integer builds a decimal integer value.
func Integer(n int64) Value {
	return Value{kind: KindInteger, raw: strconv.FormatInt(n, 10), decor: DefaultDecor}
}

func (v Value) Kind() Kind { return v.kind }

// Raw returns the value exactly as it appears in the document.
func (v Value) Raw() string { return v.raw }

func (v Value) Decor() Decor { return v.decor }

// WithDecor returns a copy of v carrying d.
func (v Value) WithDecor(d Decor) Value {
	v.decor = d
	return v
}

// AsString decodes a string value.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	s, err := decodeScalar[string](v.raw)
	if err != nil {
		return "", false
	}
	return s, true
}

// AsInteger decodes an integer value, including hex, octal, binary and
// underscore-separated forms.
func (v Value) AsInteger() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	n, err := decodeScalar[int64](v.raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func decodeScalar[T any](raw string) (T, error) {
	var holder struct {
		V T `toml:"v"`
	}
	if err := toml.Unmarshal([]byte("v = "+raw+"\n"), &holder); err != nil {
		return holder.V, fmt.Errorf("decode %s: %w", raw, err)
	}
	return holder.V, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// quote renders s as a TOML basic string.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func isBareKeyChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || isDigit(c) || c == '_' || c == '-'
}

func encodeKey(key string) string {
	if key == "" {
		return `""`
	}
	for i := 0; i < len(key); i++ {
		if !isBareKeyChar(key[i]) {
			return quote(key)
		}
	}
	return key
}
