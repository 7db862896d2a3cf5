package store

import (
	"fmt"

	"upnext/internal/document"
	"upnext/internal/errs"
)

const (
	// SeriesKey is the top-level array of tables holding one table per series.
	SeriesKey = "series"
	pathField = "path"
	nextField = "next_episode"
)

// FindOrCreate returns the first table among ids whose path field equals
// path. When none matches, a new detached table holding only the path is
// created; the caller decides where to attach it. A path field that is not
// a string fails with errs.ErrSchema.
func FindOrCreate(doc *document.Document, ids []document.TableID, path string) (document.TableID, bool, error) {
	for _, id := range ids {
		current, ok, err := tablePath(doc, id)
		if err != nil {
			return 0, false, err
		}
		if ok && current == path {
			return id, true, nil
		}
	}

	id := doc.NewArrayTable(SeriesKey)
	if err := doc.Set(id, pathField, document.String(path)); err != nil {
		return 0, false, errs.Wrap(errs.ErrSchema, "locate series", "set path", err)
	}
	return id, false, nil
}

// tablePath reads the path field of a series table. A missing field reports
// ok=false without error.
func tablePath(doc *document.Document, id document.TableID) (string, bool, error) {
	value, kind := doc.Get(id, pathField)
	switch kind {
	case document.ItemNone:
		return "", false, nil
	case document.ItemValue:
		s, ok := value.AsString()
		if !ok {
			return "", false, fmt.Errorf("%w: series %s must be a string, found %s %s", errs.ErrSchema, pathField, value.Kind(), value.Raw())
		}
		return s, true, nil
	default:
		return "", false, fmt.Errorf("%w: series %s must be a string, found %s", errs.ErrSchema, pathField, kind)
	}
}

// SetField stores n under name in table id. An existing plain value keeps
// its decoration, so trailing comments survive. A missing field is appended
// at the end of the table. A field that is a table fails with errs.ErrSchema.
func SetField(doc *document.Document, id document.TableID, name string, n int64) error {
	value := document.Integer(n)
	current, kind := doc.Get(id, name)
	switch kind {
	case document.ItemValue:
		value = value.WithDecor(current.Decor())
	case document.ItemNone:
	default:
		return fmt.Errorf("%w: field %q is a %s, not a value", errs.ErrSchema, name, kind)
	}
	if err := doc.Set(id, name, value); err != nil {
		return errs.Wrap(errs.ErrSchema, "set field", name, err)
	}
	return nil
}
