package store

import (
	"upnext/internal/document"
	"upnext/internal/errs"
	"upnext/internal/series"
)

// ReconcileResult counts the membership changes applied to the document.
type ReconcileResult struct {
	Kept   int
	Pruned int
	Added  int
	// Unreadable counts the pruned tables whose path was missing or not a
	// string.
	Unreadable int
}

// Reconcile rewrites the series array of doc to mirror list. Tables whose
// path is missing, not a string, or not in list are removed. Every record
// then gets its next_episode set on its table; records without a table get a
// new one after the existing elements. Surviving tables keep their order and
// all of their other fields and comments.
func Reconcile(doc *document.Document, list *series.List) (ReconcileResult, error) {
	var result ReconcileResult
	ids, err := doc.ArrayOfTables(SeriesKey)
	if err != nil {
		return result, errs.Wrap(errs.ErrSchema, "reconcile", "", err)
	}

	kept := ids[:0]
	for _, id := range ids {
		path, ok, err := tablePath(doc, id)
		if err == nil && ok && list.Contains(path) {
			kept = append(kept, id)
			continue
		}
		if err != nil || !ok {
			result.Unreadable++
		}
		doc.RemoveArrayTable(id)
		result.Pruned++
	}
	result.Kept = len(kept)

	for _, record := range list.Items() {
		id, existed, err := applyRecord(doc, kept, record)
		if err != nil {
			return result, err
		}
		if !existed {
			doc.AppendArrayTable(id)
			kept = append(kept, id)
			result.Added++
		}
	}
	return result, nil
}

// applyRecord locates or creates the table for record and writes its
// next_episode. New tables are returned detached.
func applyRecord(doc *document.Document, ids []document.TableID, record series.Series) (document.TableID, bool, error) {
	id, existed, err := FindOrCreate(doc, ids, record.Path)
	if err != nil {
		return 0, false, err
	}
	if err := SetField(doc, id, nextField, record.NextEpisode); err != nil {
		return 0, false, err
	}
	return id, existed, nil
}
