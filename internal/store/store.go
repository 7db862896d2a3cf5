package store

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"upnext/internal/document"
	"upnext/internal/errs"
	"upnext/internal/fileutil"
	"upnext/internal/logging"
	"upnext/internal/series"
)

// ErrRender is the only error Render returns; the cause is logged.
var ErrRender = errors.New("failed to render series")

// Store loads and saves the series list in the document at a fixed path.
// It keeps no document between calls: every Save and Render starts from the
// file as it is on disk at that moment.
type Store struct {
	path   string
	logger *slog.Logger
}

// New creates a store for the document at path.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{
		path:   path,
		logger: logging.NewComponentLogger(logger, "store"),
	}
}

// Path returns the document location.
func (s *Store) Path() string { return s.path }

type seriesFile struct {
	Series []series.Series `toml:"series"`
}

// Load decodes the series list. A missing or empty document yields an empty
// list.
func (s *Store) Load() (*series.List, error) {
	data, err := fileutil.ReadFileOptional(s.path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrIO, "load series", s.path, err)
	}
	if len(data) == 0 {
		s.logger.Debug("document missing or empty", logging.String("path", s.path))
		return series.NewList()
	}

	var file seriesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, schemaError(s.path, err)
	}
	for i, record := range file.Series {
		if strings.TrimSpace(record.Path) == "" {
			return nil, fmt.Errorf("%w: %s: series #%d has no path", errs.ErrSchema, s.path, i+1)
		}
		if record.NextEpisode < series.FirstEpisode {
			return nil, fmt.Errorf("%w: %s: series %q has next_episode %d, must be at least %d",
				errs.ErrSchema, s.path, record.Path, record.NextEpisode, series.FirstEpisode)
		}
	}
	list, err := series.NewList(file.Series...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	s.logger.Debug("document loaded",
		logging.String("path", s.path),
		logging.Int("series", list.Len()))
	return list, nil
}

// Save reconciles list into the current on-disk document and replaces the
// file. Nothing is written when the existing document cannot be read or
// parsed.
func (s *Store) Save(list *series.List) error {
	doc, err := s.readDocument()
	if err != nil {
		return err
	}
	result, err := Reconcile(doc, list)
	if err != nil {
		return fmt.Errorf("%s: %w", s.path, err)
	}
	s.logger.Debug("series reconciled",
		logging.Int("kept", result.Kept),
		logging.Int("pruned", result.Pruned),
		logging.Int("added", result.Added))
	if result.Unreadable > 0 {
		logging.WarnWithContext(s.logger, "unreadable series entries removed", "series_pruned",
			logging.String("path", s.path),
			logging.Int("count", result.Unreadable),
			logging.String(logging.FieldImpact, "entries without a string path were dropped from the document"))
	}

	// The edited text must read back as a valid document before it
	// replaces the file.
	out := doc.String()
	if _, err := document.Parse(out); err != nil {
		logging.WarnWithContext(s.logger, "document not written", "document_invalid",
			logging.String("path", s.path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "the file was left unchanged; edit it by hand to continue"),
			logging.String(logging.FieldImpact, "progress was not saved"))
		return fmt.Errorf("%w: %s: edited document is invalid: %w", errs.ErrSchema, s.path, err)
	}

	if err := fileutil.WriteFileAtomic(s.path, []byte(out)); err != nil {
		return errs.Wrap(errs.ErrIO, "save series", s.path, err)
	}
	s.logger.Debug("document written", logging.String("path", s.path))
	return nil
}

// Render shows record as the table the next Save would produce for it,
// comments included. Failures collapse into ErrRender.
func (s *Store) Render(record series.Series) (string, error) {
	doc, err := s.readDocument()
	if err == nil {
		var ids []document.TableID
		ids, err = doc.ArrayOfTables(SeriesKey)
		if err == nil {
			var id document.TableID
			if id, _, err = applyRecord(doc, ids, record); err == nil {
				return doc.RenderTable(id), nil
			}
		}
	}
	s.logger.Debug("render failed",
		logging.String("series", record.Path),
		logging.String(logging.FieldErrorKind, errs.Kind(err)),
		logging.Error(err))
	return "", ErrRender
}

func (s *Store) readDocument() (*document.Document, error) {
	data, err := fileutil.ReadFileOptional(s.path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrIO, "read document", s.path, err)
	}
	doc, err := document.Parse(string(data))
	if err != nil {
		return nil, schemaError(s.path, err)
	}
	return doc, nil
}

func schemaError(path string, err error) error {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Errorf("%w: %s: line %d, column %d: %s", errs.ErrSchema, path, row, col, decodeErr.Error())
	}
	return fmt.Errorf("%w: %s: %w", errs.ErrSchema, path, err)
}
