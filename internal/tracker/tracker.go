package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"upnext/internal/errs"
	"upnext/internal/library"
	"upnext/internal/logging"
	"upnext/internal/player"
	"upnext/internal/series"
)

// SeriesStore persists the series list.
type SeriesStore interface {
	Load() (*series.List, error)
	Save(list *series.List) error
	Render(record series.Series) (string, error)
}

// Player plays one episode file, blocking until playback ends.
type Player interface {
	Play(ctx context.Context, file string) error
}

// Scanner lists the episode files of a series directory in play order.
type Scanner func(dir string) ([]string, error)

// Confirmer asks the user a yes/no question.
type Confirmer func(prompt string) (bool, error)

// Reporter receives progress notifications for user-facing output.
type Reporter interface {
	EpisodeStarting(record series.Series, file string, at time.Time)
	CountdownStarted(seconds int)
	CountdownTick(remaining int)
}

type nopReporter struct{}

func (nopReporter) EpisodeStarting(series.Series, string, time.Time) {}
func (nopReporter) CountdownStarted(int) {}
func (nopReporter) CountdownTick(int) {}

// Option configures a Tracker.
type Option func(*Tracker)

// WithScanner replaces the directory scan (primarily for tests).
func WithScanner(scan Scanner) Option {
	return func(t *Tracker) {
		if scan != nil {
			t.scan = scan
		}
	}
}

// WithConfirmer sets the prompt used when an episode file name does not
// match the expected number. Without one, mismatches are declined.
func WithConfirmer(confirm Confirmer) Option {
	return func(t *Tracker) { t.confirm = confirm }
}

// WithReporter sets the progress receiver.
func WithReporter(reporter Reporter) Option {
	return func(t *Tracker) {
		if reporter != nil {
			t.reporter = reporter
		}
	}
}

// WithEpisodeCheck toggles the file-name episode number check.
func WithEpisodeCheck(enabled bool) Option {
	return func(t *Tracker) { t.verify = enabled }
}

// WithClock overrides the time source and the countdown step.
func WithClock(now func() time.Time, step time.Duration) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
		if step > 0 {
			t.step = step
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// Tracker runs upnext operations.
type Tracker struct {
	store    SeriesStore
	player   Player
	scan     Scanner
	confirm  Confirmer
	reporter Reporter
	verify   bool
	now      func() time.Time
	step     time.Duration
	logger   *slog.Logger
}

// New constructs a Tracker. p may be nil for operations that never
// play anything.
func New(store SeriesStore, p Player, opts ...Option) *Tracker {
	t := &Tracker{
		store:    store,
		player:   p,
		scan:     library.FindEpisodes,
		reporter: nopReporter{},
		verify:   true,
		now:      time.Now,
		step:     time.Second,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = logging.NewComponentLogger(t.logger, "tracker")
	return t
}

// Init starts tracking dir at the first episode.
func (t *Tracker) Init(dir string) (series.Series, error) {
	list, err := t.store.Load()
	if err != nil {
		return series.Series{}, err
	}
	record, err := list.Add(dir)
	if err != nil {
		return series.Series{}, err
	}
	if err := t.store.Save(list); err != nil {
		return series.Series{}, err
	}
	return record, nil
}

// Current returns the record tracked for dir.
func (t *Tracker) Current(dir string) (series.Series, error) {
	list, err := t.store.Load()
	if err != nil {
		return series.Series{}, err
	}
	return list.Find(dir)
}

// All returns every tracked record in document order.
func (t *Tracker) All() ([]series.Series, error) {
	list, err := t.store.Load()
	if err != nil {
		return nil, err
	}
	return list.Items(), nil
}

// Find returns the records whose path contains term.
func (t *Tracker) Find(term string, foldCase bool) ([]series.Series, error) {
	list, err := t.store.Load()
	if err != nil {
		return nil, err
	}
	return list.Search(term, foldCase), nil
}

// Increment moves the next episode of dir by n and returns the record
// before and after the change.
func (t *Tracker) Increment(dir string, n int64) (series.Series, series.Series, error) {
	list, err := t.store.Load()
	if err != nil {
		return series.Series{}, series.Series{}, err
	}
	before, err := list.Find(dir)
	if err != nil {
		return series.Series{}, series.Series{}, err
	}
	after, err := list.Advance(dir, n)
	if err != nil {
		return series.Series{}, series.Series{}, err
	}
	if err := t.store.Save(list); err != nil {
		return series.Series{}, series.Series{}, err
	}
	return before, after, nil
}

// Set makes n the next episode of dir.
func (t *Tracker) Set(dir string, n int64) (series.Series, error) {
	list, err := t.store.Load()
	if err != nil {
		return series.Series{}, err
	}
	record, err := list.SetNext(dir, n)
	if err != nil {
		return series.Series{}, err
	}
	if err := t.store.Save(list); err != nil {
		return series.Series{}, err
	}
	return record, nil
}

// Remove stops tracking dir and returns the dropped record.
func (t *Tracker) Remove(dir string) (series.Series, error) {
	list, err := t.store.Load()
	if err != nil {
		return series.Series{}, err
	}
	record, err := list.Find(dir)
	if err != nil {
		return series.Series{}, err
	}
	list.Remove(dir)
	if err := t.store.Save(list); err != nil {
		return series.Series{}, err
	}
	return record, nil
}

// Render formats record the way the document stores it.
func (t *Tracker) Render(record series.Series) (string, error) {
	return t.store.Render(record)
}

// Progress describes one tracked series against its directory contents.
type Progress struct {
	Series   series.Series
	Episodes int
	Err      error
}

// Overview reports progress for every tracked series. Scan failures are
// attached to the entry instead of failing the whole overview.
func (t *Tracker) Overview() ([]Progress, error) {
	items, err := t.All()
	if err != nil {
		return nil, err
	}
	out := make([]Progress, 0, len(items))
	for _, item := range items {
		files, err := t.scan(item.Path)
		out = append(out, Progress{Series: item, Episodes: len(files), Err: err})
	}
	return out, nil
}

// Playback is the outcome of playing one episode.
type Playback struct {
	Series    series.Series
	File      string
	Remaining int
}

// PlayNext plays the next episode of dir and advances it by one. The
// player is not started when the series is over or the episode check is
// declined, and nothing is saved when playback fails.
func (t *Tracker) PlayNext(ctx context.Context, dir string, assumeYes bool) (Playback, error) {
	list, err := t.store.Load()
	if err != nil {
		return Playback{}, err
	}
	record, err := list.Find(dir)
	if err != nil {
		return Playback{}, err
	}
	files, err := t.scan(dir)
	if err != nil {
		return Playback{}, err
	}
	if record.Over(len(files)) {
		return Playback{}, fmt.Errorf("%w: episode %d requested, %s has %d", errs.ErrSeriesOver, record.NextEpisode, dir, len(files))
	}
	file := files[record.NextEpisode-1]

	if err := t.checkEpisode(file, record.NextEpisode, assumeYes); err != nil {
		return Playback{}, err
	}
	if t.player == nil {
		return Playback{}, errs.Wrap(errs.ErrPlayerNotFound, "", "no player configured", nil)
	}

	t.reporter.EpisodeStarting(record, file, t.now())
	t.logger.Debug("episode started",
		logging.String(logging.FieldSeries, dir),
		logging.Int64(logging.FieldEpisode, record.NextEpisode),
		logging.String("file", file))
	if err := t.player.Play(ctx, file); err != nil {
		return Playback{}, err
	}

	updated, err := list.Advance(dir, 1)
	if err != nil {
		return Playback{}, err
	}
	if err := t.store.Save(list); err != nil {
		return Playback{}, err
	}
	t.logger.Debug("episode finished",
		logging.String(logging.FieldSeries, dir),
		logging.Int64(logging.FieldEpisode, record.NextEpisode))

	remaining := len(files) - int(updated.NextEpisode) + 1
	if remaining < 0 {
		remaining = 0
	}
	return Playback{Series: updated, File: file, Remaining: remaining}, nil
}

func (t *Tracker) checkEpisode(file string, n int64, assumeYes bool) error {
	if !t.verify || assumeYes || library.MatchesEpisode(file, n) {
		return nil
	}
	if t.confirm == nil {
		return fmt.Errorf("%w: %s does not look like episode %d", errs.ErrEpisodeMismatch, file, n)
	}
	ok, err := t.confirm(fmt.Sprintf("%s does not look like episode %d. Play anyway?", file, n))
	if err != nil {
		return errs.Wrap(errs.ErrIO, "confirm episode", "", err)
	}
	if !ok {
		return fmt.Errorf("%w: declined to play %s as episode %d", errs.ErrEpisodeMismatch, file, n)
	}
	return nil
}

// Binge plays episodes of dir back to back with a countdown of delay
// seconds between them, until the series is over. Each episode is saved
// before the countdown starts. The returned error wraps errs.ErrSeriesOver
// when every episode has been played.
func (t *Tracker) Binge(ctx context.Context, dir string, delay int, assumeYes bool) error {
	for {
		playback, err := t.PlayNext(ctx, dir, assumeYes)
		if err != nil {
			return err
		}
		if playback.Remaining == 0 {
			return fmt.Errorf("%w: finished %s", errs.ErrSeriesOver, dir)
		}
		if delay > 0 {
			t.reporter.CountdownStarted(delay)
		}
		if err := player.Countdown(ctx, delay, t.step, t.reporter.CountdownTick); err != nil {
			return err
		}
	}
}
