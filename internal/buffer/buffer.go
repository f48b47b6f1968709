// Package buffer keeps a prefetched queue of generated puzzles for one
// practice session, refilling it in the background before it runs dry.
package buffer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/abhisek/catprep/internal/llm"
	"github.com/abhisek/catprep/internal/puzzle"
	"github.com/abhisek/catprep/internal/puzzlegen"
	"github.com/google/uuid"
)

// ErrDisposed is returned by Start once the buffer has been disposed.
var ErrDisposed = errors.New("buffer disposed")

var errNoItems = errors.New("generator returned no items")

// Snapshot is a consistent view of the buffer for rendering.
type Snapshot struct {
	SessionID  string
	Skill      puzzle.SkillID
	Difficulty puzzle.Difficulty

	// Current is the item at the cursor, or nil when none is buffered.
	Current puzzle.Item

	// Loading is set while a fetch is in flight and nothing can be shown.
	Loading bool

	// LoadingNext is set while a fetch is in flight behind a shown item.
	LoadingNext bool

	// ErrorMessage is the display message of the last failed fetch.
	ErrorMessage string

	// Answered counts items the learner has advanced past.
	Answered int

	// Remaining counts buffered items from the cursor onwards.
	Remaining int
}

// Buffer serves items for one (skill, difficulty) session at a time.
// All methods are safe for concurrent use.
type Buffer struct {
	gen    puzzlegen.Generator
	cfg    Config
	ctx    context.Context
	logger *slog.Logger

	mu         sync.Mutex
	token      uint64
	sessionID  string
	skill      puzzle.SkillID
	difficulty puzzle.Difficulty
	queue      []puzzle.Item
	cursor     int
	inFlight   bool
	lastErr    error
	disposed   bool
	updates    chan struct{}

	wg sync.WaitGroup
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Buffer) { b.logger = l }
}

// WithContext sets the context passed to the generator. It is not
// cancelled on Dispose; stale results are dropped instead.
func WithContext(ctx context.Context) Option {
	return func(b *Buffer) { b.ctx = ctx }
}

// New creates an idle Buffer. Call Start to begin a session.
func New(gen puzzlegen.Generator, cfg Config, opts ...Option) (*Buffer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &Buffer{
		gen:     gen,
		cfg:     cfg,
		ctx:     context.Background(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		updates: make(chan struct{}, 1),
	}
	for _, fn := range opts {
		fn(b)
	}
	return b, nil
}

// Start replaces the current session with a fresh one and begins the
// initial fetch. A fetch still running for the previous session is
// ignored when it completes.
func (b *Buffer) Start(skill puzzle.SkillID, difficulty puzzle.Difficulty) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		return ErrDisposed
	}

	b.token++
	b.sessionID = uuid.NewString()
	b.skill = skill
	b.difficulty = difficulty
	b.queue = nil
	b.cursor = 0
	b.inFlight = false
	b.lastErr = nil

	b.logger.Info("session started",
		"session", b.sessionID,
		"skill", skill,
		"difficulty", difficulty,
	)

	b.fetchLocked()
	b.notifyLocked()
	return nil
}

// Current returns the item at the cursor, or nil.
func (b *Buffer) Current() puzzle.Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentLocked()
}

// Advance moves past the current item and starts a refill when the
// queue is running low. It does nothing when no item is current.
func (b *Buffer) Advance() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed || b.cursor >= len(b.queue) {
		return
	}
	b.cursor++
	b.maybeRefillLocked()
	b.notifyLocked()
}

// Retry re-runs the fetch that failed. It reports whether a fetch was
// started; without a stored error it does nothing.
func (b *Buffer) Retry() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed || b.lastErr == nil {
		return false
	}
	b.lastErr = nil
	b.fetchLocked()
	b.notifyLocked()
	return true
}

// Snapshot returns the observable state.
func (b *Buffer) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	cur := b.currentLocked()
	s := Snapshot{
		SessionID:   b.sessionID,
		Skill:       b.skill,
		Difficulty:  b.difficulty,
		Current:     cur,
		Loading:     b.inFlight && cur == nil,
		LoadingNext: b.inFlight && cur != nil,
		Answered:    b.cursor,
		Remaining:   len(b.queue) - b.cursor,
	}
	if b.lastErr != nil {
		s.ErrorMessage = puzzlegen.UserMessage(b.lastErr)
	}
	return s
}

// Updates returns a channel that receives a value after state changes.
// Signals are coalesced, so a receiver should read Snapshot rather than
// count them. The channel is closed by Dispose.
func (b *Buffer) Updates() <-chan struct{} {
	return b.updates
}

// Dispose ends the buffer. Results of fetches still running are
// discarded and the Updates channel is closed.
func (b *Buffer) Dispose() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		return
	}
	b.disposed = true
	b.token++
	b.inFlight = false
	close(b.updates)
	b.logger.Info("session disposed", "session", b.sessionID)
}

// Wait blocks until every background fetch, including discarded ones,
// has returned.
func (b *Buffer) Wait() {
	b.wg.Wait()
}

func (b *Buffer) currentLocked() puzzle.Item {
	if b.cursor < len(b.queue) {
		return b.queue[b.cursor]
	}
	return nil
}

// maybeRefillLocked starts a background fetch once the unconsumed tail
// is at or below the low-water mark.
func (b *Buffer) maybeRefillLocked() {
	remaining := len(b.queue) - b.cursor
	if len(b.queue) == 0 || remaining < 0 || remaining > b.cfg.LowWater {
		return
	}
	if b.inFlight || b.lastErr != nil {
		return
	}
	b.logger.Debug("refilling", "session", b.sessionID, "remaining", remaining)
	b.fetchLocked()
}

// fetchLocked starts a fetch unless one is already running.
func (b *Buffer) fetchLocked() {
	if b.inFlight || b.disposed {
		return
	}
	b.inFlight = true

	token := b.token
	skill, difficulty, count := b.skill, b.difficulty, b.cfg.BatchSize
	ctx := llm.WithSession(b.ctx, b.sessionID)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		items, err := b.gen.Generate(ctx, skill, difficulty, count)
		if err == nil && len(items) == 0 {
			err = errNoItems
		}
		b.apply(token, items, err)
	}()
}

// apply stores a fetch result if its session is still current.
func (b *Buffer) apply(token uint64, items []puzzle.Item, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if token != b.token {
		b.logger.Debug("discarding stale fetch result",
			"items", len(items),
			"error", err,
		)
		return
	}

	b.inFlight = false
	if err != nil {
		b.lastErr = err
		b.logger.Warn("fetch failed",
			"session", b.sessionID,
			"skill", b.skill,
			"error", err,
		)
	} else {
		b.queue = append(b.queue, items...)
		b.lastErr = nil
		b.logger.Debug("fetch complete",
			"session", b.sessionID,
			"added", len(items),
			"remaining", len(b.queue)-b.cursor,
		)
		b.maybeRefillLocked()
	}
	b.notifyLocked()
}

func (b *Buffer) notifyLocked() {
	if b.disposed {
		return
	}
	select {
	case b.updates <- struct{}{}:
	default:
	}
}
