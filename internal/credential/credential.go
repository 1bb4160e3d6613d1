// Package credential resolves the API key used for content generation.
//
// A key saved by the user wins over the build-time default. Both are
// trimmed before use. Saving or clearing notifies registered hooks so
// cached clients can be rebuilt with the new key.
package credential

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/website1975/vatly12CTST/internal/store"
)

// Persisted setting keys.
const (
	KeyUserAPIKey = "USER_API_KEY"
	KeyHelpSeen   = "hasSeenHelp"
)

const (
	placeholderPrefix = "your_"
	minUsableLen      = 10
)

var (
	// ErrEmpty is returned by ValidateFormat for blank input.
	ErrEmpty = errors.New("credential: empty")

	// ErrInvalidFormat is returned by ValidateFormat when the key lacks
	// the expected prefix.
	ErrInvalidFormat = errors.New("credential: invalid format")
)

// Source reports where the resolved key came from.
type Source string

const (
	SourceUser    Source = "user"
	SourceDefault Source = "default"
	SourceNone    Source = "none"
)

// Store reads and writes the user key on top of a settings repository.
type Store struct {
	repo     store.SettingsRepo
	fallback string
	prefix   string
	logger   *zap.Logger

	mu    sync.Mutex
	hooks []func()
}

// Option configures a Store.
type Option func(*Store)

// WithDefault sets the build-time default key.
func WithDefault(v string) Option {
	return func(s *Store) { s.fallback = strings.TrimSpace(v) }
}

// WithPrefix sets the prefix ValidateFormat requires. Empty disables the check.
func WithPrefix(p string) Option {
	return func(s *Store) { s.prefix = p }
}

// WithLogger sets the logger used for repository failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a Store.
func New(repo store.SettingsRepo, opts ...Option) *Store {
	s := &Store{repo: repo, logger: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Read returns the user-saved key if present and non-empty, else the
// build-time default, else "".
func (s *Store) Read(ctx context.Context) string {
	v, _ := s.resolve(ctx)
	return v
}

// Source reports which value Read would return.
func (s *Store) Source(ctx context.Context) Source {
	_, src := s.resolve(ctx)
	return src
}

func (s *Store) resolve(ctx context.Context) (string, Source) {
	v, ok, err := s.repo.Get(ctx, KeyUserAPIKey)
	if err != nil {
		s.logger.Warn("read saved api key", zap.Error(err))
	}
	if v = strings.TrimSpace(v); ok && v != "" {
		return v, SourceUser
	}
	if s.fallback != "" {
		return s.fallback, SourceDefault
	}
	return "", SourceNone
}

// Save persists the trimmed value and notifies change hooks.
func (s *Store) Save(ctx context.Context, value string) error {
	if err := s.repo.Set(ctx, KeyUserAPIKey, strings.TrimSpace(value)); err != nil {
		return err
	}
	s.notify()
	return nil
}

// Clear removes the saved value and notifies change hooks.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, KeyUserAPIKey); err != nil {
		return err
	}
	s.notify()
	return nil
}

// IsUsable applies Usable to the resolved key.
func (s *Store) IsUsable(ctx context.Context) bool {
	return Usable(s.Read(ctx))
}

// OnChange registers fn to run after every Save and Clear.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

func (s *Store) notify() {
	s.mu.Lock()
	hooks := append([]func(){}, s.hooks...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

// ValidateFormat checks user input before it is saved. It never touches
// the network.
func (s *Store) ValidateFormat(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrEmpty
	}
	if s.prefix != "" && !strings.HasPrefix(value, s.prefix) {
		return ErrInvalidFormat
	}
	return nil
}

// Prefix returns the prefix ValidateFormat requires.
func (s *Store) Prefix() string {
	return s.prefix
}

// HelpSeen reports whether the one-time help overlay was dismissed.
func (s *Store) HelpSeen(ctx context.Context) bool {
	v, ok, err := s.repo.Get(ctx, KeyHelpSeen)
	if err != nil {
		s.logger.Warn("read help flag", zap.Error(err))
		return false
	}
	return ok && v == "true"
}

// MarkHelpSeen persists the help flag.
func (s *Store) MarkHelpSeen(ctx context.Context) error {
	return s.repo.Set(ctx, KeyHelpSeen, "true")
}

// ResetHelp removes the help flag so the overlay shows again.
func (s *Store) ResetHelp(ctx context.Context) error {
	return s.repo.Delete(ctx, KeyHelpSeen)
}

// Usable is a heuristic check: the key is longer than ten characters and
// is not an unfilled template value. Only a remote call proves validity.
func Usable(v string) bool {
	v = strings.TrimSpace(v)
	return len(v) > minUsableLen && !strings.HasPrefix(v, placeholderPrefix)
}

// Mask shows only the first and last four characters of v.
func Mask(v string) string {
	if len(v) <= 8 {
		return strings.Repeat("*", len(v))
	}
	return v[:4] + strings.Repeat("*", len(v)-8) + v[len(v)-4:]
}
