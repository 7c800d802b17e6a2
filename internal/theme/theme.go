// Package theme persists the desk's dark/light presentation flag.
package theme

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/kartikm76/middleoffice-ibor/internal/common"
	"github.com/kartikm76/middleoffice-ibor/internal/interfaces"
)

// StorageKey is the preference key holding the theme.
const StorageKey = "ibor:theme"

// Theme is the presentation mode.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// Parse accepts "dark" or "light" (case-insensitive).
func Parse(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Dark:
		return Dark, nil
	case Light:
		return Light, nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// Service holds the current theme and writes every change through to storage.
type Service struct {
	mu      sync.Mutex
	kv      interfaces.KeyValueStorage
	logger  *common.Logger
	current Theme
}

// NewService reads the persisted theme. A missing or unreadable value means dark.
func NewService(ctx context.Context, kv interfaces.KeyValueStorage, logger *common.Logger) *Service {
	s := &Service{kv: kv, logger: logger, current: Dark}

	raw, err := kv.Get(ctx, StorageKey)
	switch {
	case errors.Is(err, interfaces.ErrKeyNotFound):
	case err != nil:
		logger.Warn().Err(err).Msg("Failed to read theme, using dark")
	default:
		if t, perr := Parse(raw); perr == nil {
			s.current = t
		} else {
			logger.Warn().Str("value", raw).Msg("Ignoring invalid stored theme")
		}
	}
	return s
}

// Current returns the active theme.
func (s *Service) Current() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Set persists t and makes it current.
func (s *Service) Set(ctx context.Context, t Theme) error {
	if _, err := Parse(string(t)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(ctx, t)
}

// Toggle flips between dark and light and returns the new theme.
func (s *Service) Toggle(ctx context.Context) (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Light
	if s.current == Light {
		next = Dark
	}
	if err := s.setLocked(ctx, next); err != nil {
		return s.current, err
	}
	return next, nil
}

// setLocked requires s.mu.
func (s *Service) setLocked(ctx context.Context, t Theme) error {
	if err := s.kv.Set(ctx, StorageKey, string(t)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	s.current = t
	return nil
}
