// Package feed holds the community tip feed shared by every session of the
// process.
//
// The feed is append-only and lives for the lifetime of the process. Reads
// see at most the ViewSize most recent tips; the underlying list is never
// trimmed.
package feed

import (
	"strings"
	"sync"
)

// ViewSize is the number of tips a read returns.
const ViewSize = 10

// NoTips is returned by RecentTips and Render when nothing has been shared.
// Use Len to tell an empty feed apart from a tip with the same text.
const NoTips = "No tips shared yet."

// Store is the process-wide ordered list of tips.
type Store struct {
	mu   sync.Mutex
	tips []string
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Submit trims tip and appends it. Blank tips are ignored.
// It reports whether the tip was stored.
func (s *Store) Submit(tip string) bool {
	tip = strings.TrimSpace(tip)
	if tip == "" {
		return false
	}
	s.mu.Lock()
	s.tips = append(s.tips, tip)
	s.mu.Unlock()
	return true
}

// RecentTips returns the last ViewSize tips, oldest first, or a single
// NoTips entry when the feed is empty. The slice is a copy.
func (s *Store) RecentTips() []string {
	if view := s.Window(); len(view) > 0 {
		return view
	}
	return []string{NoTips}
}

// Len returns the total number of tips ever stored.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tips)
}

// Render formats the visible window as a bullet list, one tip per line.
func (s *Store) Render() string {
	return Format(s.Window())
}

// Format renders tips as a bullet list, or NoTips when there are none.
func Format(tips []string) string {
	if len(tips) == 0 {
		return NoTips
	}
	var sb strings.Builder
	for i, tip := range tips {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("• ")
		sb.WriteString(tip)
	}
	return sb.String()
}

// Window copies the visible tips under the lock. It returns nil for an
// empty feed, unlike RecentTips.
func (s *Store) Window() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tips) == 0 {
		return nil
	}
	start := max(len(s.tips)-ViewSize, 0)
	out := make([]string, len(s.tips)-start)
	copy(out, s.tips[start:])
	return out
}
