// Package viewer holds the authoritative state of one running image show and
// the machinery that keeps renders and teardowns serialized against it.
package viewer

import (
	"github.com/rescp17/slideCaster/pkg/media"
)

// State describes one show: the ordered image list, the position in it, and
// an optional backdrop. It is owned by exactly one Session; on the GM it is
// mutated by local navigation, on peers only by the sync reconciler.
type State struct {
	Images     []string
	Index      int
	Background string // empty means no backdrop
}

// NewState builds a State from raw paths. Paths are normalized and blanks
// dropped; a start index outside the resulting list resets to 0.
func NewState(images []string, background string, index int) *State {
	s := &State{Images: media.NormalizeAll(images)}
	s.Index = clampIndex(index, len(s.Images))
	if bg, ok := media.Normalize(background); ok {
		s.Background = bg
	}
	return s
}

// An index outside [0, length) resets to 0. The same rule applies on
// creation, explicit jumps and reconciliation.
func clampIndex(i, length int) int {
	if length == 0 || i < 0 || i >= length {
		return 0
	}
	return i
}

// SetIndex moves to i. Reports whether the state actually changed so callers
// can skip redundant renders and broadcasts.
func (s *State) SetIndex(i int) bool {
	next := clampIndex(i, len(s.Images))
	if next == s.Index {
		return false
	}
	s.Index = next
	return true
}

// JumpTo is SetIndex under its navigation name.
func (s *State) JumpTo(target int) bool {
	return s.SetIndex(target)
}

// Advance moves step images forward, wrapping around both ends. Negative
// steps go backward. No-op on an empty list.
func (s *State) Advance(step int) bool {
	n := len(s.Images)
	if n == 0 {
		return false
	}
	next := ((s.Index+step)%n + n) % n
	if next == s.Index {
		return false
	}
	s.Index = next
	return true
}

// SetBackground replaces the backdrop; blank input clears it.
func (s *State) SetBackground(value string) bool {
	bg := ""
	if p, ok := media.Normalize(value); ok {
		bg = p
	}
	if bg == s.Background {
		return false
	}
	s.Background = bg
	return true
}

// Update is a sparse change description: nil fields leave the matching state
// field untouched. A Background pointing at an empty string is an explicit
// clear, distinct from an absent field.
type Update struct {
	Background *string
	Index      *int
}

// Apply reconciles a sparse update. The index is re-clamped against the
// current image list. Reports whether anything changed.
func (s *State) Apply(u Update) bool {
	changed := false
	if u.Background != nil && s.SetBackground(*u.Background) {
		changed = true
	}
	if u.Index != nil && s.SetIndex(*u.Index) {
		changed = true
	}
	return changed
}
