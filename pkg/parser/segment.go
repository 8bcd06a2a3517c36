package parser

import (
	"strings"

	"logsift/pkg/model"
)

// segState is the segmenter's accumulation state.
type segState int

const (
	// noCurrentEntry: no timestamp has been seen yet, there is nothing to
	// attach continuation lines to.
	noCurrentEntry segState = iota

	// accumulatingEntry: an entry is open and collecting continuation lines.
	accumulatingEntry
)

// Segmenter reconstructs discrete timestamped entries from a single file's
// line stream. A line with a recognized timestamp opens a new entry (closing
// the previous one); lines without one are appended to the open entry.
// Feed lines in file order, then call Flush exactly once at end of input.
type Segmenter struct {
	rec       *TimestampRecognizer
	component string

	state    segState
	openedAt Match
	lines    []string
	orphans  int
}

// NewSegmenter creates a segmenter for one source file. All entries it emits
// carry the given component.
func NewSegmenter(rec *TimestampRecognizer, component string) *Segmenter {
	return &Segmenter{rec: rec, component: component}
}

// Feed processes one line. When the line's timestamp closes a previously open
// entry, that entry is returned finalized with ok=true; otherwise ok is false.
func (s *Segmenter) Feed(line string) (entry model.Entry, ok bool) {
	line = strings.TrimRight(line, "\r")
	if line == "" {
		return model.Entry{}, false
	}

	m, found := s.rec.Recognize(line)
	if !found {
		switch s.state {
		case accumulatingEntry:
			s.lines = append(s.lines, line)
		case noCurrentEntry:
			// Lines before the first timestamp have no entry to join.
			s.orphans++
		}
		return model.Entry{}, false
	}

	entry, ok = s.finalize()
	s.state = accumulatingEntry
	s.openedAt = m
	s.lines = append(s.lines[:0], m.Remainder)
	return entry, ok
}

// Flush finalizes and returns the entry still open at end of input, if any.
func (s *Segmenter) Flush() (model.Entry, bool) {
	entry, ok := s.finalize()
	s.state = noCurrentEntry
	return entry, ok
}

// Orphans reports how many lines were discarded because they appeared before
// the file's first recognized timestamp.
func (s *Segmenter) Orphans() int {
	return s.orphans
}

func (s *Segmenter) finalize() (model.Entry, bool) {
	if s.state != accumulatingEntry {
		return model.Entry{}, false
	}
	return model.NewEntry(s.openedAt.Time, s.component, strings.Join(s.lines, "\n")), true
}
