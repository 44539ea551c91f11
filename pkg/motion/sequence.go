package motion

import (
	"sort"
	"sync"
)

// Entry is one aggregated frame of a run.
type Entry struct {
	Index int
	Grid  *Grid
}

// Sequence is the ordered output of a run. Appends are safe from several
// goroutines and entries are kept ordered by frame index.
type Sequence struct {
	Width, Height int

	mu      sync.Mutex
	entries []Entry
}

func NewSequence(width, height int) *Sequence {
	return &Sequence{Width: width, Height: height}
}

// Append takes ownership of grid.
func (s *Sequence) Append(index int, grid *Grid) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.entries)
	if n == 0 || s.entries[n-1].Index < index {
		s.entries = append(s.entries, Entry{Index: index, Grid: grid})
		return
	}
	i := sort.Search(n, func(i int) bool { return s.entries[i].Index >= index })
	s.entries = append(s.entries, Entry{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = Entry{Index: index, Grid: grid}
}

func (s *Sequence) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Entries returns a snapshot of the entries in frame order.
func (s *Sequence) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}
