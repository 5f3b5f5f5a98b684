// Package session holds the per-run UI state: the displayed creature, the
// search text and the favorites list.
package session

import (
	"strings"

	"github.com/f3rmion/pokedex/internal/dex"
)

// Request is a lookup the caller should run. Generation orders requests;
// only the result for the newest one is accepted.
type Request struct {
	Generation uint64
	Locator    dex.Locator
}

// Result is the outcome of running a Request.
type Result struct {
	Generation uint64
	Creature   dex.Creature
	Err        error
}

// Session is owned by a single goroutine (the UI event loop) and is not
// safe for concurrent use.
type Session struct {
	current    *dex.Creature
	search     string
	favorites  dex.Favorites
	generation uint64
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// Search returns the current search text.
func (s *Session) Search() string {
	return s.search
}

// Current returns the displayed creature, if any.
func (s *Session) Current() (dex.Creature, bool) {
	if s.current == nil {
		return dex.Creature{}, false
	}
	return *s.current, true
}

// Favorites returns a copy of the favorites list.
func (s *Session) Favorites() dex.Favorites {
	out := make(dex.Favorites, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// Generation is the generation of the most recently issued request.
func (s *Session) Generation() uint64 {
	return s.generation
}

// SetSearch records new search text. It returns a request when the text
// changed and is not blank.
func (s *Session) SetSearch(text string) (Request, bool) {
	if text == s.search {
		return Request{}, false
	}
	s.search = text

	loc, err := dex.Resolve(text)
	if err != nil {
		return Request{}, false
	}
	return s.issue(loc), true
}

// Lookup issues a request for loc regardless of the search text; the
// random action uses it.
func (s *Session) Lookup(loc dex.Locator) Request {
	return s.issue(loc)
}

func (s *Session) issue(loc dex.Locator) Request {
	s.generation++
	return Request{Generation: s.generation, Locator: loc}
}

// IsLatest reports whether gen belongs to the newest issued request.
func (s *Session) IsLatest(gen uint64) bool {
	return gen == s.generation
}

// Apply accepts a successful result for the newest request and replaces the
// displayed creature. Failed or superseded results leave the session
// untouched. It reports whether the displayed creature changed.
func (s *Session) Apply(r Result) bool {
	if r.Err != nil || !s.IsLatest(r.Generation) {
		return false
	}
	c := r.Creature.Clone()
	s.current = &c
	return true
}

// Favorite appends a copy of the displayed creature. It is a no-op when
// nothing is displayed.
func (s *Session) Favorite() bool {
	if s.current == nil {
		return false
	}
	s.favorites = s.favorites.Add(*s.current)
	return true
}

// Blank reports whether the search text is empty after trimming.
func (s *Session) Blank() bool {
	return strings.TrimSpace(s.search) == ""
}
