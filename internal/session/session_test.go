package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/f3rmion/pokedex/internal/dex"
)

func creature(id int, name string) dex.Creature {
	return dex.Creature{
		ID:            id,
		Name:          name,
		Moves:         []string{"tackle"},
		LocationArea:  dex.LocationUnknown,
		EvolutionPath: []string{},
	}
}

func TestNewSessionIsEmpty(t *testing.T) {
	s := New()
	_, ok := s.Current()
	assert.False(t, ok)
	assert.Empty(t, s.Favorites())
	assert.Equal(t, "", s.Search())
	assert.True(t, s.Blank())
}

func TestSetSearch(t *testing.T) {
	s := New()

	req, ok := s.SetSearch("Pikachu")
	require.True(t, ok)
	assert.Equal(t, dex.Locator{Key: "pikachu"}, req.Locator)
	assert.Equal(t, uint64(1), req.Generation)
	assert.Equal(t, "Pikachu", s.Search())

	_, ok = s.SetSearch("Pikachu")
	assert.False(t, ok, "unchanged text issues nothing")

	req, ok = s.SetSearch("25")
	require.True(t, ok)
	assert.Equal(t, dex.Locator{Key: "25", Numeric: true}, req.Locator)
	assert.Equal(t, uint64(2), req.Generation)
}

func TestSetSearchBlank(t *testing.T) {
	s := New()
	_, ok := s.SetSearch("   ")
	assert.False(t, ok)
	assert.Equal(t, "   ", s.Search())
	assert.True(t, s.Blank())
	assert.Zero(t, s.Generation())
}

func TestApplyReplacesCurrent(t *testing.T) {
	s := New()
	req, _ := s.SetSearch("pikachu")

	assert.True(t, s.Apply(Result{Generation: req.Generation, Creature: creature(25, "pikachu")}))
	got, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "pikachu", got.Name)

	req = s.Lookup(dex.LocatorForID(132))
	assert.True(t, s.Apply(Result{Generation: req.Generation, Creature: creature(132, "ditto")}))
	got, _ = s.Current()
	assert.Equal(t, "ditto", got.Name)
}

func TestApplyFailureLeavesState(t *testing.T) {
	s := New()
	req, _ := s.SetSearch("pikachu")
	s.Apply(Result{Generation: req.Generation, Creature: creature(25, "pikachu")})

	req = s.Lookup(dex.LocatorForID(9999))
	assert.False(t, s.Apply(Result{Generation: req.Generation, Err: errors.New("404")}))

	got, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "pikachu", got.Name)
}

func TestApplyDiscardsStale(t *testing.T) {
	s := New()
	slow, _ := s.SetSearch("pika")
	fast, _ := s.SetSearch("pikachu")

	assert.True(t, s.Apply(Result{Generation: fast.Generation, Creature: creature(25, "pikachu")}))
	assert.False(t, s.Apply(Result{Generation: slow.Generation, Creature: creature(0, "pika")}))

	got, _ := s.Current()
	assert.Equal(t, "pikachu", got.Name)
	assert.False(t, s.IsLatest(slow.Generation))
	assert.True(t, s.IsLatest(fast.Generation))
}

func TestApplyStoresCopy(t *testing.T) {
	s := New()
	req := s.Lookup(dex.LocatorForID(25))
	c := creature(25, "pikachu")
	s.Apply(Result{Generation: req.Generation, Creature: c})

	c.Moves[0] = "changed"
	got, _ := s.Current()
	assert.Equal(t, "tackle", got.Moves[0])
}

func TestFavoriteWithoutCurrentIsNoop(t *testing.T) {
	s := New()
	assert.False(t, s.Favorite())
	assert.Empty(t, s.Favorites())
}

func TestFavoriteAppendsOne(t *testing.T) {
	s := New()
	req := s.Lookup(dex.LocatorForID(25))
	s.Apply(Result{Generation: req.Generation, Creature: creature(25, "pikachu")})

	require.True(t, s.Favorite())
	require.True(t, s.Favorite())

	favs := s.Favorites()
	require.Len(t, favs, 2)
	assert.Equal(t, "pikachu", favs[0].Name)
	assert.Equal(t, "pikachu", favs[1].Name)

	favs[0].Name = "mutated"
	assert.Equal(t, "pikachu", s.Favorites()[0].Name)
}

// Property-based tests

func TestPropertyFavoriteGrowsByOne(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New()
		ops := rapid.SliceOfN(rapid.IntRange(0, 2), 1, 50).Draw(t, "ops")

		for i, op := range ops {
			before := len(s.Favorites())
			_, loaded := s.Current()

			switch op {
			case 0:
				req := s.Lookup(dex.LocatorForID(i + 1))
				s.Apply(Result{Generation: req.Generation, Creature: creature(i+1, "c")})
			case 1:
				changed := s.Favorite()
				after := len(s.Favorites())
				if loaded && (!changed || after != before+1) {
					t.Fatalf("favorite with record loaded: %d -> %d", before, after)
				}
				if !loaded && (changed || after != before) {
					t.Fatalf("favorite without record changed list: %d -> %d", before, after)
				}
			case 2:
				req := s.Lookup(dex.LocatorForID(i + 1))
				s.Apply(Result{Generation: req.Generation, Err: errors.New("boom")})
			}
		}
	})
}

func TestPropertyOnlyNewestGenerationApplies(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New()
		n := rapid.IntRange(1, 10).Draw(t, "requests")
		reqs := make([]Request, n)
		for i := range reqs {
			reqs[i] = s.Lookup(dex.LocatorForID(i + 1))
		}

		order := rapid.Permutation(reqs).Draw(t, "completion order")
		for _, r := range order {
			applied := s.Apply(Result{Generation: r.Generation, Creature: creature(int(r.Generation), "c")})
			if applied != (r.Generation == reqs[n-1].Generation) {
				t.Fatalf("generation %d applied=%v, newest is %d", r.Generation, applied, reqs[n-1].Generation)
			}
		}

		got, ok := s.Current()
		if !ok || got.ID != int(reqs[n-1].Generation) {
			t.Fatalf("current = %+v, want newest request", got)
		}
	})
}
