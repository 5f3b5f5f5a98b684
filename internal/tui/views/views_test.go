package views

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/f3rmion/pokedex/internal/dex"
	"github.com/f3rmion/pokedex/internal/tui/blockart"
)

func pikachu() dex.Creature {
	return dex.Creature{
		ID:            25,
		Name:          "pikachu",
		FrontSprite:   "http://sprites/25.png",
		ShinySprite:   "http://sprites/shiny/25.png",
		Types:         []string{"electric"},
		Abilities:     []string{"static", "lightning-rod"},
		Moves:         []string{"mega-punch", "pay-day"},
		LocationArea:  "viridian-forest-area",
		EvolutionPath: []string{"pichu", "pikachu", "raichu"},
	}
}

// searchMsgs runs cmd and returns the search notifications it carries.
// Cursor blink timers are not waited for.
func searchMsgs(cmd tea.Cmd) []SearchChangedMsg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(100 * time.Millisecond):
		return nil
	}

	var out []SearchChangedMsg
	switch msg := msg.(type) {
	case SearchChangedMsg:
		out = append(out, msg)
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, searchMsgs(c)...)
		}
	}
	return out
}

func TestDexTypingEmitsSearchChanged(t *testing.T) {
	m := NewDexModel(nil, true)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("eevee")})
	assert.Equal(t, "eevee", m.Value())
	assert.Equal(t, []SearchChangedMsg{{Text: "eevee"}}, searchMsgs(cmd))

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, []SearchChangedMsg{{Text: "eeve"}}, searchMsgs(cmd))

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Empty(t, searchMsgs(cmd), "cursor movement does not search")
}

func TestDexEmptyView(t *testing.T) {
	m := NewDexModel(nil, true)
	m.SetSize(100, 40)
	assert.Contains(t, m.View(), "ctrl+r")
}

func TestDexDetailView(t *testing.T) {
	m := NewDexModel(nil, true)
	m.SetSize(100, 40)
	m.SetCreature(pikachu())

	view := m.View()
	for _, want := range []string{
		"pikachu", "#25", "viridian-forest-area", "electric",
		"static, lightning-rod", "mega-punch, pay-day", "pichu -> pikachu -> raichu",
		"front", "shiny",
	} {
		assert.Contains(t, view, want)
	}
}

func TestDexNoEvolutionShowsNA(t *testing.T) {
	m := NewDexModel(nil, false)
	m.SetSize(100, 40)
	c := pikachu()
	c.EvolutionPath = nil
	m.SetCreature(c)

	view := m.View()
	assert.Contains(t, view, "N/A")
	assert.NotContains(t, view, "shiny", "sprites disabled")
}

func TestDexBannerName(t *testing.T) {
	banner, err := blockart.NewBanner("")
	require.NoError(t, err)

	m := NewDexModel(banner, false)
	m.SetSize(100, 40)
	m.SetCreature(pikachu())

	view := m.View()
	assert.Contains(t, view, "#25")
	assert.True(t, strings.ContainsAny(view, "█▀▄"))
}

func TestDexSpriteArt(t *testing.T) {
	m := NewDexModel(nil, true)
	m.SetSize(100, 40)

	m.SetSpriteArt("http://sprites/25.png", "FRONT")
	m.SetCreature(pikachu())
	assert.NotContains(t, m.View(), "FRONT", "art arriving before the creature is dropped")

	m.SetSpriteArt("http://sprites/25.png", "FRONT")
	m.SetSpriteArt("http://sprites/other.png", "OTHER")
	view := m.View()
	assert.Contains(t, view, "FRONT")
	assert.NotContains(t, view, "OTHER")

	m.SetCreature(pikachu())
	assert.NotContains(t, m.View(), "FRONT", "new creature clears art")
}

func TestDexSpinner(t *testing.T) {
	m := NewDexModel(nil, true)

	_, cmd := m.Update(spinner.TickMsg{})
	assert.Nil(t, cmd, "ticks are dropped while idle")

	assert.NotNil(t, m.StartLoading())
	assert.True(t, m.Loading())
	assert.Nil(t, m.StartLoading(), "already spinning")

	m.StopLoading()
	assert.False(t, m.Loading())
}

func TestWordWrap(t *testing.T) {
	assert.Equal(t, "one two\nthree", wordWrap("one two three", 8))
	assert.Equal(t, "", wordWrap("", 10))
	assert.Equal(t, "unbreakable", wordWrap("unbreakable", 4))
}

func TestFavoritesEmpty(t *testing.T) {
	m := NewFavoritesModel(true)
	view := m.View()
	assert.Contains(t, view, "Favorites (0)")
	assert.Contains(t, view, "ctrl+f")
}

func TestFavoritesGrid(t *testing.T) {
	m := NewFavoritesModel(true)
	m.SetSize(3*(TileWidth+2), 100)

	var favs dex.Favorites
	for i := range 5 {
		c := pikachu()
		c.Name = fmt.Sprintf("mon-%d", i)
		favs = favs.Add(c)
	}
	m.SetFavorites(favs)
	m.SetSpriteArt("http://sprites/25.png", "ART")

	assert.Equal(t, 3, m.Columns())
	assert.Equal(t, []string{"mon-0", "mon-1", "mon-2", "mon-3", "mon-4"}, m.Names())

	view := m.View()
	assert.Contains(t, view, "Favorites (5)")
	assert.Contains(t, view, "mon-4")
	assert.Equal(t, 5, strings.Count(view, "ART"))
	assert.NotContains(t, view, "more")
}

func TestFavoritesTruncatesNames(t *testing.T) {
	m := NewFavoritesModel(false)
	m.SetSize(80, 20)
	c := pikachu()
	c.Name = "crabominable-and-friends"
	m.SetFavorites(dex.Favorites{}.Add(c))

	view := m.View()
	assert.Contains(t, view, "…")
	assert.NotContains(t, view, "crabominable-and-friends")
}

func TestFavoritesOverflow(t *testing.T) {
	m := NewFavoritesModel(false)
	m.SetSize(TileWidth+2, 5)

	var favs dex.Favorites
	for range 4 {
		favs = favs.Add(pikachu())
	}
	m.SetFavorites(favs)

	assert.Contains(t, m.View(), "+3 more")
}

// Property-based tests

func TestPropertyFavoritesGridFitsWidth(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.IntRange(TileWidth+2, 200).Draw(t, "width")
		n := rapid.IntRange(1, 20).Draw(t, "favorites")

		m := NewFavoritesModel(false)
		m.SetSize(width, 0)
		var favs dex.Favorites
		for range n {
			favs = favs.Add(pikachu())
		}
		m.SetFavorites(favs)

		if w := lipgloss.Width(m.View()); w > width {
			t.Fatalf("grid width %d exceeds %d", w, width)
		}
	})
}
