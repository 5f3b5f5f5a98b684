// Package dex turns PokeAPI records into the view model the UI displays.
package dex

import (
	"fmt"
	"strings"
)

const (
	// LocationUnknown stands in for a creature with no encounter data.
	LocationUnknown = "N/A"

	// MaxMoves is how many moves a Creature keeps.
	MaxMoves = 5

	// DefaultMaxRandomID is the highest national dex number a random lookup picks.
	DefaultMaxRandomID = 649
)

// Creature is the normalized, display-ready projection of one pokemon.
// It is built once per lookup and never modified afterwards.
type Creature struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	FrontSprite   string   `json:"front_sprite"`
	ShinySprite   string   `json:"shiny_sprite"`
	Types         []string `json:"types"`
	Abilities     []string `json:"abilities"`
	Moves         []string `json:"moves"`
	LocationArea  string   `json:"location_area"`
	EvolutionPath []string `json:"evolution_path"`
}

// Clone returns a deep copy.
func (c Creature) Clone() Creature {
	c.Types = cloneStrings(c.Types)
	c.Abilities = cloneStrings(c.Abilities)
	c.Moves = cloneStrings(c.Moves)
	c.EvolutionPath = cloneStrings(c.EvolutionPath)
	return c
}

// Evolution joins the evolution path with arrows, or returns "N/A" when the
// creature does not evolve.
func (c Creature) Evolution() string {
	if len(c.EvolutionPath) == 0 {
		return "N/A"
	}
	return strings.Join(c.EvolutionPath, " -> ")
}

// Summary is the plain-text block copied to the clipboard and printed by
// the lookup command.
func (c Creature) Summary() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("#%d %s\n", c.ID, c.Name))
	sb.WriteString(fmt.Sprintf("Location:       %s\n", c.LocationArea))
	sb.WriteString(fmt.Sprintf("Type:           %s\n", strings.Join(c.Types, ", ")))
	sb.WriteString(fmt.Sprintf("Abilities:      %s\n", strings.Join(c.Abilities, ", ")))
	sb.WriteString(fmt.Sprintf("Moves:          %s\n", strings.Join(c.Moves, ", ")))
	sb.WriteString(fmt.Sprintf("Evolution Path: %s\n", c.Evolution()))
	return sb.String()
}

// Favorites is the session's append-only list of favorited creatures.
// Duplicates are allowed.
type Favorites []Creature

// Add appends a copy of c.
func (f Favorites) Add(c Creature) Favorites {
	return append(f, c.Clone())
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
