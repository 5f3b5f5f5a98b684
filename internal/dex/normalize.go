package dex

import (
	"github.com/f3rmion/pokedex/internal/pokeapi"
)

// Normalize folds a pokemon record, its encounter list and its evolution
// chain into a Creature. encounters may be nil.
func Normalize(p *pokeapi.Pokemon, encounters []pokeapi.LocationAreaEncounter, chain *pokeapi.EvolutionChain) Creature {
	c := Creature{
		ID:           p.ID,
		Name:         p.Name,
		FrontSprite:  p.Sprites.FrontDefault,
		ShinySprite:  p.Sprites.FrontShiny,
		Types:        make([]string, 0, len(p.Types)),
		Abilities:    make([]string, 0, len(p.Abilities)),
		Moves:        FirstMoves(p.Moves),
		LocationArea: LocationArea(encounters),
	}

	for _, t := range p.Types {
		c.Types = append(c.Types, t.Type.Name)
	}
	for _, a := range p.Abilities {
		c.Abilities = append(c.Abilities, a.Ability.Name)
	}

	if chain != nil {
		c.EvolutionPath = EvolutionPath(chain.Chain)
	} else {
		c.EvolutionPath = []string{}
	}

	return c
}

// LocationArea names the first encounter's area, or LocationUnknown when
// the list is empty or the first entry has no area.
func LocationArea(encounters []pokeapi.LocationAreaEncounter) string {
	if len(encounters) == 0 {
		return LocationUnknown
	}
	area := encounters[0].LocationArea
	if area == nil || area.Name == "" {
		return LocationUnknown
	}
	return area.Name
}

// EvolutionPath walks the chain along the first listed branch at every
// stage. A chain that does not evolve yields an empty path.
func EvolutionPath(root pokeapi.ChainLink) []string {
	if len(root.EvolvesTo) == 0 {
		return []string{}
	}

	path := []string{root.Species.Name}
	for link := root.EvolvesTo; len(link) > 0; link = link[0].EvolvesTo {
		path = append(path, link[0].Species.Name)
	}
	return path
}

// FirstMoves returns up to MaxMoves move names in source order.
func FirstMoves(moves []pokeapi.MoveSlot) []string {
	n := min(len(moves), MaxMoves)
	names := make([]string, 0, n)
	for _, m := range moves[:n] {
		names = append(names, m.Move.Name)
	}
	return names
}
