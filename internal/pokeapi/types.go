package pokeapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NamedResource is the {name, url} pair PokeAPI uses for every reference.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Resource is a bare {url} reference.
type Resource struct {
	URL string `json:"url"`
}

type Sprites struct {
	FrontDefault string `json:"front_default"`
	FrontShiny   string `json:"front_shiny"`
}

type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type AbilitySlot struct {
	Slot     int           `json:"slot"`
	IsHidden bool          `json:"is_hidden"`
	Ability  NamedResource `json:"ability"`
}

type MoveSlot struct {
	Move NamedResource `json:"move"`
}

// SpeciesRef is the species link embedded in a pokemon record. Some
// payloads inline the evolution chain link, the live API only carries the
// species URL.
type SpeciesRef struct {
	Name           string    `json:"name"`
	URL            string    `json:"url"`
	EvolutionChain *Resource `json:"evolution_chain,omitempty"`
}

// Pokemon is the subset of GET /pokemon/{idOrName} this tool reads.
type Pokemon struct {
	ID                     int           `json:"id"`
	Name                   string        `json:"name"`
	Sprites                Sprites       `json:"sprites"`
	Types                  []TypeSlot    `json:"types"`
	Abilities              []AbilitySlot `json:"abilities"`
	Moves                  []MoveSlot    `json:"moves"`
	LocationAreaEncounters Encounters    `json:"location_area_encounters"`
	Species                SpeciesRef    `json:"species"`
}

// PokemonSpecies is the subset of GET /pokemon-species/{id} this tool reads.
type PokemonSpecies struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	EvolutionChain *Resource `json:"evolution_chain"`
}

// LocationAreaEncounter is one entry of a pokemon's encounter list.
// LocationArea is nil when the payload carries a null area.
type LocationAreaEncounter struct {
	LocationArea *NamedResource `json:"location_area"`
}

// Encounters holds the location_area_encounters field, which is either an
// inline list or a URL pointing at the list.
type Encounters struct {
	URL     string
	Entries []LocationAreaEncounter
	Inline  bool
}

// UnmarshalJSON accepts null, a URL string or an array of encounters.
func (e *Encounters) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*e = Encounters{}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		return json.Unmarshal(data, &e.URL)
	case '[':
		e.Inline = true
		return json.Unmarshal(data, &e.Entries)
	default:
		return fmt.Errorf("location_area_encounters: unexpected JSON %.20q", data)
	}
}

// MarshalJSON writes the field back in whichever shape it was read.
func (e Encounters) MarshalJSON() ([]byte, error) {
	switch {
	case e.Inline:
		if e.Entries == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(e.Entries)
	case e.URL != "":
		return json.Marshal(e.URL)
	default:
		return []byte("null"), nil
	}
}

// ChainLink is one stage of an evolution chain.
type ChainLink struct {
	Species   NamedResource `json:"species"`
	EvolvesTo []ChainLink   `json:"evolves_to"`
}

// EvolutionChain is the body of GET /evolution-chain/{id}.
type EvolutionChain struct {
	ID    int       `json:"id"`
	Chain ChainLink `json:"chain"`
}
