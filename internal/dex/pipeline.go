package dex

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/f3rmion/pokedex/internal/pokeapi"
)

// ErrNoEvolutionChain is returned when a record links to no evolution chain.
var ErrNoEvolutionChain = errors.New("record has no evolution chain link")

// Source is the subset of the PokeAPI client the pipeline needs.
type Source interface {
	Pokemon(ctx context.Context, key string) (*pokeapi.Pokemon, error)
	Species(ctx context.Context, url string) (*pokeapi.PokemonSpecies, error)
	EvolutionChain(ctx context.Context, url string) (*pokeapi.EvolutionChain, error)
	Encounters(ctx context.Context, url string) ([]pokeapi.LocationAreaEncounter, error)
}

// Pipeline fetches a pokemon and its evolution chain and normalizes them.
type Pipeline struct {
	src         Source
	maxRandomID int
	intN        func(n int) int
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithMaxRandomID bounds RandomLocator to [1, n].
func WithMaxRandomID(n int) PipelineOption {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxRandomID = n
		}
	}
}

// WithRand replaces the random source; intN must return a value in [0, n).
func WithRand(intN func(n int) int) PipelineOption {
	return func(p *Pipeline) {
		p.intN = intN
	}
}

// NewPipeline creates a pipeline over src.
func NewPipeline(src Source, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		src:         src,
		maxRandomID: DefaultMaxRandomID,
		intN:        rand.IntN,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MaxRandomID is the upper bound of random lookups.
func (p *Pipeline) MaxRandomID() int {
	return p.maxRandomID
}

// RandomLocator picks a locator for an id in [1, MaxRandomID].
func (p *Pipeline) RandomLocator() Locator {
	return LocatorForID(p.intN(p.maxRandomID) + 1)
}

// Lookup runs the whole fetch-and-normalize sequence for one locator. Any
// network or decode failure aborts it; absent optional data is defaulted.
func (p *Pipeline) Lookup(ctx context.Context, loc Locator) (Creature, error) {
	record, err := p.src.Pokemon(ctx, loc.Key)
	if err != nil {
		return Creature{}, err
	}

	encounters, err := p.encounters(ctx, record)
	if err != nil {
		return Creature{}, err
	}

	chainURL, err := p.evolutionChainURL(ctx, record)
	if err != nil {
		return Creature{}, err
	}

	chain, err := p.src.EvolutionChain(ctx, chainURL)
	if err != nil {
		return Creature{}, err
	}

	return Normalize(record, encounters, chain), nil
}

// encounters returns the inline encounter list, or follows the URL the
// live API serves in its place.
func (p *Pipeline) encounters(ctx context.Context, record *pokeapi.Pokemon) ([]pokeapi.LocationAreaEncounter, error) {
	field := record.LocationAreaEncounters
	if field.Inline || field.URL == "" {
		return field.Entries, nil
	}
	return p.src.Encounters(ctx, field.URL)
}

// evolutionChainURL reads species.evolution_chain.url from the record, or
// resolves it through the species resource when only the species link is
// embedded.
func (p *Pipeline) evolutionChainURL(ctx context.Context, record *pokeapi.Pokemon) (string, error) {
	if ec := record.Species.EvolutionChain; ec != nil && ec.URL != "" {
		return ec.URL, nil
	}
	if record.Species.URL == "" {
		return "", fmt.Errorf("%s: %w", record.Name, ErrNoEvolutionChain)
	}

	species, err := p.src.Species(ctx, record.Species.URL)
	if err != nil {
		return "", err
	}
	if species.EvolutionChain == nil || species.EvolutionChain.URL == "" {
		return "", fmt.Errorf("%s: %w", record.Name, ErrNoEvolutionChain)
	}
	return species.EvolutionChain.URL, nil
}
