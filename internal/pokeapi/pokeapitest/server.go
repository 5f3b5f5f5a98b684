// Package pokeapitest serves a canned slice of PokeAPI for tests.
package pokeapitest

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Server is a fake PokeAPI. It knows pikachu (25), ditto (132) and
// eevee (133); everything else is a 404.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	hits   map[string]int
	blocks map[string]chan struct{}
}

// NewServer starts a fake PokeAPI. Callers must Close it.
func NewServer() *Server {
	s := &Server{
		hits:   make(map[string]int),
		blocks: make(map[string]chan struct{}),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handle)
	s.Server = httptest.NewServer(mux)
	return s
}

// Hits reports how many times a path was requested.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// Hold makes requests for path wait until the returned func is called.
func (s *Server) Hold(path string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.blocks[path] = ch
	s.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	block := s.blocks[r.URL.Path]
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-r.Context().Done():
			return
		}
	}

	if strings.HasPrefix(r.URL.Path, "/sprites/") {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(SpritePNG())
		return
	}

	body, ok := s.routes()[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprint(w, body)
}

func (s *Server) routes() map[string]string {
	base := s.URL
	pikachu := fmt.Sprintf(pikachuJSON, base)
	ditto := fmt.Sprintf(dittoJSON, base)
	eevee := fmt.Sprintf(eeveeJSON, base)
	return map[string]string{
		"/pokemon/25":            pikachu,
		"/pokemon/pikachu":       pikachu,
		"/pokemon/25/encounters": `[{"location_area":{"name":"viridian-forest-area","url":""}},{"location_area":{"name":"power-plant-area","url":""}}]`,
		"/pokemon-species/25":    fmt.Sprintf(`{"id":25,"name":"pikachu","evolution_chain":{"url":"%s/evolution-chain/10/"}}`, base),
		"/evolution-chain/10/":   pikachuChainJSON,
		"/pokemon/132":           ditto,
		"/pokemon/ditto":         ditto,
		"/evolution-chain/66/":   `{"id":66,"chain":{"species":{"name":"ditto","url":""},"evolves_to":[]}}`,
		"/pokemon/133":           eevee,
		"/pokemon/eevee":         eevee,
		"/evolution-chain/67/":   eeveeChainJSON,
		"/pokemon/999":           `{"id":999,"name":"broken","sprites":`,
		"/pokemon/998":           fmt.Sprintf(`{"id":998,"name":"orphan","species":{"name":"orphan","url":"%s/pokemon-species/998/"}}`, base),
		"/pokemon-species/998/":  `{"id":998,"name":"orphan","evolution_chain":null}`,
	}
}

// SpritePNG returns a 4x4 sprite: a red top half over a transparent bottom.
func SpritePNG() []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: 0xff, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// PikachuMoves is the move list served for pikachu, in order.
var PikachuMoves = []string{
	"mega-punch", "pay-day", "thunder-punch", "slam", "double-kick",
	"mega-kick", "headbutt", "body-slam",
}

const pikachuJSON = `{
  "id": 25,
  "name": "pikachu",
  "sprites": {"front_default": "%[1]s/sprites/25.png", "front_shiny": "%[1]s/sprites/shiny/25.png"},
  "types": [{"slot": 1, "type": {"name": "electric", "url": ""}}],
  "abilities": [
    {"slot": 1, "is_hidden": false, "ability": {"name": "static", "url": ""}},
    {"slot": 3, "is_hidden": true, "ability": {"name": "lightning-rod", "url": ""}}
  ],
  "moves": [
    {"move": {"name": "mega-punch", "url": ""}},
    {"move": {"name": "pay-day", "url": ""}},
    {"move": {"name": "thunder-punch", "url": ""}},
    {"move": {"name": "slam", "url": ""}},
    {"move": {"name": "double-kick", "url": ""}},
    {"move": {"name": "mega-kick", "url": ""}},
    {"move": {"name": "headbutt", "url": ""}},
    {"move": {"name": "body-slam", "url": ""}}
  ],
  "location_area_encounters": "%[1]s/pokemon/25/encounters",
  "species": {"name": "pikachu", "url": "%[1]s/pokemon-species/25"}
}`

const pikachuChainJSON = `{
  "id": 10,
  "chain": {
    "species": {"name": "pichu", "url": ""},
    "evolves_to": [{
      "species": {"name": "pikachu", "url": ""},
      "evolves_to": [{"species": {"name": "raichu", "url": ""}, "evolves_to": []}]
    }]
  }
}`

const dittoJSON = `{
  "id": 132,
  "name": "ditto",
  "sprites": {"front_default": "%[1]s/sprites/132.png", "front_shiny": null},
  "types": [{"slot": 1, "type": {"name": "normal", "url": ""}}],
  "abilities": [{"slot": 1, "ability": {"name": "limber", "url": ""}}],
  "moves": [{"move": {"name": "transform", "url": ""}}],
  "location_area_encounters": [],
  "species": {"name": "ditto", "url": "", "evolution_chain": {"url": "%[1]s/evolution-chain/66/"}}
}`

const eeveeJSON = `{
  "id": 133,
  "name": "eevee",
  "sprites": {"front_default": "%[1]s/sprites/133.png", "front_shiny": "%[1]s/sprites/shiny/133.png"},
  "types": [{"slot": 1, "type": {"name": "normal", "url": ""}}],
  "abilities": [
    {"slot": 1, "ability": {"name": "run-away", "url": ""}},
    {"slot": 2, "ability": {"name": "adaptability", "url": ""}}
  ],
  "moves": [
    {"move": {"name": "tackle", "url": ""}},
    {"move": {"name": "growl", "url": ""}}
  ],
  "location_area_encounters": [{"location_area": null}, {"location_area": {"name": "celadon-city-area", "url": ""}}],
  "species": {"name": "eevee", "url": "", "evolution_chain": {"url": "%[1]s/evolution-chain/67/"}}
}`

const eeveeChainJSON = `{
  "id": 67,
  "chain": {
    "species": {"name": "eevee", "url": ""},
    "evolves_to": [
      {"species": {"name": "vaporeon", "url": ""}, "evolves_to": []},
      {"species": {"name": "jolteon", "url": ""}, "evolves_to": []},
      {"species": {"name": "flareon", "url": ""}, "evolves_to": []}
    ]
  }
}`
