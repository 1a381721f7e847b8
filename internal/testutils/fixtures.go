package testutils

import (
	"fmt"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
)

// Chain locators used by the fixtures below
const (
	BulbasaurChainRef = "https://pokeapi.co/api/v2/evolution-chain/1/"
	EeveeChainRef     = "https://pokeapi.co/api/v2/evolution-chain/67/"
	TaurosChainRef    = "https://pokeapi.co/api/v2/evolution-chain/59/"
)

// BulbasaurChainJSON is a linear three-stage chain with level triggers
const BulbasaurChainJSON = `{
  "id": 1,
  "chain": {
    "is_baby": false,
    "species": {"name": "bulbasaur", "url": "https://pokeapi.co/api/v2/pokemon-species/1/"},
    "evolution_details": [],
    "evolves_to": [{
      "is_baby": false,
      "species": {"name": "ivysaur", "url": "https://pokeapi.co/api/v2/pokemon-species/2/"},
      "evolution_details": [{"min_level": 16, "trigger": {"name": "level-up", "url": ""}}],
      "evolves_to": [{
        "is_baby": false,
        "species": {"name": "venusaur", "url": "https://pokeapi.co/api/v2/pokemon-species/3/"},
        "evolution_details": [{"min_level": 32, "trigger": {"name": "level-up", "url": ""}}],
        "evolves_to": []
      }]
    }]
  }
}`

// EeveeChainJSON is a branching chain: one root, three children
const EeveeChainJSON = `{
  "id": 67,
  "chain": {
    "species": {"name": "eevee", "url": "https://pokeapi.co/api/v2/pokemon-species/133/"},
    "evolution_details": [],
    "evolves_to": [
      {
        "species": {"name": "vaporeon", "url": "https://pokeapi.co/api/v2/pokemon-species/134/"},
        "evolution_details": [{"item": {"name": "water-stone", "url": ""}, "trigger": {"name": "use-item", "url": ""}}],
        "evolves_to": []
      },
      {
        "species": {"name": "espeon", "url": "https://pokeapi.co/api/v2/pokemon-species/196/"},
        "evolution_details": [{"min_happiness": 160, "time_of_day": "day", "trigger": {"name": "level-up", "url": ""}}],
        "evolves_to": []
      },
      {
        "species": {"name": "umbreon", "url": "https://pokeapi.co/api/v2/pokemon-species/197/"},
        "evolution_details": [{"min_happiness": 160, "time_of_day": "night", "trigger": {"name": "level-up", "url": ""}}],
        "evolves_to": []
      }
    ]
  }
}`

// TaurosChainJSON is a chain without evolutions
const TaurosChainJSON = `{
  "id": 59,
  "chain": {
    "species": {"name": "tauros", "url": "https://pokeapi.co/api/v2/pokemon-species/128/"},
    "evolution_details": [],
    "evolves_to": []
  }
}`

// CreateTestRecord builds a minimal record with a static image and the
// given types
func CreateTestRecord(id int, name string, types ...string) *pokedex.CatalogRecord {
	return &pokedex.CatalogRecord{
		ID:          id,
		Name:        name,
		StaticImage: fmt.Sprintf("https://img.example/%d.png", id),
		Types:       types,
		Height:      7,
		Weight:      69,
		Stats: []pokedex.Stat{
			{Name: "hp", Value: 45},
			{Name: "attack", Value: 49},
		},
		Abilities: []string{"overgrow"},
	}
}

// CreateTestRecordWithChain is CreateTestRecord with an evolution chain ref
// and an animated image
func CreateTestRecordWithChain(id int, name, chainRef string, types ...string) *pokedex.CatalogRecord {
	record := CreateTestRecord(id, name, types...)
	animated := fmt.Sprintf("https://img.example/animated/%d.gif", id)
	record.AnimatedImage = &animated
	record.EvolutionChain = &chainRef
	return record
}

// CreateStarterRecords returns the first three records of the national index
func CreateStarterRecords() []*pokedex.CatalogRecord {
	return []*pokedex.CatalogRecord{
		CreateTestRecordWithChain(1, "bulbasaur", BulbasaurChainRef, pokedex.TypeGrass, pokedex.TypePoison),
		CreateTestRecordWithChain(2, "ivysaur", BulbasaurChainRef, pokedex.TypeGrass, pokedex.TypePoison),
		CreateTestRecordWithChain(3, "venusaur", BulbasaurChainRef, pokedex.TypeGrass, pokedex.TypePoison),
	}
}
