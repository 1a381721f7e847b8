package pokeapi

// NamedResource is the {name, url} reference PokeAPI uses everywhere
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// APIResource is an unnamed {url} reference
type APIResource struct {
	URL string `json:"url"`
}

// IndexPage is one page of the pokemon list endpoint
type IndexPage struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

// Pokemon is the primary entity resource. Only the fields the catalog reads
// are decoded.
type Pokemon struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	Height    int              `json:"height"`
	Weight    int              `json:"weight"`
	Sprites   *Sprites         `json:"sprites"`
	Types     []PokemonType    `json:"types"`
	Stats     []PokemonStat    `json:"stats"`
	Abilities []PokemonAbility `json:"abilities"`
	Species   *NamedResource   `json:"species"`
}

// PokemonType is one slot of a pokemon's types
type PokemonType struct {
	Slot int            `json:"slot"`
	Type *NamedResource `json:"type"`
}

// PokemonStat is one base stat
type PokemonStat struct {
	BaseStat int            `json:"base_stat"`
	Effort   int            `json:"effort"`
	Stat     *NamedResource `json:"stat"`
}

// PokemonAbility is one ability slot
type PokemonAbility struct {
	IsHidden bool           `json:"is_hidden"`
	Slot     int            `json:"slot"`
	Ability  *NamedResource `json:"ability"`
}

// Sprites holds the sprite tree. Other is keyed by source ("official-artwork",
// "home", ...); Versions by generation then game ("generation-v" ->
// "black-white").
type Sprites struct {
	FrontDefault *string                                `json:"front_default"`
	Other        map[string]*SpriteSet                  `json:"other"`
	Versions     map[string]map[string]*VersionSprites `json:"versions"`
}

// SpriteSet is a group of sprite URLs; any of them may be null
type SpriteSet struct {
	FrontDefault *string `json:"front_default"`
	FrontShiny   *string `json:"front_shiny"`
}

// VersionSprites is the sprite group of one game, optionally with animations
type VersionSprites struct {
	FrontDefault *string    `json:"front_default"`
	Animated     *SpriteSet `json:"animated"`
}

// Species is the species resource
type Species struct {
	ID                int            `json:"id"`
	Name              string         `json:"name"`
	FlavorTextEntries []FlavorText   `json:"flavor_text_entries"`
	EvolutionChain    *APIResource   `json:"evolution_chain"`
	EvolvesFrom       *NamedResource `json:"evolves_from_species"`
}

// FlavorText is one localized description
type FlavorText struct {
	FlavorText string         `json:"flavor_text"`
	Language   *NamedResource `json:"language"`
	Version    *NamedResource `json:"version"`
}

// EvolutionChain is the evolution-chain resource
type EvolutionChain struct {
	ID    int        `json:"id"`
	Chain *ChainLink `json:"chain"`
}

// ChainLink is one node of the chain tree
type ChainLink struct {
	IsBaby           bool              `json:"is_baby"`
	Species          *NamedResource    `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []ChainLink       `json:"evolves_to"`
}

// EvolutionDetail describes what evolves the parent link into this one.
// Absent requirements decode as nil, false or "".
type EvolutionDetail struct {
	Item                  *NamedResource `json:"item"`
	Trigger               *NamedResource `json:"trigger"`
	Gender                *int           `json:"gender"`
	HeldItem              *NamedResource `json:"held_item"`
	KnownMove             *NamedResource `json:"known_move"`
	KnownMoveType         *NamedResource `json:"known_move_type"`
	Location              *NamedResource `json:"location"`
	MinLevel              *int           `json:"min_level"`
	MinHappiness          *int           `json:"min_happiness"`
	MinBeauty             *int           `json:"min_beauty"`
	MinAffection          *int           `json:"min_affection"`
	NeedsOverworldRain    bool           `json:"needs_overworld_rain"`
	PartySpecies          *NamedResource `json:"party_species"`
	PartyType             *NamedResource `json:"party_type"`
	RelativePhysicalStats *int           `json:"relative_physical_stats"`
	TimeOfDay             string         `json:"time_of_day"`
	TradeSpecies          *NamedResource `json:"trade_species"`
	TurnUpsideDown        bool           `json:"turn_upside_down"`

	// Happiness is not part of the published schema; older mirrors send it
	// as a bool or a number
	Happiness interface{} `json:"happiness,omitempty"`
}
