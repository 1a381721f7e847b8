package pokeapi

import (
	"strings"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
)

const (
	// DefaultLanguage is the preferred flavor text language
	DefaultLanguage = "tr"
	// FallbackLanguage is used when the preferred language has no entry
	FallbackLanguage = "en"

	// from this id on, black-white has no animated sprite
	legacyAnimatedIDLimit = 650

	spriteOfficialArtwork = "official-artwork"
)

type versionPath struct {
	generation string
	game       string
}

var legacyAnimatedPath = versionPath{"generation-v", "black-white"}

// checked in order for ids >= legacyAnimatedIDLimit
var modernAnimatedPaths = []versionPath{
	{"generation-viii", "sword-shield"},
	{"generation-vii", "ultra-sun-ultra-moon"},
	{"generation-vi", "x-y"},
}

// ConvertToRecord joins a pokemon and its species into a catalog record.
// Missing nested data never fails the conversion. species may be nil.
func ConvertToRecord(pokemon *Pokemon, species *Species, language string) *pokedex.CatalogRecord {
	if pokemon == nil {
		return nil
	}

	record := &pokedex.CatalogRecord{
		ID:            pokemon.ID,
		Name:          pokemon.Name,
		StaticImage:   staticImage(pokemon.Sprites),
		AnimatedImage: animatedImage(pokemon.ID, pokemon.Sprites),
		Types:         make([]string, 0, len(pokemon.Types)),
		Height:        pokemon.Height,
		Weight:        pokemon.Weight,
		Stats:         make([]pokedex.Stat, 0, len(pokemon.Stats)),
		Abilities:     make([]string, 0, len(pokemon.Abilities)),
	}

	for _, t := range pokemon.Types {
		if t.Type != nil {
			record.Types = append(record.Types, t.Type.Name)
		}
	}

	for _, stat := range pokemon.Stats {
		if stat.Stat == nil {
			continue
		}
		record.Stats = append(record.Stats, pokedex.Stat{
			Name:  stat.Stat.Name,
			Value: stat.BaseStat,
		})
	}

	for _, ability := range pokemon.Abilities {
		if ability.Ability != nil {
			record.Abilities = append(record.Abilities, ability.Ability.Name)
		}
	}

	if species != nil {
		record.Description = description(species.FlavorTextEntries, language)
		if species.EvolutionChain != nil && species.EvolutionChain.URL != "" {
			chainURL := species.EvolutionChain.URL
			record.EvolutionChain = &chainURL
		}
	}

	return record
}

// staticImage prefers the official artwork over the default front sprite
func staticImage(sprites *Sprites) string {
	if sprites == nil {
		return ""
	}
	if artwork := sprites.Other[spriteOfficialArtwork]; artwork != nil && present(artwork.FrontDefault) {
		return *artwork.FrontDefault
	}
	if present(sprites.FrontDefault) {
		return *sprites.FrontDefault
	}
	return ""
}

func animatedImage(id int, sprites *Sprites) *string {
	if sprites == nil {
		return nil
	}

	if id < legacyAnimatedIDLimit {
		return versionAnimated(sprites, legacyAnimatedPath)
	}

	for _, path := range modernAnimatedPaths {
		if sprite := versionAnimated(sprites, path); sprite != nil {
			return sprite
		}
	}
	return nil
}

func versionAnimated(sprites *Sprites, path versionPath) *string {
	game := sprites.Versions[path.generation][path.game]
	if game == nil || game.Animated == nil || !present(game.Animated.FrontDefault) {
		return nil
	}
	sprite := *game.Animated.FrontDefault
	return &sprite
}

// description returns the first entry in language, else the first in
// FallbackLanguage, else ""
func description(entries []FlavorText, language string) string {
	if language == "" {
		language = DefaultLanguage
	}

	text := firstFlavorText(entries, language)
	if text == "" && language != FallbackLanguage {
		text = firstFlavorText(entries, FallbackLanguage)
	}
	return strings.ReplaceAll(text, "\f", " ")
}

func firstFlavorText(entries []FlavorText, language string) string {
	for _, entry := range entries {
		if entry.Language != nil && entry.Language.Name == language {
			return entry.FlavorText
		}
	}
	return ""
}

func present(s *string) bool {
	return s != nil && *s != ""
}
