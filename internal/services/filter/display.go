package filter

import (
	"strings"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
)

var displayNames = map[string]string{
	pokedex.TypeNormal:   "Normal",
	pokedex.TypeFire:     "Ateş",
	pokedex.TypeWater:    "Su",
	pokedex.TypeElectric: "Elektrik",
	pokedex.TypeGrass:    "Çimen",
	pokedex.TypeIce:      "Buz",
	pokedex.TypeFighting: "Dövüş",
	pokedex.TypePoison:   "Zehir",
	pokedex.TypeGround:   "Yer",
	pokedex.TypeFlying:   "Uçan",
	pokedex.TypePsychic:  "Psikik",
	pokedex.TypeBug:      "Böcek",
	pokedex.TypeRock:     "Kaya",
	pokedex.TypeGhost:    "Hayalet",
	pokedex.TypeDragon:   "Ejderha",
	pokedex.TypeDark:     "Karanlık",
	pokedex.TypeSteel:    "Çelik",
	pokedex.TypeFairy:    "Peri",
}

// DisplayName returns the localized label of a type, or the type itself
func DisplayName(t string) string {
	if name, ok := displayNames[t]; ok {
		return name
	}
	return t
}

// Summary describes the type selection of a filter state
type Summary struct {
	// Label joins the selected type names with " + "; empty for no constraint
	Label string
	// DualType is set when two types are combined
	DualType bool
}

// Describe summarizes the type selection of state
func Describe(state pokedex.FilterState) Summary {
	types := state.ConcreteTypes()
	if len(types) == 0 {
		return Summary{}
	}

	names := make([]string, len(types))
	for i, t := range types {
		names[i] = DisplayName(t)
	}
	return Summary{
		Label:    strings.Join(names, " + "),
		DualType: len(types) == pokedex.MaxSelectedTypes,
	}
}
