// Package evolution resolves evolution chains into depth-ordered stages with
// human-readable trigger labels
package evolution

import (
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

const triggerTrade = "trade"

// ParseChain decodes a raw chain payload and flattens it into stages. Stage i
// holds every species at depth i, siblings in payload order.
func ParseChain(raw []byte, labels Labels) ([]pokedex.EvolutionStage, error) {
	var chain pokeapi.EvolutionChain
	if err := json.Unmarshal(raw, &chain); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to decode evolution chain")
	}

	return Flatten(chain.Chain, labels), nil
}

// Flatten walks the chain tree depth-first from the root
func Flatten(root *pokeapi.ChainLink, labels Labels) []pokedex.EvolutionStage {
	if root == nil {
		return []pokedex.EvolutionStage{}
	}

	var stages []pokedex.EvolutionStage
	var walk func(link *pokeapi.ChainLink, depth int)
	walk = func(link *pokeapi.ChainLink, depth int) {
		if len(stages) <= depth {
			stages = append(stages, pokedex.EvolutionStage{})
		}

		name := ""
		if link.Species != nil {
			name = link.Species.Name
		}
		stages[depth] = append(stages[depth], pokedex.StageEntry{
			SpeciesName:  name,
			TriggerLabel: linkLabel(link, labels),
		})

		for i := range link.EvolvesTo {
			walk(&link.EvolvesTo[i], depth+1)
		}
	}
	walk(root, 0)

	return stages
}

// linkLabel labels a link by its first evolution detail only
func linkLabel(link *pokeapi.ChainLink, labels Labels) string {
	if len(link.EvolutionDetails) == 0 {
		return ""
	}
	return TriggerLabel(&link.EvolutionDetails[0], labels)
}

// TriggerLabel renders the first matching requirement of an evolution
// detail. Rules are tested in a fixed priority order; a detail with no
// recognised requirement yields "".
func TriggerLabel(d *pokeapi.EvolutionDetail, labels Labels) string {
	if d == nil {
		return ""
	}

	switch {
	case nonZero(d.MinLevel):
		return fmt.Sprintf(labels.Level, *d.MinLevel)
	case named(d.Item):
		return fmt.Sprintf(labels.UseItem, d.Item.Name)
	case d.Trigger != nil && d.Trigger.Name == triggerTrade:
		return labels.Trade
	case truthy(d.Happiness):
		return labels.Happiness
	case d.TimeOfDay != "":
		if d.TimeOfDay == "day" {
			return labels.Day
		}
		return labels.Night
	case named(d.KnownMove):
		return fmt.Sprintf(labels.LearnMove, d.KnownMove.Name)
	case named(d.KnownMoveType):
		return fmt.Sprintf(labels.LearnMoveType, d.KnownMoveType.Name)
	case nonZero(d.MinHappiness):
		return fmt.Sprintf(labels.MinHappiness, *d.MinHappiness)
	case nonZero(d.MinBeauty):
		return fmt.Sprintf(labels.MinBeauty, *d.MinBeauty)
	case nonZero(d.MinAffection):
		return fmt.Sprintf(labels.MinAffection, *d.MinAffection)
	case d.RelativePhysicalStats != nil:
		switch {
		case *d.RelativePhysicalStats > 0:
			return labels.AttackGtDefense
		case *d.RelativePhysicalStats < 0:
			return labels.DefenseGtAttack
		default:
			return labels.AttackEqDefense
		}
	case named(d.PartySpecies):
		return fmt.Sprintf(labels.PartySpecies, d.PartySpecies.Name)
	case named(d.PartyType):
		return fmt.Sprintf(labels.PartyType, d.PartyType.Name)
	case named(d.TradeSpecies):
		return fmt.Sprintf(labels.TradeWith, d.TradeSpecies.Name)
	case d.NeedsOverworldRain:
		return labels.OverworldRain
	case d.TurnUpsideDown:
		return labels.TurnUpsideDown
	}

	return ""
}

func nonZero(v *int) bool {
	return v != nil && *v != 0
}

func named(r *pokeapi.NamedResource) bool {
	return r != nil && r.Name != ""
}

// truthy interprets the loosely typed happiness flag
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
