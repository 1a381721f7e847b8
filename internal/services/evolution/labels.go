package evolution

import "strings"

// Labels holds the templates used to render trigger labels. Templates with a
// %s or %d verb receive the requirement's name or value.
type Labels struct {
	Level           string
	UseItem         string
	Trade           string
	Happiness       string
	Day             string
	Night           string
	LearnMove       string
	LearnMoveType   string
	MinHappiness    string
	MinBeauty       string
	MinAffection    string
	AttackGtDefense string
	DefenseGtAttack string
	AttackEqDefense string
	PartySpecies    string
	PartyType       string
	TradeWith       string
	OverworldRain   string
	TurnUpsideDown  string
}

// LabelsEN is the default English label table
var LabelsEN = Labels{
	Level:           "Level %d",
	UseItem:         "use %s",
	Trade:           "Trade",
	Happiness:       "Happiness",
	Day:             "Day",
	Night:           "Night",
	LearnMove:       "learn %s",
	LearnMoveType:   "learn %s-type move",
	MinHappiness:    "Happiness %d",
	MinBeauty:       "Beauty %d",
	MinAffection:    "Affection %d",
	AttackGtDefense: "Attack > Defense",
	DefenseGtAttack: "Defense > Attack",
	AttackEqDefense: "Attack = Defense",
	PartySpecies:    "Party %s",
	PartyType:       "Party %s-type",
	TradeWith:       "Trade with %s",
	OverworldRain:   "Rainy weather",
	TurnUpsideDown:  "Turn upside down",
}

// LabelsTR is the Turkish label table
var LabelsTR = Labels{
	Level:           "Seviye %d",
	UseItem:         "%s kullan",
	Trade:           "Takas et",
	Happiness:       "Mutluluk",
	Day:             "Gündüz",
	Night:           "Gece",
	LearnMove:       "%s öğren",
	LearnMoveType:   "%s türü hareket öğren",
	MinHappiness:    "Mutluluk %d",
	MinBeauty:       "Güzellik %d",
	MinAffection:    "Sevgi %d",
	AttackGtDefense: "Saldırı > Savunma",
	DefenseGtAttack: "Savunma > Saldırı",
	AttackEqDefense: "Saldırı = Savunma",
	PartySpecies:    "Ekip %s",
	PartyType:       "Ekip %s türü",
	TradeWith:       "%s ile takas",
	OverworldRain:   "Yağmurlu hava",
	TurnUpsideDown:  "Ters çevir",
}

// LabelsFor returns the table for a language code, English when unknown
func LabelsFor(language string) Labels {
	switch strings.ToLower(language) {
	case "tr":
		return LabelsTR
	default:
		return LabelsEN
	}
}
