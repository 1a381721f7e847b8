package pokedex

// TypeAll is the type picker sentinel meaning "no type constraint"
const TypeAll = "all"

// MaxSelectedTypes is the number of concrete types a filter may combine
const MaxSelectedTypes = 2

// Known creature types
const (
	TypeNormal   = "normal"
	TypeFire     = "fire"
	TypeWater    = "water"
	TypeElectric = "electric"
	TypeGrass    = "grass"
	TypeIce      = "ice"
	TypeFighting = "fighting"
	TypePoison   = "poison"
	TypeGround   = "ground"
	TypeFlying   = "flying"
	TypePsychic  = "psychic"
	TypeBug      = "bug"
	TypeRock     = "rock"
	TypeGhost    = "ghost"
	TypeDragon   = "dragon"
	TypeDark     = "dark"
	TypeSteel    = "steel"
	TypeFairy    = "fairy"
)

// KnownTypes lists every concrete type in picker order
var KnownTypes = []string{
	TypeNormal, TypeFire, TypeWater, TypeElectric, TypeGrass, TypeIce,
	TypeFighting, TypePoison, TypeGround, TypeFlying, TypePsychic, TypeBug,
	TypeRock, TypeGhost, TypeDragon, TypeDark, TypeSteel, TypeFairy,
}

// IsKnownType reports whether t is one of KnownTypes
func IsKnownType(t string) bool {
	for _, known := range KnownTypes {
		if known == t {
			return true
		}
	}
	return false
}
