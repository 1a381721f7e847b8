package pokedex

// StageEntry is one species at a given depth of an evolution chain, with the
// label of the condition that evolves its parent into it. The root's label
// is empty.
type StageEntry struct {
	SpeciesName  string `json:"species_name"`
	TriggerLabel string `json:"trigger_label"`
}

// EvolutionStage holds every species sharing one depth of a chain, in
// payload sibling order
type EvolutionStage []StageEntry
