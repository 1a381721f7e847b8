// Package pokedex holds the catalog entities shared by the loader, the
// filter engine and the evolution resolver
package pokedex

// CatalogRecord is one fully resolved creature. Records are built once by
// the normalizer and treated as read-only afterwards.
type CatalogRecord struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	StaticImage   string   `json:"static_image"`
	AnimatedImage *string  `json:"animated_image,omitempty"`
	Types         []string `json:"types"`
	Height        int      `json:"height"` // decimetres
	Weight        int      `json:"weight"` // hectograms
	Stats         []Stat   `json:"stats"`
	Abilities     []string `json:"abilities"`
	Description   string   `json:"description"`

	// EvolutionChain is the locator of the family's evolution chain resource
	EvolutionChain *string `json:"evolution_chain,omitempty"`
}

// Stat is a named base stat, 0-255
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// HasType reports whether the record carries the given type
func (r *CatalogRecord) HasType(t string) bool {
	for _, own := range r.Types {
		if own == t {
			return true
		}
	}
	return false
}

// DisplayImage returns the animated sprite when animated mode is on and the
// record has one, the static image otherwise
func (r *CatalogRecord) DisplayImage(animated bool) string {
	if animated && r.AnimatedImage != nil && *r.AnimatedImage != "" {
		return *r.AnimatedImage
	}
	return r.StaticImage
}
