// Package filter applies search and type constraints to the record collection
package filter

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
)

// Apply returns the records matching state, in their original order.
//
// A non-empty search term matches case-insensitively against the name or
// the decimal id. One selected type requires membership, two require both.
func Apply(records []*pokedex.CatalogRecord, state pokedex.FilterState) []*pokedex.CatalogRecord {
	term := strings.ToLower(state.SearchTerm)
	types := state.ConcreteTypes()

	out := make([]*pokedex.CatalogRecord, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		if term != "" && !matchesSearch(record, term) {
			continue
		}
		if !hasAllTypes(record, types) {
			continue
		}
		out = append(out, record)
	}
	return out
}

func matchesSearch(record *pokedex.CatalogRecord, term string) bool {
	return strings.Contains(strings.ToLower(record.Name), term) ||
		strings.Contains(strconv.Itoa(record.ID), term)
}

func hasAllTypes(record *pokedex.CatalogRecord, types []string) bool {
	for _, t := range types {
		if !record.HasType(t) {
			return false
		}
	}
	return true
}
