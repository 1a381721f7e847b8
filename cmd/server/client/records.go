package client

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokedex-api/internal/handlers/catalog/v1alpha1"
)

var (
	searchTerm string
	types      []string
	animated   bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the catalog load status",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(v1alpha1.MethodGetLoadStatus, map[string]interface{}{})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List records matching a search term and up to two types",
	Example: `  pokedex-api client list --search saur
  pokedex-api client list --type grass --type poison --animated`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(v1alpha1.MethodListRecords, map[string]interface{}{
			"search_term": searchTerm,
			"types":       stringsToList(types),
			"animated":    animated,
		})
	},
}

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get a single record by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[0], err)
		}
		return call(v1alpha1.MethodGetRecord, map[string]interface{}{
			"id":       id,
			"animated": animated,
		})
	},
}

var chainRef string

var evolutionCmd = &cobra.Command{
	Use:   "evolution [record-id]",
	Short: "Show the evolution chain of a record, or of --chain-ref",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		req := map[string]interface{}{"animated": animated}
		if len(args) == 1 {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid record id %q: %w", args[0], err)
			}
			req["record_id"] = id
		}
		if chainRef != "" {
			req["chain_ref"] = chainRef
		}
		return call(v1alpha1.MethodGetEvolutionChain, req)
	},
}

func init() {
	listCmd.Flags().StringVar(&searchTerm, "search", "", "Case-insensitive name or id substring")
	listCmd.Flags().StringSliceVar(&types, "type", nil, "Type constraint, repeatable up to two times")
	listCmd.Flags().BoolVar(&animated, "animated", false, "Prefer animated sprites")

	getCmd.Flags().BoolVar(&animated, "animated", false, "Prefer animated sprites")

	evolutionCmd.Flags().StringVar(&chainRef, "chain-ref", "", "Evolution chain locator")
	evolutionCmd.Flags().BoolVar(&animated, "animated", false, "Prefer animated sprites")
}
