package client

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokedex-api/internal/handlers/catalog/v1alpha1"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Viewer session commands",
}

var sessionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a viewer session",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(v1alpha1.MethodCreateSession, map[string]interface{}{"animated": animated})
	},
}

var sessionGetCmd = &cobra.Command{
	Use:   "get [session-id]",
	Short: "Show a session and its visible records",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(v1alpha1.MethodGetSession, map[string]interface{}{"session_id": args[0]})
	},
}

var sessionPickCmd = &cobra.Command{
	Use:   "pick [session-id] [type]",
	Short: "Click a type in the session's type picker",
	Long: `Click a type in the session's type picker. "all" clears the selection,
a selected type is deselected, and a third type is refused with a warning.`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(v1alpha1.MethodPickType, map[string]interface{}{
			"session_id": args[0],
			"type":       args[1],
		})
	},
}

var sessionSearchCmd = &cobra.Command{
	Use:   "search [session-id] [term]",
	Short: "Set the session's search term; omit the term to clear it",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(_ *cobra.Command, args []string) error {
		term := ""
		if len(args) == 2 {
			term = args[1]
		}
		return call(v1alpha1.MethodSetSearchTerm, map[string]interface{}{
			"session_id":  args[0],
			"search_term": term,
		})
	},
}

var sessionToggleCmd = &cobra.Command{
	Use:   "toggle [session-id]",
	Short: "Toggle animated sprites for a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(v1alpha1.MethodToggleAnimated, map[string]interface{}{"session_id": args[0]})
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(v1alpha1.MethodDeleteSession, map[string]interface{}{"session_id": args[0]})
	},
}

func init() {
	sessionCreateCmd.Flags().BoolVar(&animated, "animated", false, "Start with animated sprites")

	sessionCmd.AddCommand(sessionCreateCmd)
	sessionCmd.AddCommand(sessionGetCmd)
	sessionCmd.AddCommand(sessionPickCmd)
	sessionCmd.AddCommand(sessionSearchCmd)
	sessionCmd.AddCommand(sessionToggleCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
}
