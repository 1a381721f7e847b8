// Package main is the entry point for the gRPC server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokedex-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "pokedex-api",
	Short: "Pokedex API gRPC Server",
	Long: `Pokedex API loads the PokeAPI creature catalog in batches and serves
filtering, evolution chains and viewer sessions over gRPC.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
