// Package client provides test commands for the Pokedex API gRPC service
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/pokedex-api/internal/handlers/catalog/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the Pokedex API",
	Long:  `Client commands allow you to test the Pokedex API by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(statusCmd)
	ClientCmd.AddCommand(listCmd)
	ClientCmd.AddCommand(getCmd)
	ClientCmd.AddCommand(evolutionCmd)
	ClientCmd.AddCommand(sessionCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// call sends one request and prints the response as indented JSON
func call(method string, fields map[string]interface{}) error {
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	conn, err := createConnection()
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := v1alpha1.NewCatalogServiceClient(conn).Invoke(ctx, method, req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	out, err := render(resp)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func render(resp *structpb.Struct) (string, error) {
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to render response: %w", err)
	}
	return string(data), nil
}

func stringsToList(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
