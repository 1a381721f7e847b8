//go:build integration

package client

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/pokedex-api/internal/handlers/catalog/v1alpha1"
)

func newIntegrationClient(t *testing.T) v1alpha1.CatalogServiceClient {
	t.Helper()

	addr := os.Getenv("GRPC_SERVER_ADDRESS")
	if addr == "" {
		addr = "localhost:50051"
	}
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := conn.Close(); err != nil {
			t.Logf("Failed to close connection: %v", err)
		}
	})

	return v1alpha1.NewCatalogServiceClient(conn)
}

func mustStruct(t *testing.T, m map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

// waitReady polls the load status until the first batch is visible
func waitReady(ctx context.Context, t *testing.T, client v1alpha1.CatalogServiceClient) {
	t.Helper()
	for {
		resp, err := client.Invoke(ctx, v1alpha1.MethodGetLoadStatus, nil)
		require.NoError(t, err)
		switch resp.AsMap()["state"] {
		case "ready", "complete":
			return
		case "failed":
			t.Fatalf("catalog load failed: %v", resp.AsMap()["last_error"])
		}
		select {
		case <-ctx.Done():
			t.Fatal("timed out waiting for the catalog")
		case <-time.After(500 * time.Millisecond):
		}
	}
}

func TestCatalogIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := newIntegrationClient(t)
	waitReady(ctx, t, client)

	list, err := client.Invoke(ctx, v1alpha1.MethodListRecords, mustStruct(t, map[string]interface{}{
		"search_term": "saur",
		"types":       []interface{}{"grass", "poison"},
	}))
	require.NoError(t, err)
	records := list.AsMap()["records"].([]interface{})
	require.NotEmpty(t, records)
	assert.Equal(t, "bulbasaur", records[0].(map[string]interface{})["name"])

	chain, err := client.Invoke(ctx, v1alpha1.MethodGetEvolutionChain, mustStruct(t, map[string]interface{}{
		"record_id": 1,
	}))
	require.NoError(t, err)
	assert.Len(t, chain.AsMap()["stages"], 3)
}

func TestViewerSessionIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := newIntegrationClient(t)
	waitReady(ctx, t, client)

	created, err := client.Invoke(ctx, v1alpha1.MethodCreateSession, nil)
	require.NoError(t, err)
	sessionID := created.AsMap()["session"].(map[string]interface{})["id"].(string)

	for _, pick := range []string{"fire", "flying"} {
		_, err := client.Invoke(ctx, v1alpha1.MethodPickType, mustStruct(t, map[string]interface{}{
			"session_id": sessionID,
			"type":       pick,
		}))
		require.NoError(t, err)
	}

	third, err := client.Invoke(ctx, v1alpha1.MethodPickType, mustStruct(t, map[string]interface{}{
		"session_id": sessionID,
		"type":       "water",
	}))
	require.NoError(t, err)
	assert.NotEmpty(t, third.AsMap()["capacity_warning"])

	deleted, err := client.Invoke(ctx, v1alpha1.MethodDeleteSession, mustStruct(t, map[string]interface{}{
		"session_id": sessionID,
	}))
	require.NoError(t, err)
	assert.Equal(t, true, deleted.AsMap()["deleted"])
}
