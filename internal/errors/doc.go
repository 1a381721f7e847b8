// Package errors provides the structured error type used across pokedex-api.
//
// Every error that crosses a package boundary carries a Code, a short
// user-facing message, an optional cause and optional metadata:
//
//	err := errors.NotFoundf("record %d not found", id).
//	    WithMeta("record_id", id)
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := client.GetPokemon(ctx, url); err != nil {
//	    return errors.Wrapf(err, "failed to resolve %s", url)
//	}
//
// # Catalog error taxonomy
//
// Remote failures while loading the dataset and while fetching an evolution
// chain are both CodeUnavailable. The chain case carries a "chain_ref" meta
// entry so callers can tell them apart with IsChainFetchFailure.
// Selecting a third type is CodeResourceExhausted. Absent fields in remote
// payloads are never errors.
//
// # gRPC
//
// Handlers return errors.ToGRPCError(err). Metadata travels as a
// google.protobuf.Struct status detail and is restored by FromGRPCError.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("base_url", cfg.BaseURL, vb)
//	errors.ValidateRange("batch_size", cfg.BatchSize, 1, 500, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
