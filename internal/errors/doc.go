// Package errors provides the structured error type shared by every layer of
// the xp-optimizer service.
//
// An Error carries a Code, a user-facing Message, an optional Cause and
// free-form Meta. Codes map onto gRPC and HTTP status codes so transports can
// convert without knowing where an error came from.
//
// The optimizer core raises two errors of its own:
//
//	errors.InvalidTargetValues(raw, reasons) // INVALID_ARGUMENT, recoverable
//	errors.CostConsistency(...)              // INTERNAL, fatal for the run
//
// Solver failures are wrapped with FAILED_PRECONDITION (infeasible) or
// ABORTED (no proof of optimality within the node cap).
//
// Wrapping keeps the original code and metadata:
//
//	if err := repo.Put(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to cache result")
//	}
//
// Across gRPC, metadata rides along as a google.protobuf.Struct detail:
//
//	return nil, errors.ToGRPCError(err)
//	...
//	err = errors.FromGRPCError(err)
//	meta := errors.GetMeta(err)
package errors
