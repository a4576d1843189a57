// Package errors provides structured errors for dna-planner.
//
// Every error carries a Code, a user-facing message, an optional cause and
// metadata. Wrapping keeps the code and metadata of the innermost *Error, so a
// roster lookup failure deep inside the engine still reports NOT_FOUND with
// the creature name attached when it reaches the CLI.
//
// # Basic Usage
//
//	err := errors.NotFoundf("history for %s not found", name)
//	err := errors.InvalidArgument("level cannot be negative").WithMeta("level", lvl)
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save roster")
//	}
//
// # Domain Errors
//
// The DNA engine and its collaborators raise four kinds of error. They are
// ordinary coded errors tagged with a "reason" metadata entry:
//
//	errors.MissingCreature("Velociraptor")  // NOT_FOUND
//	errors.InvalidRarity("X")               // INVALID_ARGUMENT
//	errors.CyclicAncestry(path)             // FAILED_PRECONDITION
//	errors.ReusedEngineState()              // FAILED_PRECONDITION
//
// and are checked with IsMissingCreature, IsInvalidRarity, IsCyclicAncestry
// and IsReusedEngineState, which see through any amount of wrapping.
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	if cfg.Repository == nil {
//	    vb.RequiredField("Repository")
//	}
//	return vb.Build()
//
// # Exit Codes
//
// Code.ExitCode maps each code to the exit status used by cmd/planner.
package errors
