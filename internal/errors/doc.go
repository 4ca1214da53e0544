// Package errors provides the structured error type shared by every layer of
// the narrator: providers, the turn pipeline, progression and persistence.
//
// Errors carry a Code that drives behaviour rather than just display:
//   - Unavailable / DeadlineExceeded: transient provider failures, retried by
//     the completion retry policy (see Code.Transient).
//   - Aborted: a model response that could not be turned into a turn payload;
//     the turn is abandoned without touching game state.
//   - FailedPrecondition: a gameplay rule blocked the action (no skill
//     points, level too low, a turn already in flight).
//   - NotFound / InvalidArgument: unknown ids, slots, stat names, save slots.
//   - DataLoss: a save document that cannot be decoded.
//
// Creating and wrapping:
//
//	err := errors.NotFoundf("save slot %q not found", slot)
//	return errors.Wrap(err, "failed to load game")
//	return errors.WrapWithCode(err, errors.CodeUnavailable, "completion request failed")
//
// Metadata travels with the error and is logged by callers:
//
//	errors.FailedPrecondition("not enough skill points").WithMeta("skill", name)
//
// Validation uses the builder, which returns nil when nothing was recorded:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("universe", input.Universe, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
