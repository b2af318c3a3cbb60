// Package errors is the structured error type shared by every layer of
// rpg-battle.
//
// An *Error carries a Code, a caller-facing message, an optional cause and
// free-form metadata. Codes map one-to-one onto gRPC status codes and onto
// HTTP statuses, so handlers never translate by hand.
//
// Creating and enriching errors:
//
//	err := errors.NotFoundf("battle %s not found", id).
//	    WithMeta("battle_id", id)
//
// Wrapping keeps the code of the innermost *Error:
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save battle report")
//	}
//
// Battle control flow uses two codes with a fixed meaning:
//   - OutOfRange: a draw from an empty roster. The battle engine treats it as
//     the end of one side, it never reaches a caller.
//   - InvalidArgument: an unknown battle mode, a malformed unit, a category
//     outside the universe.
//
// Config and input validation goes through ValidationBuilder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	errors.ValidateRange("units", len(input.Units), 1, 6, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// Handlers convert on the way out with ToGRPCError, or Code.HTTPStatus for
// the JSON API.
package errors
