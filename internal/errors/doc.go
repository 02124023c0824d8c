// Package errors provides structured errors for the forms subsystem.
//
// Errors carry a Code, a user-facing message, an optional cause and
// free-form metadata. Repositories return NotFound and InvalidArgument,
// gate rejections return FailedPrecondition with a "reason" entry, and the
// admin HTTP surface maps codes with Code.HTTPStatus.
//
// # Basic Usage
//
//	err := errors.NotFound("player record not found").
//	    WithMeta("entity_id", entityID)
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to flush player record")
//	}
//
// # Error Checking
//
//	if errors.IsNotFound(err) {
//	    // start from a fresh record
//	}
//
//	reason := errors.Reason(err)
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("entity_id", cfg.EntityID, vb)
//	errors.ValidateRange("max_intensity_level", cfg.MaxIntensityLevel, 1, 100, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
