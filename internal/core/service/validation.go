package service

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/lidmar/site-api/internal/core/domain"
)

// validate runs a domain Validate method and folds rule violations into
// ErrValidation. Internal validator failures are returned unchanged.
func validate(v validation.Validatable) error {
	err := v.Validate()
	if err == nil {
		return nil
	}
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
}
