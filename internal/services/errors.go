package services

import (
	"errors"

	"github.com/joshua-takyi/salon/internal/httperr"
	"github.com/joshua-takyi/salon/internal/models"
)

const unavailableMessage = "Database is unavailable, please try again later"

// storeErr maps repository errors onto API error kinds.
func storeErr(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrNotFound):
		return httperr.NotFound(notFound)
	case errors.Is(err, models.ErrUnavailable):
		return httperr.Unavailable(unavailableMessage, err)
	}
	return httperr.Internal("Internal server error", err)
}

func validationErr(err error) error {
	return httperr.Validation(models.ValidationMessage(err))
}
