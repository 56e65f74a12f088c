// Package handler contains the Echo HTTP handlers. Handlers bind and
// validate request payloads, call the service or repository layer and map
// domain errors onto HTTP status codes.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guilhermereis1k/oscar-cinema/internal/domain"
	"github.com/guilhermereis1k/oscar-cinema/internal/repository"
)

// fail maps an error from the lower layers onto a JSON error response.
// Validation errors are 400, including a seat that does not belong to the
// session's room: the request itself is malformed, not in conflict with
// other state. Missing records are 404 and every state or uniqueness
// collision is 409.
func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrSeatNotInRoom):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrScheduleConflict),
		errors.Is(err, domain.ErrSeatOccupied),
		errors.Is(err, domain.ErrSessionFinished),
		errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, repository.ErrReferenced):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		c.Logger().Errorf("internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

// pathID parses the :id route parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	var id uint64
	if err := echo.PathParamsBinder(c).Uint64(name, &id).BindError(); err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
