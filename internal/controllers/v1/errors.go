package v1

import (
	"errors"
	"net/http"

	"github.com/hearth-budget/backend/internal/models"
	"github.com/hearth-budget/backend/internal/rates"
	"github.com/hearth-budget/backend/internal/wizard"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrAccountInUse), errors.Is(err, wizard.ErrWrongState), errors.Is(err, wizard.ErrNotLoaded):
		return http.StatusConflict
	case errors.Is(err, rates.ErrRateFetch):
		return http.StatusBadGateway
	case errors.Is(err, wizard.ErrTimeout):
		return http.StatusGatewayTimeout
	}

	return http.StatusBadRequest
}

var (
	errHouseholdParameter = errors.New("the household query parameter must be set")
	errNameParameter      = errors.New("the name query parameter must be set")
)
