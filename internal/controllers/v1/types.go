package v1

import (
	"time"

	"github.com/hearth-budget/backend/internal/types"
	hearth_uuid "github.com/hearth-budget/backend/internal/uuid"
)

type URIID struct {
	ID hearth_uuid.UUID `uri:"id" binding:"required"` // The ID of the resource
}

// URIHouseholdMonth identifies the month of a household.
type URIHouseholdMonth struct {
	HouseholdID hearth_uuid.UUID `uri:"householdId" binding:"required"` // ID of the household
	Month       types.Month      `uri:"month" example:"2024-03"`        // Year and month
}

type URIExchangeRate struct {
	Base string    `uri:"base" binding:"required" example:"SEK"`                           // Base currency
	Date time.Time `uri:"date" time_format:"2006-01-02" time_utc:"1" example:"2024-03-01"` // Day of the rates
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}
