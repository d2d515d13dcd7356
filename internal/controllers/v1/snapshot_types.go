package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/hearth-budget/backend/internal/models"
)

// SnapshotEditable contains the balances that can be recorded for a month.
type SnapshotEditable struct {
	Balances models.Balances `json:"balances"` // Balances of the bank accounts, by bank account ID
}

type SnapshotLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/snapshots/550dc009-cea6-4c12-b2a5-03446eb7b7cf/2024-03"` // The snapshot itself
	Month string `json:"month" example:"https://example.com/api/v1/months/550dc009-cea6-4c12-b2a5-03446eb7b7cf/2024-03"`   // Summary of the month
}

// Snapshot is the API v1 representation of a MonthlySnapshot.
type Snapshot struct {
	models.MonthlySnapshot
	Links SnapshotLinks `json:"links"`
}

func newSnapshot(c *gin.Context, model models.MonthlySnapshot) Snapshot {
	url := c.GetString(string(models.DBContextURL))

	return Snapshot{
		MonthlySnapshot: model,
		Links: SnapshotLinks{
			Self:  fmt.Sprintf("%s/v1/snapshots/%s/%s", url, model.HouseholdID, model.Month),
			Month: fmt.Sprintf("%s/v1/months/%s/%s", url, model.HouseholdID, model.Month),
		},
	}
}

type SnapshotResponse struct {
	Data  *Snapshot `json:"data"`                                  // Data for the snapshot
	Error *string   `json:"error" example:"the month must be set"` // The error, if any occurred
}
