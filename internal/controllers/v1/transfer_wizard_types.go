package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/hearth-budget/backend/internal/types"
	"github.com/hearth-budget/backend/internal/wizard"
	"github.com/shopspring/decimal"
)

// TransferWizardOpen selects the household and month to open a transfer wizard for.
type TransferWizardOpen struct {
	HouseholdID uuid.UUID   `json:"householdId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // ID of the household
	Month       types.Month `json:"month" example:"2024-03"`                                    // Month to plan the transfer for
}

// TransferWizardBalances contains balances to enter.
type TransferWizardBalances struct {
	Balances models.Balances `json:"balances"` // Balances by bank account ID. Accounts not contained keep their balance.
}

// TransferWizardRate contains a manually entered exchange rate.
type TransferWizardRate struct {
	Rate decimal.Decimal `json:"rate" example:"7.95"` // Amount of the target currency one unit of the source currency buys
}

type TransferWizardLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/transfer-wizards/f2f9d3a9-3d1f-4c64-a19f-1bd5b2c6f4f0"`              // The transfer wizard itself
	Balances string `json:"balances" example:"https://example.com/api/v1/transfer-wizards/f2f9d3a9-3d1f-4c64-a19f-1bd5b2c6f4f0/balances"` // Endpoint to enter balances
	Confirm  string `json:"confirm" example:"https://example.com/api/v1/transfer-wizards/f2f9d3a9-3d1f-4c64-a19f-1bd5b2c6f4f0/confirm"`   // Endpoint to save the balances and compute the transfer
	Back     string `json:"back" example:"https://example.com/api/v1/transfer-wizards/f2f9d3a9-3d1f-4c64-a19f-1bd5b2c6f4f0/back"`         // Endpoint to return to entering balances
	Reload   string `json:"reload" example:"https://example.com/api/v1/transfer-wizards/f2f9d3a9-3d1f-4c64-a19f-1bd5b2c6f4f0/reload"`     // Endpoint to load all data again
	Rate     string `json:"rate" example:"https://example.com/api/v1/transfer-wizards/f2f9d3a9-3d1f-4c64-a19f-1bd5b2c6f4f0/rate"`         // Endpoint to override the exchange rate
	Snapshot string `json:"snapshot" example:"https://example.com/api/v1/snapshots/550dc009-cea6-4c12-b2a5-03446eb7b7cf/2024-03"`         // Balances recorded for the month
}

// TransferWizard is the API v1 representation of a transfer wizard.
type TransferWizard struct {
	wizard.View
	Links TransferWizardLinks `json:"links"`
}

func newTransferWizard(c *gin.Context, view wizard.View) TransferWizard {
	url := c.GetString(string(models.DBContextURL))
	self := fmt.Sprintf("%s/v1/transfer-wizards/%s", url, view.ID)

	return TransferWizard{
		View: view,
		Links: TransferWizardLinks{
			Self:     self,
			Balances: self + "/balances",
			Confirm:  self + "/confirm",
			Back:     self + "/back",
			Reload:   self + "/reload",
			Rate:     self + "/rate",
			Snapshot: fmt.Sprintf("%s/v1/snapshots/%s/%s", url, view.HouseholdID, view.Month),
		},
	}
}

type TransferWizardResponse struct {
	Data  *TransferWizard `json:"data"`                                                                                    // Current state of the transfer wizard
	Error *string         `json:"error" example:"this action is not possible in the current state of the transfer wizard"` // The error, if any occurred
}
