package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearth-budget/backend/internal/events"
	"github.com/hearth-budget/backend/internal/httputil"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/rs/zerolog/log"
)

// RegisterSnapshotRoutes registers the routes for monthly snapshots with
// the RouterGroup that is passed.
func (co Controller) RegisterSnapshotRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:householdId/:month", co.OptionsSnapshot)
	r.GET("/:householdId/:month", co.GetSnapshot)
	r.PUT("/:householdId/:month", co.SetSnapshot)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Snapshots
// @Success		204
// @Param			householdId	path	string	true	"ID of the household"
// @Param			month		path	string	true	"The month in YYYY-MM format"
// @Router			/v1/snapshots/{householdId}/{month} [options]
func (co Controller) OptionsSnapshot(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

// @Summary		Get snapshot
// @Description	Returns the balances recorded for a month. If no balances have been recorded yet, the balances are empty.
// @Tags			Snapshots
// @Produce		json
// @Success		200			{object}	SnapshotResponse
// @Failure		400			{object}	SnapshotResponse
// @Failure		404			{object}	SnapshotResponse
// @Failure		500			{object}	SnapshotResponse
// @Param			householdId	path		string	true	"ID of the household"
// @Param			month		path		string	true	"The month in YYYY-MM format"
// @Router			/v1/snapshots/{householdId}/{month} [get]
func (co Controller) GetSnapshot(c *gin.Context) {
	var uri URIHouseholdMonth
	if err := c.ShouldBindUri(&uri); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SnapshotResponse{
			Error: &s,
		})
		return
	}

	err := models.DB.First(&models.Household{}, "id = ?", uri.HouseholdID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SnapshotResponse{
			Error: &s,
		})
		return
	}

	snapshot, err := models.Snapshot(models.DB, uri.HouseholdID.UUID, uri.Month)

	// A month without recorded balances has empty balances
	if errors.Is(err, models.ErrResourceNotFound) {
		snapshot = models.MonthlySnapshot{
			HouseholdID: uri.HouseholdID.UUID,
			Month:       uri.Month,
			Balances:    models.Balances{},
		}
	} else if err != nil {
		s := err.Error()
		c.JSON(status(err), SnapshotResponse{
			Error: &s,
		})
		return
	}

	data := newSnapshot(c, snapshot)
	c.JSON(http.StatusOK, SnapshotResponse{Data: &data})
}

// @Summary		Record snapshot
// @Description	Records the balances for a month. An existing snapshot for the month is replaced.
// @Tags			Snapshots
// @Produce		json
// @Success		200			{object}	SnapshotResponse
// @Failure		400			{object}	SnapshotResponse
// @Failure		404			{object}	SnapshotResponse
// @Failure		500			{object}	SnapshotResponse
// @Param			householdId	path		string				true	"ID of the household"
// @Param			month		path		string				true	"The month in YYYY-MM format"
// @Param			snapshot	body		SnapshotEditable	true	"Balances"
// @Router			/v1/snapshots/{householdId}/{month} [put]
func (co Controller) SetSnapshot(c *gin.Context) {
	var uri URIHouseholdMonth
	if err := c.ShouldBindUri(&uri); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SnapshotResponse{
			Error: &s,
		})
		return
	}

	var data SnapshotEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SnapshotResponse{
			Error: &s,
		})
		return
	}

	snapshot, err := models.SaveSnapshot(models.DB, uri.HouseholdID.UUID, uri.Month, data.Balances)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SnapshotResponse{
			Error: &s,
		})
		return
	}

	event := events.New(events.SnapshotSaved, snapshot.HouseholdID, snapshot.Month, snapshot.Balances)
	if err := co.publisher().Publish(c.Request.Context(), event); err != nil {
		log.Error().Str("household", snapshot.HouseholdID.String()).Str("month", snapshot.Month.String()).Err(err).Msg("Could not publish snapshot event")
	}

	apiResource := newSnapshot(c, snapshot)
	c.JSON(http.StatusOK, SnapshotResponse{Data: &apiResource})
}
