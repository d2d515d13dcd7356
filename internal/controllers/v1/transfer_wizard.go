package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearth-budget/backend/internal/httputil"
	"github.com/hearth-budget/backend/internal/wizard"
)

// RegisterTransferWizardRoutes registers the routes for transfer wizards with
// the RouterGroup that is passed.
func (co Controller) RegisterTransferWizardRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsTransferWizardList)
		r.POST("", co.OpenTransferWizard)
	}

	// Transfer wizard with ID
	{
		r.OPTIONS("/:id", co.OptionsTransferWizardDetail)
		r.GET("/:id", co.GetTransferWizard)
		r.DELETE("/:id", co.CloseTransferWizard)
	}

	// Transitions
	{
		r.OPTIONS("/:id/balances", co.OptionsTransferWizardPut)
		r.PUT("/:id/balances", co.SetTransferWizardBalances)
		r.OPTIONS("/:id/confirm", co.OptionsTransferWizardPost)
		r.POST("/:id/confirm", co.ConfirmTransferWizard)
		r.OPTIONS("/:id/back", co.OptionsTransferWizardPost)
		r.POST("/:id/back", co.BackTransferWizard)
		r.OPTIONS("/:id/reload", co.OptionsTransferWizardPost)
		r.POST("/:id/reload", co.ReloadTransferWizard)
		r.OPTIONS("/:id/rate", co.OptionsTransferWizardPut)
		r.PUT("/:id/rate", co.OverrideTransferWizardRate)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transfer Wizards
// @Success		204
// @Router			/v1/transfer-wizards [options]
func (co Controller) OptionsTransferWizardList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transfer Wizards
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transfer-wizards/{id} [options]
func (co Controller) OptionsTransferWizardDetail(c *gin.Context) {
	if _, err := co.transferWizard(c); err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transfer Wizards
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transfer-wizards/{id}/confirm [options]
// @Router			/v1/transfer-wizards/{id}/back [options]
// @Router			/v1/transfer-wizards/{id}/reload [options]
func (co Controller) OptionsTransferWizardPost(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transfer Wizards
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transfer-wizards/{id}/balances [options]
// @Router			/v1/transfer-wizards/{id}/rate [options]
func (co Controller) OptionsTransferWizardPut(c *gin.Context) {
	httputil.OptionsPut(c)
}

// transferWizard returns the wizard identified by the URI.
func (co Controller) transferWizard(c *gin.Context) (*wizard.Wizard, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return nil, err
	}

	return co.Wizards.Get(uri.ID.UUID)
}

// respondTransferWizard writes the current state of the wizard. If err is
// not nil, the status is derived from it and the error is included.
func respondTransferWizard(c *gin.Context, w *wizard.Wizard, successStatus int, err error) {
	data := newTransferWizard(c, w.View())

	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferWizardResponse{
			Data:  &data,
			Error: &s,
		})
		return
	}

	c.JSON(successStatus, TransferWizardResponse{Data: &data})
}

// @Summary		Open transfer wizard
// @Description	Opens a transfer wizard for a household and month. Accounts, expenses, the recorded balances and the current exchange rate are loaded.
// @Tags			Transfer Wizards
// @Produce		json
// @Success		201		{object}	TransferWizardResponse
// @Failure		400		{object}	TransferWizardResponse
// @Failure		404		{object}	TransferWizardResponse
// @Failure		502		{object}	TransferWizardResponse
// @Failure		504		{object}	TransferWizardResponse
// @Param			wizard	body		TransferWizardOpen	true	"Household and month"
// @Router			/v1/transfer-wizards [post]
func (co Controller) OpenTransferWizard(c *gin.Context) {
	var data TransferWizardOpen
	err := httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferWizardResponse{
			Error: &s,
		})
		return
	}

	w, err := co.Wizards.Open(c.Request.Context(), data.HouseholdID, data.Month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferWizardResponse{
			Error: &s,
		})
		return
	}

	respondTransferWizard(c, w, http.StatusCreated, nil)
}

// @Summary		Get transfer wizard
// @Description	Returns the current state of a transfer wizard
// @Tags			Transfer Wizards
// @Produce		json
// @Success		200	{object}	TransferWizardResponse
// @Failure		400	{object}	TransferWizardResponse
// @Failure		404	{object}	TransferWizardResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transfer-wizards/{id} [get]
func (co Controller) GetTransferWizard(c *gin.Context) {
	w, err := co.transferWizard(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferWizardResponse{
			Error: &s,
		})
		return
	}

	respondTransferWizard(c, w, http.StatusOK, nil)
}

// @Summary		Close transfer wizard
// @Description	Closes a transfer wizard. Recorded balances are kept.
// @Tags			Transfer Wizards
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transfer-wizards/{id} [delete]
func (co Controller) CloseTransferWizard(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.Wizards.Close(uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Enter balances
// @Description	Sets the balances of bank accounts. Only possible while entering balances.
// @Tags			Transfer Wizards
// @Produce		json
// @Success		200			{object}	TransferWizardResponse
// @Failure		400			{object}	TransferWizardResponse
// @Failure		404			{object}	TransferWizardResponse
// @Failure		409			{object}	TransferWizardResponse
// @Param			id			path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			balances	body		TransferWizardBalances	true	"Balances"
// @Router			/v1/transfer-wizards/{id}/balances [put]
func (co Controller) SetTransferWizardBalances(c *gin.Context) {
	w, err := co.transferWizard(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferWizardResponse{
			Error: &s,
		})
		return
	}

	var data TransferWizardBalances
	err = httputil.BindData(c, &data)
	if err != nil {
		respondTransferWizard(c, w, http.StatusOK, err)
		return
	}

	respondTransferWizard(c, w, http.StatusOK, w.SetBalances(data.Balances))
}

// @Summary		Confirm balances
// @Description	Saves the balances as the snapshot of the month and computes the transfer
// @Tags			Transfer Wizards
// @Produce		json
// @Success		200	{object}	TransferWizardResponse
// @Failure		400	{object}	TransferWizardResponse
// @Failure		404	{object}	TransferWizardResponse
// @Failure		409	{object}	TransferWizardResponse
// @Failure		500	{object}	TransferWizardResponse
// @Failure		504	{object}	TransferWizardResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transfer-wizards/{id}/confirm [post]
func (co Controller) ConfirmTransferWizard(c *gin.Context) {
	w, err := co.transferWizard(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferWizardResponse{
			Error: &s,
		})
		return
	}

	_, err = w.Confirm(c.Request.Context())
	respondTransferWizard(c, w, http.StatusOK, err)
}

// @Summary		Back to entering balances
// @Description	Returns to entering balances. The entered balances are kept.
// @Tags			Transfer Wizards
// @Produce		json
// @Success		200	{object}	TransferWizardResponse
// @Failure		400	{object}	TransferWizardResponse
// @Failure		404	{object}	TransferWizardResponse
// @Failure		409	{object}	TransferWizardResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transfer-wizards/{id}/back [post]
func (co Controller) BackTransferWizard(c *gin.Context) {
	w, err := co.transferWizard(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferWizardResponse{
			Error: &s,
		})
		return
	}

	respondTransferWizard(c, w, http.StatusOK, w.Back())
}

// @Summary		Reload transfer wizard
// @Description	Loads accounts, expenses, recorded balances and the exchange rate again and returns to entering balances
// @Tags			Transfer Wizards
// @Produce		json
// @Success		200	{object}	TransferWizardResponse
// @Failure		400	{object}	TransferWizardResponse
// @Failure		404	{object}	TransferWizardResponse
// @Failure		502	{object}	TransferWizardResponse
// @Failure		504	{object}	TransferWizardResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transfer-wizards/{id}/reload [post]
func (co Controller) ReloadTransferWizard(c *gin.Context) {
	w, err := co.transferWizard(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferWizardResponse{
			Error: &s,
		})
		return
	}

	respondTransferWizard(c, w, http.StatusOK, w.Load(c.Request.Context()))
}

// @Summary		Override exchange rate
// @Description	Replaces the exchange rate and recomputes the transfer. Only possible while reviewing the transfer. Invalid rates keep the previous transfer.
// @Tags			Transfer Wizards
// @Produce		json
// @Success		200		{object}	TransferWizardResponse
// @Failure		400		{object}	TransferWizardResponse
// @Failure		404		{object}	TransferWizardResponse
// @Failure		409		{object}	TransferWizardResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			rate	body		TransferWizardRate	true	"Exchange rate"
// @Router			/v1/transfer-wizards/{id}/rate [put]
func (co Controller) OverrideTransferWizardRate(c *gin.Context) {
	w, err := co.transferWizard(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferWizardResponse{
			Error: &s,
		})
		return
	}

	var data TransferWizardRate
	err = httputil.BindData(c, &data)
	if err != nil {
		respondTransferWizard(c, w, http.StatusOK, err)
		return
	}

	_, err = w.OverrideRate(data.Rate)
	respondTransferWizard(c, w, http.StatusOK, err)
}
