package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearth-budget/backend/internal/httputil"
	"github.com/hearth-budget/backend/internal/models"
)

// RegisterHouseholdRoutes registers the routes for households with
// the RouterGroup that is passed.
func (co Controller) RegisterHouseholdRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsHouseholdList)
		r.GET("", co.GetHouseholds)
		r.POST("", co.CreateHouseholds)
	}

	// Household with ID
	{
		r.OPTIONS("/:id", co.OptionsHouseholdDetail)
		r.GET("/:id", co.GetHousehold)
		r.PATCH("/:id", co.UpdateHousehold)
		r.DELETE("/:id", co.DeleteHousehold)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Households
// @Success		204
// @Router			/v1/households [options]
func (co Controller) OptionsHouseholdList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Households
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/households/{id} [options]
func (co Controller) OptionsHouseholdDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Household{})
}

// @Summary		Create households
// @Description	Creates new households
// @Tags			Households
// @Produce		json
// @Success		201			{object}	HouseholdCreateResponse
// @Failure		400			{object}	HouseholdCreateResponse
// @Failure		500			{object}	HouseholdCreateResponse
// @Param			households	body		[]HouseholdEditable	true	"Households"
// @Router			/v1/households [post]
func (co Controller) CreateHouseholds(c *gin.Context) {
	var editables []HouseholdEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), HouseholdCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := HouseholdCreateResponse{}

	for _, editable := range editables {
		household := editable.model()
		err = models.DB.Create(&household).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newHousehold(c, household)
		r.Data = append(r.Data, HouseholdResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List households
// @Description	Returns a list of households
// @Tags			Households
// @Produce		json
// @Success		200				{object}	HouseholdListResponse
// @Failure		400				{object}	HouseholdListResponse
// @Failure		500				{object}	HouseholdListResponse
// @Router			/v1/households [get]
// @Param			name			query	string	false	"Filter by name"
// @Param			sourceCurrency	query	string	false	"Filter by source currency"
// @Param			targetCurrency	query	string	false	"Filter by target currency"
// @Param			offset			query	uint	false	"The offset of the first Household returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of Households to return. Defaults to 50."
func (co Controller) GetHouseholds(c *gin.Context) {
	var filter HouseholdQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, HouseholdListResponse{
			Error: &s,
		})
		return
	}

	// Get the set parameters in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)
	model := filter.model()

	q := models.DB.
		Order("name ASC").
		Where(&model, queryFields...)

	q = nameFilter(q, filter.Name)

	limit := pageLimit(setFields, filter.Limit)
	q = q.Offset(int(filter.Offset)).Limit(limit)

	var households []models.Household
	err := q.Find(&households).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdListResponse{
			Error: &s,
		})
		return
	}

	// When there are no resources, we want an empty list, not null
	data := make([]Household, 0)
	for _, household := range households {
		data = append(data, newHousehold(c, household))
	}

	c.JSON(http.StatusOK, HouseholdListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get household
// @Description	Returns a specific household
// @Tags			Households
// @Produce		json
// @Success		200	{object}	HouseholdResponse
// @Failure		400	{object}	HouseholdResponse
// @Failure		404	{object}	HouseholdResponse
// @Failure		500	{object}	HouseholdResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/households/{id} [get]
func (co Controller) GetHousehold(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{
			Error: &s,
		})
		return
	}

	var household models.Household
	err = models.DB.First(&household, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{
			Error: &s,
		})
		return
	}

	data := newHousehold(c, household)
	c.JSON(http.StatusOK, HouseholdResponse{Data: &data})
}

// @Summary		Update household
// @Description	Updates a household. Only values to be updated need to be specified.
// @Tags			Households
// @Produce		json
// @Success		200			{object}	HouseholdResponse
// @Failure		400			{object}	HouseholdResponse
// @Failure		404			{object}	HouseholdResponse
// @Failure		500			{object}	HouseholdResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			household	body		HouseholdEditable	true	"Household"
// @Router			/v1/households/{id} [patch]
func (co Controller) UpdateHousehold(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{
			Error: &s,
		})
		return
	}

	var household models.Household
	err = models.DB.First(&household, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{
			Error: &s,
		})
		return
	}

	// Fields not contained in the body keep their current value
	data := newHousehold(c, household).HouseholdEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{
			Error: &s,
		})
		return
	}

	update := data.model()
	update.DefaultModel = household.DefaultModel
	err = models.DB.Save(&update).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{
			Error: &s,
		})
		return
	}

	apiResource := newHousehold(c, update)
	c.JSON(http.StatusOK, HouseholdResponse{Data: &apiResource})
}

// @Summary		Delete household
// @Description	Deletes a household with all its accounts, expenses, recurring templates, categories and snapshots
// @Tags			Households
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/households/{id} [delete]
func (co Controller) DeleteHousehold(c *gin.Context) {
	deleteResource(c, models.Household{})
}
