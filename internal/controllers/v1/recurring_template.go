package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearth-budget/backend/internal/httputil"
	"github.com/hearth-budget/backend/internal/models"
)

// RegisterRecurringTemplateRoutes registers the routes for recurring templates with
// the RouterGroup that is passed.
func (co Controller) RegisterRecurringTemplateRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsRecurringTemplateList)
		r.GET("", co.GetRecurringTemplates)
		r.POST("", co.CreateRecurringTemplates)
	}

	{
		r.OPTIONS("/import", co.OptionsRecurringTemplateImport)
		r.POST("/import", co.ImportRecurringTemplates)
	}

	// Recurring template with ID
	{
		r.OPTIONS("/:id", co.OptionsRecurringTemplateDetail)
		r.GET("/:id", co.GetRecurringTemplate)
		r.PATCH("/:id", co.UpdateRecurringTemplate)
		r.DELETE("/:id", co.DeleteRecurringTemplate)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recurring Templates
// @Success		204
// @Router			/v1/recurring-templates [options]
func (co Controller) OptionsRecurringTemplateList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recurring Templates
// @Success		204
// @Router			/v1/recurring-templates/import [options]
func (co Controller) OptionsRecurringTemplateImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recurring Templates
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-templates/{id} [options]
func (co Controller) OptionsRecurringTemplateDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.RecurringTemplate{})
}

// @Summary		Create recurring templates
// @Description	Creates new recurring templates. The currency is always the currency of the bank account.
// @Tags			Recurring Templates
// @Produce		json
// @Success		201			{object}	RecurringTemplateCreateResponse
// @Failure		400			{object}	RecurringTemplateCreateResponse
// @Failure		404			{object}	RecurringTemplateCreateResponse
// @Failure		500			{object}	RecurringTemplateCreateResponse
// @Param			templates	body		[]RecurringTemplateEditable	true	"Recurring templates"
// @Router			/v1/recurring-templates [post]
func (co Controller) CreateRecurringTemplates(c *gin.Context) {
	var editables []RecurringTemplateEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTemplateCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := RecurringTemplateCreateResponse{}

	for _, editable := range editables {
		template := editable.model()
		err = models.DB.Create(&template).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newRecurringTemplate(c, template)
		r.Data = append(r.Data, RecurringTemplateResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Import recurring templates
// @Description	Creates planned expenses dated on the first day of the month from recurring templates.
// @Description	Without templateIds, all templates whose name is not used by an expense in the month yet are imported.
// @Tags			Recurring Templates
// @Produce		json
// @Success		201		{object}	RecurringTemplateImportResponse
// @Failure		400		{object}	RecurringTemplateImportResponse
// @Failure		404		{object}	RecurringTemplateImportResponse
// @Failure		500		{object}	RecurringTemplateImportResponse
// @Param			import	body		RecurringTemplateImport	true	"Templates to import"
// @Router			/v1/recurring-templates/import [post]
func (co Controller) ImportRecurringTemplates(c *gin.Context) {
	var request RecurringTemplateImport
	err := httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateImportResponse{
			Error: &s,
		})
		return
	}

	expenses, err := models.ImportTemplates(models.DB, request.HouseholdID, request.Month, request.TemplateIDs)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateImportResponse{
			Error: &s,
		})
		return
	}

	data := make([]Expense, 0, len(expenses))
	for _, expense := range expenses {
		data = append(data, newExpense(c, expense))
	}

	c.JSON(http.StatusCreated, RecurringTemplateImportResponse{Data: data})
}

// @Summary		List recurring templates
// @Description	Returns a list of recurring templates
// @Tags			Recurring Templates
// @Produce		json
// @Success		200			{object}	RecurringTemplateListResponse
// @Failure		400			{object}	RecurringTemplateListResponse
// @Failure		500			{object}	RecurringTemplateListResponse
// @Router			/v1/recurring-templates [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			household	query	string	false	"Filter by household ID"
// @Param			account		query	string	false	"Filter by bank account ID"
// @Param			category	query	string	false	"Filter by category"
// @Param			offset		query	uint	false	"The offset of the first RecurringTemplate returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of RecurringTemplates to return. Defaults to 50."
func (co Controller) GetRecurringTemplates(c *gin.Context) {
	var filter RecurringTemplateQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RecurringTemplateListResponse{
			Error: &s,
		})
		return
	}

	// Get the set parameters in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a model
	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("name ASC").
		Where(&model, queryFields...)

	q = nameFilter(q, filter.Name)

	limit := pageLimit(setFields, filter.Limit)
	q = q.Offset(int(filter.Offset)).Limit(limit)

	var templates []models.RecurringTemplate
	err = q.Find(&templates).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateListResponse{
			Error: &s,
		})
		return
	}

	// When there are no resources, we want an empty list, not null
	data := make([]RecurringTemplate, 0)
	for _, template := range templates {
		data = append(data, newRecurringTemplate(c, template))
	}

	c.JSON(http.StatusOK, RecurringTemplateListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get recurring template
// @Description	Returns a specific recurring template
// @Tags			Recurring Templates
// @Produce		json
// @Success		200	{object}	RecurringTemplateResponse
// @Failure		400	{object}	RecurringTemplateResponse
// @Failure		404	{object}	RecurringTemplateResponse
// @Failure		500	{object}	RecurringTemplateResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-templates/{id} [get]
func (co Controller) GetRecurringTemplate(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateResponse{
			Error: &s,
		})
		return
	}

	var template models.RecurringTemplate
	err = models.DB.First(&template, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateResponse{
			Error: &s,
		})
		return
	}

	data := newRecurringTemplate(c, template)
	c.JSON(http.StatusOK, RecurringTemplateResponse{Data: &data})
}

// @Summary		Update recurring template
// @Description	Updates a recurring template. Only values to be updated need to be specified. Expenses that were already created are not changed.
// @Tags			Recurring Templates
// @Produce		json
// @Success		200			{object}	RecurringTemplateResponse
// @Failure		400			{object}	RecurringTemplateResponse
// @Failure		404			{object}	RecurringTemplateResponse
// @Failure		500			{object}	RecurringTemplateResponse
// @Param			id			path		URIID						true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			template	body		RecurringTemplateEditable	true	"Recurring template"
// @Router			/v1/recurring-templates/{id} [patch]
func (co Controller) UpdateRecurringTemplate(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateResponse{
			Error: &s,
		})
		return
	}

	var template models.RecurringTemplate
	err = models.DB.First(&template, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateResponse{
			Error: &s,
		})
		return
	}

	// Fields not contained in the body keep their current value
	data := newRecurringTemplate(c, template).RecurringTemplateEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateResponse{
			Error: &s,
		})
		return
	}

	update := data.model()
	update.DefaultModel = template.DefaultModel
	err = models.DB.Save(&update).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTemplateResponse{
			Error: &s,
		})
		return
	}

	apiResource := newRecurringTemplate(c, update)
	c.JSON(http.StatusOK, RecurringTemplateResponse{Data: &apiResource})
}

// @Summary		Delete recurring template
// @Description	Deletes a recurring template. Expenses created from it are kept.
// @Tags			Recurring Templates
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-templates/{id} [delete]
func (co Controller) DeleteRecurringTemplate(c *gin.Context) {
	deleteResource(c, models.RecurringTemplate{})
}
