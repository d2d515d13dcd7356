// Package healthz reports if the backend can serve requests.
package healthz

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hearth-budget/backend/internal/httputil"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/rs/zerolog/log"
)

// checkTimeout bounds the database ping.
const checkTimeout = 2 * time.Second

type Response struct {
	Error string `json:"error" example:"the database cannot be accessed"` // The error, if the backend is not healthy
}

// Checker verifies that a dependency is reachable.
type Checker func(context.Context) error

// RegisterRoutes registers the health check. If no checkers are passed,
// the database is checked.
func RegisterRoutes(r *gin.RouterGroup, checkers ...Checker) {
	if len(checkers) == 0 {
		checkers = []Checker{models.Ping}
	}

	r.OPTIONS("", Options)
	r.GET("", Get(checkers...))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// Get returns the handler running all checkers.
//
//	@Summary		Get health
//	@Description	Returns no content if the backend is healthy, otherwise the first error
//	@Tags			General
//	@Produce		json
//	@Success		204
//	@Failure		503	{object}	Response
//	@Router			/healthz [get]
func Get(checkers ...Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		defer cancel()

		for _, check := range checkers {
			if err := check(ctx); err != nil {
				log.Error().Err(err).Msg("Healthz")
				c.JSON(http.StatusServiceUnavailable, Response{Error: err.Error()})
				return
			}
		}

		c.Status(http.StatusNoContent)
	}
}
