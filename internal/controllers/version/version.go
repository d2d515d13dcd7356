// Package version exposes the build information of the running backend.
package version

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/hearth-budget/backend/internal/httputil"
)

type Response struct {
	Data Object `json:"data"` // Build information
}

type Object struct {
	Version   string `json:"version" example:"1.1.0"`      // Version of the Hearth backend
	Commit    string `json:"commit" example:"4d2c1f0"`     // VCS revision the binary was built from, if known
	GoVersion string `json:"goVersion" example:"go1.25.5"` // Go version the binary was built with
}

// RegisterRoutes registers the version endpoint, reporting the version passed in.
func RegisterRoutes(r *gin.RouterGroup, version string) {
	object := build(version, debug.ReadBuildInfo)

	r.OPTIONS("", Options)
	r.GET("", Get(object))
}

// build collects the build information once at startup.
func build(version string, read func() (*debug.BuildInfo, bool)) Object {
	o := Object{Version: version}

	info, ok := read()
	if !ok {
		return o
	}

	o.GoVersion = info.GoVersion
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			o.Commit = s.Value
		}
	}

	return o
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// Get returns the handler reporting the build information.
//
//	@Summary		API version
//	@Description	Returns the version and build information of the API
//	@Tags			General
//	@Success		200	{object}	Response
//	@Router			/version [get]
func Get(object Object) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{Data: object})
	}
}
