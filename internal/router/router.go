package router

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	docs "github.com/hearth-budget/backend/api"
	"github.com/hearth-budget/backend/internal/controllers/healthz"
	"github.com/hearth-budget/backend/internal/controllers/root"
	v1 "github.com/hearth-budget/backend/internal/controllers/v1"
	"github.com/hearth-budget/backend/internal/controllers/version"
	"github.com/hearth-budget/backend/internal/httputil"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var buildVersion = "0.0.0"

// Config sets up the router and its middlewares.
//
// The returned teardown function must be called when the router
// is not used anymore.
func Config(url *url.URL) (*gin.Engine, func(), error) {
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	err := registerPrometheusMetrics()
	if err != nil {
		return nil, func() {}, err
	}

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(MetricsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error": "this HTTP method is not allowed for the endpoint you called",
		})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("CORS Allowed Origins", allowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(_, _, _ string, _ int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Debug().Str("version", buildVersion).Msg("Router")

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "Hearth"
	docs.SwaggerInfo.Version = buildVersion
	docs.SwaggerInfo.Description = "The backend for Hearth, a household budget planner for two currencies."

	return r, unregisterPrometheusMetrics, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
func AttachRoutes(co v1.Controller, group *gin.RouterGroup) {
	root.RegisterRoutes(group.Group(""))
	version.RegisterRoutes(group.Group("/version"), buildVersion)
	healthz.RegisterRoutes(group.Group("/healthz"))

	group.GET("/metrics", gin.WrapH(promhttp.Handler()))
	group.OPTIONS("/metrics", httputil.OptionsGet)

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.RouteRegister(group, "debug/pprof")
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 setup
	v1Group := group.Group("/v1")
	{
		v1Group.GET("", GetV1)
		v1Group.OPTIONS("", OptionsV1)
	}

	co.RegisterHouseholdRoutes(v1Group.Group("/households"))
	co.RegisterAccountRoutes(v1Group.Group("/accounts"))
	co.RegisterExpenseRoutes(v1Group.Group("/expenses"))
	co.RegisterRecurringTemplateRoutes(v1Group.Group("/recurring-templates"))
	co.RegisterCategoryRoutes(v1Group.Group("/categories"))
	co.RegisterSnapshotRoutes(v1Group.Group("/snapshots"))
	co.RegisterMonthRoutes(v1Group.Group("/months"))
	co.RegisterExchangeRateRoutes(v1Group.Group("/exchange-rates"))
	co.RegisterTransferWizardRoutes(v1Group.Group("/transfer-wizards"))
}

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Households         string `json:"households" example:"https://example.com/api/v1/households"`                  // URL of household list endpoint
	Accounts           string `json:"accounts" example:"https://example.com/api/v1/accounts"`                      // URL of bank account list endpoint
	Expenses           string `json:"expenses" example:"https://example.com/api/v1/expenses"`                      // URL of expense list endpoint
	RecurringTemplates string `json:"recurringTemplates" example:"https://example.com/api/v1/recurring-templates"` // URL of recurring template list endpoint
	Categories         string `json:"categories" example:"https://example.com/api/v1/categories"`                  // URL of category list endpoint
	Snapshots          string `json:"snapshots" example:"https://example.com/api/v1/snapshots"`                    // URL of the snapshot endpoints
	Months             string `json:"months" example:"https://example.com/api/v1/months"`                          // URL of the month summary endpoints
	ExchangeRates      string `json:"exchangeRates" example:"https://example.com/api/v1/exchange-rates"`           // URL of the exchange rate endpoints
	TransferWizards    string `json:"transferWizards" example:"https://example.com/api/v1/transfer-wizards"`       // URL to open transfer wizards
}

// GetV1 returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	V1Response
//	@Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL)) + "/v1"

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Households:         url + "/households",
			Accounts:           url + "/accounts",
			Expenses:           url + "/expenses",
			RecurringTemplates: url + "/recurring-templates",
			Categories:         url + "/categories",
			Snapshots:          url + "/snapshots",
			Months:             url + "/months",
			ExchangeRates:      url + "/exchange-rates",
			TransferWizards:    url + "/transfer-wizards",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
