package router

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"spendbook/api"
	"spendbook/config"
	"spendbook/database"
	"spendbook/docs"
	"spendbook/middleware"

	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Version is set at build time.
var Version = "1.0.0"

// SetupRouter builds the engine with its middleware chain and every route.
func SetupRouter(cfg *config.Config, store database.Store) (*gin.Engine, error) {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())

	// request logs are a development aid only
	if !cfg.IsProduction() {
		r.Use(middleware.RequestLogger())
	}

	r.Use(middleware.CORS(cfg.CORS))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := middleware.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("setting up metrics: %w", err)
	}
	r.Use(metrics.Handler())

	r.Use(middleware.Errors())

	r.NoRoute(middleware.NotFound)
	r.NoMethod(func(c *gin.Context) {
		api.Message(c, http.StatusMethodNotAllowed, "This HTTP method is not allowed for the endpoint you called")
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	docs.SwaggerInfo.Version = Version
	if u, err := url.Parse(cfg.Server.BaseURL); err == nil && u.Host != "" {
		docs.SwaggerInfo.Host = u.Host
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.Server.EnablePprof {
		log.Info().Msg("pprof enabled at /debug/pprof")
		pprof.Register(r)
	}

	AttachRoutes(r.Group("/api"), cfg, store)

	return r, nil
}

// AttachRoutes attaches the API routes to group.
func AttachRoutes(group *gin.RouterGroup, cfg *config.Config, store database.Store) {
	group.GET("/health", api.Health)
	group.GET("/categories", api.Categories)

	expenseHandler := api.NewExpenseHandler(store)
	expenses := group.Group("/expenses")
	if limit := cfg.Server.WriteRateLimit; limit > 0 {
		expenses.Use(middleware.WriteRateLimit(limit, time.Minute))
	}
	{
		expenses.POST("", expenseHandler.Create)
		expenses.GET("", expenseHandler.List)
		expenses.GET("/summary", expenseHandler.Summary)
		expenses.GET("/export", expenseHandler.Export)
		expenses.GET("/:id", expenseHandler.Get)
		expenses.PUT("/:id", expenseHandler.Update)
		expenses.DELETE("/:id", expenseHandler.Delete)
	}
}
