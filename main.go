package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/latchbio-nfcore/rnadnavar/contexts"
	"github.com/latchbio-nfcore/rnadnavar/logx"
	"github.com/latchbio-nfcore/rnadnavar/metrics"
	gam "github.com/latchbio-nfcore/rnadnavar/middleware"
	"github.com/latchbio-nfcore/rnadnavar/models"
	serviceInfo "github.com/latchbio-nfcore/rnadnavar/models/constants/service-info"
	parametersMvc "github.com/latchbio-nfcore/rnadnavar/mvc/parameters"
	runsMvc "github.com/latchbio-nfcore/rnadnavar/mvc/runs"
	serviceInfoMvc "github.com/latchbio-nfcore/rnadnavar/mvc/service-info"
	esRepo "github.com/latchbio-nfcore/rnadnavar/repositories/elasticsearch"
	"github.com/latchbio-nfcore/rnadnavar/services"
	"github.com/latchbio-nfcore/rnadnavar/services/runs"
	"github.com/latchbio-nfcore/rnadnavar/services/sanitation"
	"github.com/latchbio-nfcore/rnadnavar/utils"
)

func main() {
	// Gather environment variables
	var cfg models.Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	logx.SetDebug(cfg.Debug)

	logx.Log.Info().
		Bool("debug", cfg.Debug).
		Str("elasticsearchUrl", cfg.Elasticsearch.Url).
		Str("runsIndex", cfg.Elasticsearch.RunsIndex).
		Int("runRetentionDays", cfg.Sanitation.RunRetentionDays).
		Bool("authorizationEnabled", cfg.AuthX.IsAuthorizationEnabled).
		Str("authorizationUrl", cfg.AuthX.AuthorizationUrl).
		Str("port", cfg.Api.Port).
		Msg("Using configuration")
	// --

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Service Connections:
	// -- Elasticsearch (optional run history)
	var repo runs.Repository
	es, err := utils.CreateEsConnection(&cfg)
	if err != nil {
		logx.Log.Warn().Err(err).Msg("run history disabled")
	} else if es != nil {
		rr := esRepo.NewRunsRepository(es, &cfg)
		if err := rr.EnsureRunsIndex(ctx); err != nil {
			logx.Log.Warn().Err(err).Msg("cannot ensure runs index")
		}
		repo = rr
	}

	// Service Singletons
	az := services.NewAuthzService(&cfg)
	rz := runs.NewRunService(repo)
	sz := sanitation.NewSanitationService(rz, &cfg)

	metrics.Register(prometheus.DefaultRegisterer)

	// Instantiate Server
	e := echo.New()
	e.HideBanner = true

	// Configure Server
	if cfg.Debug {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST},
	}))

	// -- Override handlers with the pipeline context
	//		to be able to provide variables and global singletons
	e.Use(func(h echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &contexts.PipelineContext{
				Context:    c,
				Config:     &cfg,
				RunService: rz,
			}
			return h(cc)
		}
	})

	// Begin MVC Routes
	// -- Root
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, serviceInfo.SERVICE_WELCOME)
	})

	// -- Service Info
	e.GET("/service-info", serviceInfoMvc.GetServiceInfo)

	// -- Parameters
	e.GET("/parameters", parametersMvc.GetParameters,
		// middleware
		gam.ViewWorkflowPermissionAttribute, az.MandateAuthorizationTokensMiddleware)
	e.GET("/parameters/sections", parametersMvc.GetParameterSections,
		// middleware
		gam.ViewWorkflowPermissionAttribute, az.MandateAuthorizationTokensMiddleware)
	e.GET("/parameters/:name", parametersMvc.GetParameter,
		// middleware
		gam.ViewWorkflowPermissionAttribute, az.MandateAuthorizationTokensMiddleware,
		gam.MandateKnownParameterName)
	e.POST("/parameters/validate", parametersMvc.ValidateParameters,
		// middleware
		gam.ViewWorkflowPermissionAttribute, az.MandateAuthorizationTokensMiddleware)

	// -- Command line preview
	e.POST("/commandline", parametersMvc.GetCommandLine,
		// middleware
		gam.AnalyzeWorkflowPermissionAttribute, az.MandateAuthorizationTokensMiddleware)

	// -- Runs
	e.GET("/runs", runsMvc.GetRuns,
		// middleware
		gam.QueryDataPermissionAttribute, az.MandateAuthorizationTokensMiddleware)
	e.GET("/runs/:id", runsMvc.GetRun,
		// middleware
		gam.QueryDataPermissionAttribute, az.MandateAuthorizationTokensMiddleware,
		gam.MandateRunId)

	// -- Metrics
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Run
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logx.Log.Info().Str("port", cfg.Api.Port).Msg("listening")
		if err := e.Start(":" + cfg.Api.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := sz.Init(); err != nil {
			return fmt.Errorf("scheduling sanitation: %w", err)
		}
		<-gctx.Done()
		sz.Stop()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logx.Log.Fatal().Err(err).Msg("server stopped")
	}
	logx.Log.Info().Msg("server stopped")
}
