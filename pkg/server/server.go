// Package server exposes the generation pipeline over HTTP.
package server

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"adforge/pkg/adgen"
	"adforge/pkg/cache"
	"adforge/pkg/marketing"
	"adforge/pkg/research"
	"adforge/pkg/store"
)

type Server struct {
	Echo         *echo.Echo
	Research     *research.Agent
	Marketing    *marketing.Agent
	Orchestrator *adgen.Orchestrator
	Cache        *cache.Manager
	Store        *store.Store
	Ctx          context.Context
}

func NewServer(ctx context.Context, r *research.Agent, m *marketing.Agent, o *adgen.Orchestrator, c *cache.Manager, st *store.Store) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	s := &Server{
		Echo:         e,
		Research:     r,
		Marketing:    m,
		Orchestrator: o,
		Cache:        c,
		Store:        st,
		Ctx:          ctx,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.Echo.GET("/", s.handleGetRoot)

	api := s.Echo.Group("/api")
	api.POST("/research", s.handlePostResearch)   // research report for a company
	api.POST("/campaigns", s.handlePostCampaigns) // analyses + campaign ideas
	api.POST("/assets", s.handlePostAssets)       // full asset workflow, streamed
	api.GET("/store/stats", s.handleGetStoreStats)
	api.POST("/cache/invalidate", s.handlePostInvalidate)
}

func (s *Server) Start(addr string) error {
	log.Info("server listening", "addr", addr)
	return s.Echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("shutting down server")

	closeErr := s.Store.Close()
	if err := s.Echo.Shutdown(ctx); err != nil {
		return err
	}
	return closeErr
}
