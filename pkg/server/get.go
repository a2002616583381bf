package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"adforge/pkg/utils"
)

func (s *Server) handleGetRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"service": "AdForge Campaign API",
		"status":  "ok",
	})
}

func (s *Server) handleGetStoreStats(c echo.Context) error {
	stats, err := s.Store.Stats(c.Request().Context(), c.QueryParam("session"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, utils.ErrJSON(err.Error()))
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) handlePostInvalidate(c echo.Context) error {
	s.Cache.Invalidate()
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}
