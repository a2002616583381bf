package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"adforge/pkg/utils"
)

// handlePostAssets runs the full pipeline and streams progress as SSE
// events: research, analyses, campaigns, then one event per generated
// campaign, then close.
func (s *Server) handlePostAssets(c echo.Context) error {
	req, ok := bindGenerateRequest(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, utils.ErrJSON("company is required"))
	}
	ctx := c.Request().Context()

	sse := utils.NewSSEWriter(c)
	defer sse.Close()

	fail := func(stage string, err error) error {
		sse.Event("error", map[string]string{"stage": stage, "error": err.Error()})
		return nil
	}

	research, err := s.Research.Run(ctx, req.Company, req.ForceFresh)
	if err != nil {
		return fail("research", err)
	}
	sse.Event("research", map[string]string{
		"company":    req.Company,
		"provenance": string(research.Provenance),
	})

	result, err := s.Marketing.Run(ctx, req.Company, research.Value, req.ForceFresh)
	if err != nil {
		return fail("campaigns", err)
	}
	sse.Event("campaigns", map[string]any{
		"session_id": result.SessionID,
		"count":      len(result.Campaigns),
	})

	for _, record := range result.Campaigns {
		asset, err := s.Orchestrator.GenerateSingle(ctx, record, req.ForceFresh)
		if err != nil {
			sse.Event("campaign_failed", map[string]string{
				"campaign": record.Name(),
				"error":    err.Error(),
			})
			continue
		}
		sse.Event("campaign_assets", asset)
	}

	return nil
}
