package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"adforge/pkg/cache"
	"adforge/pkg/campaign"
	"adforge/pkg/diff"
	"adforge/pkg/marketing"
	"adforge/pkg/utils"
)

type generateRequest struct {
	Company    string `json:"company"`
	ForceFresh bool   `json:"force_fresh"`
}

func bindGenerateRequest(c echo.Context) (generateRequest, bool) {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return req, false
	}
	req.Company = strings.TrimSpace(req.Company)
	return req, req.Company != ""
}

type researchResponse struct {
	Company     string `json:"company"`
	Report      string `json:"report"`
	Provenance  string `json:"provenance"`
	GeneratedAt string `json:"generated_at"`
}

func (s *Server) handlePostResearch(c echo.Context) error {
	req, ok := bindGenerateRequest(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, utils.ErrJSON("company is required"))
	}

	entry, err := s.Research.Run(c.Request().Context(), req.Company, req.ForceFresh)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, utils.ErrJSON(err.Error()))
	}

	return c.JSON(http.StatusOK, researchResponse{
		Company:     req.Company,
		Report:      entry.Value,
		Provenance:  string(entry.Provenance),
		GeneratedAt: entry.GeneratedAt.Format(time.RFC3339),
	})
}

type campaignsResponse struct {
	*marketing.Result
	Changes []diff.CampaignDiff `json:"changes,omitempty"`
}

func (s *Server) handlePostCampaigns(c echo.Context) error {
	req, ok := bindGenerateRequest(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, utils.ErrJSON("company is required"))
	}
	ctx := c.Request().Context()

	// When regenerating, keep the previous generation around so the
	// response can say what changed.
	var previous []*campaign.Record
	if req.ForceFresh {
		key := cache.Key{Subject: req.Company, Purpose: marketing.PurposeCampaigns}
		if raw, found, err := s.Store.Fetch(ctx, key); err == nil && found {
			previous = campaign.Parse(raw, campaign.MaxRecords)
		}
	}

	research, err := s.Research.Run(ctx, req.Company, req.ForceFresh)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, utils.ErrJSON(err.Error()))
	}

	result, err := s.Marketing.Run(ctx, req.Company, research.Value, req.ForceFresh)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, utils.ErrJSON(err.Error()))
	}

	resp := campaignsResponse{Result: result}
	if previous != nil {
		resp.Changes = diff.Campaigns(previous, result.Campaigns)
	}
	return c.JSON(http.StatusOK, resp)
}
