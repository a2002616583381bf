// Package marketing turns a research report into brand, audience, and
// market analyses and generates structured campaign ideas from them.
package marketing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"

	"adforge/pkg/cache"
	"adforge/pkg/campaign"
	"adforge/pkg/inference"
	"adforge/pkg/retrying"
	"adforge/pkg/schema"
	"adforge/pkg/utils"
)

// Cache purposes for each analysis pass.
const (
	PurposeBrand     = "brand_analysis"
	PurposeAudience  = "audience_analysis"
	PurposeMarket    = "market_analysis"
	PurposeCampaigns = "campaign_ideas"
)

// requiredSections must be present on a parsed campaign for it to survive
// validation.
var requiredSections = []string{
	campaign.KeyCampaignName,
	campaign.KeyCoreMessage,
	campaign.KeyVisualTheme,
}

// Archiver stores session-tagged analysis documents. The sqlite store
// satisfies it.
type Archiver interface {
	Add(ctx context.Context, texts []string, metas []map[string]string, sessionID string) ([]string, error)
}

// Agent runs the marketing analysis and campaign generation pipeline.
type Agent struct {
	inferencer   inference.Inferencer
	cache        *cache.Manager
	archive      Archiver
	sessionID    string
	numCampaigns int
	logger       *log.Logger
}

// NewAgent builds a marketing agent. archive may be nil to skip the
// session archive. numCampaigns is clamped to the parser's range.
func NewAgent(inf inference.Inferencer, c *cache.Manager, archive Archiver, numCampaigns int) *Agent {
	if numCampaigns < 1 {
		numCampaigns = 1
	}
	if numCampaigns > campaign.MaxRecords {
		numCampaigns = campaign.MaxRecords
	}
	return &Agent{
		inferencer:   inf,
		cache:        c,
		archive:      archive,
		sessionID:    time.Now().UTC().Format("20060102_150405"),
		numCampaigns: numCampaigns,
		logger:       log.Default().With("agent", "marketing"),
	}
}

// SessionID identifies this agent's archive entries.
func (a *Agent) SessionID() string {
	return a.sessionID
}

// AnalyzeBrand produces the brand voice analysis for a company's research
// report, served from cache when available.
func (a *Agent) AnalyzeBrand(ctx context.Context, company, researchData string, forceFresh bool) (cache.Entry, error) {
	entry, err := a.analysis(ctx, company, PurposeBrand, brandSystemPrompt,
		"Analyze the brand elements in this research:\n"+researchData, forceFresh)
	if err != nil {
		return entry, err
	}
	a.archiveEntry(ctx, entry, PurposeBrand, "voice_and_personality")
	return entry, nil
}

// MapAudience produces target audience profiles.
func (a *Agent) MapAudience(ctx context.Context, company, researchData string, forceFresh bool) (cache.Entry, error) {
	entry, err := a.analysis(ctx, company, PurposeAudience, audienceSystemPrompt,
		"Create audience profiles from this research:\n"+researchData, forceFresh)
	if err != nil {
		return entry, err
	}
	a.archiveEntry(ctx, entry, PurposeAudience, "profiles_and_segments")
	return entry, nil
}

// AssessMarket produces the market position analysis.
func (a *Agent) AssessMarket(ctx context.Context, company, researchData string, forceFresh bool) (cache.Entry, error) {
	entry, err := a.analysis(ctx, company, PurposeMarket, marketSystemPrompt,
		"Analyze market position from this research:\n"+researchData, forceFresh)
	if err != nil {
		return entry, err
	}
	a.archiveEntry(ctx, entry, PurposeMarket, "position_and_competition")
	return entry, nil
}

// ProfileBrand maps a brand analysis onto the BrandProfile shape using
// structured outputs.
func (a *Agent) ProfileBrand(ctx context.Context, brandAnalysis string) (*schema.BrandProfile, error) {
	params := &openai.ChatCompletionNewParams{
		ResponseFormat: schema.BrandProfileResponseFormat(),
	}
	raw, err := retrying.DoWithData(ctx, func() (string, error) {
		return a.inferencer.Infer(ctx, params, brandSystemPrompt,
			"Structure this brand analysis:\n"+brandAnalysis)
	})
	if err != nil {
		return nil, err
	}

	var profile schema.BrandProfile
	if err := json.Unmarshal([]byte(utils.CleanJSON(raw)), &profile); err != nil {
		return nil, fmt.Errorf("decode brand profile: %w", err)
	}
	return &profile, nil
}

func (a *Agent) analysis(ctx context.Context, company, purpose, system, user string, forceFresh bool) (cache.Entry, error) {
	key := cache.Key{Subject: company, Purpose: purpose}
	return a.cache.GetOrGenerate(ctx, key, func(ctx context.Context) (string, error) {
		return retrying.DoWithData(ctx, func() (string, error) {
			return a.inferencer.Infer(ctx, nil, system, user)
		})
	}, forceFresh)
}

// archiveEntry saves freshly generated analyses to the session archive.
// Cache hits are already archived from the run that generated them.
func (a *Agent) archiveEntry(ctx context.Context, entry cache.Entry, contentType, analysisType string) {
	if a.archive == nil || entry.Provenance != cache.FreshlyGenerated {
		return
	}
	_, err := a.archive.Add(ctx,
		[]string{entry.Value},
		[]map[string]string{{
			"content_type":  contentType,
			"analysis_type": analysisType,
		}},
		a.sessionID)
	if err != nil {
		a.logger.Warn("failed to archive analysis", "content_type", contentType, "err", err)
	}
}

// GenerateCampaigns asks for campaign ideas, parses them into records,
// drops records missing required sections, and attaches derived prompt
// suggestions to the survivors.
func (a *Agent) GenerateCampaigns(ctx context.Context, company, brand, audience, market string, forceFresh bool) ([]*campaign.Record, error) {
	user := fmt.Sprintf(campaignTemplate, a.numCampaigns, market, audience, brand)

	key := cache.Key{Subject: company, Purpose: PurposeCampaigns}
	entry, err := a.cache.GetOrGenerate(ctx, key, func(ctx context.Context) (string, error) {
		return retrying.DoWithData(ctx, func() (string, error) {
			raw, err := a.inferencer.Infer(ctx, nil,
				"You are a creative marketing director.", user)
			if err != nil {
				return "", err
			}
			if ok, err := a.inferencer.Verify(ctx, raw); err != nil {
				return "", fmt.Errorf("verify campaign response: %w", err)
			} else if !ok {
				return "", fmt.Errorf("campaign response failed verification")
			}
			return raw, nil
		})
	}, forceFresh)
	if err != nil {
		return nil, fmt.Errorf("generate campaign ideas: %w", err)
	}

	records := campaign.Parse(entry.Value, a.numCampaigns)
	valid := records[:0]
	for _, r := range records {
		if missing := missingSections(r); missing != "" {
			a.logger.Warn("dropping campaign missing required section",
				"campaign", r.Name(), "section", missing)
			continue
		}
		r.Set(campaign.KeySuggestions, campaign.DeriveSuggestions(r).Value())
		valid = append(valid, r)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("no valid campaigns in response")
	}
	return valid, nil
}

func missingSections(r *campaign.Record) string {
	for _, key := range requiredSections {
		if _, ok := r.Get(key); !ok {
			return key
		}
	}
	return ""
}

// Result bundles everything one pipeline run produced.
type Result struct {
	SessionID string             `json:"session_id"`
	Brand     string             `json:"brand_analysis"`
	Audience  string             `json:"audience_analysis"`
	Market    string             `json:"market_analysis"`
	Campaigns []*campaign.Record `json:"campaigns"`
}

// Run executes the full pipeline over a research report: the three
// analyses, then campaign generation from their combination.
func (a *Agent) Run(ctx context.Context, company, researchReport string, forceFresh bool) (*Result, error) {
	brand, err := a.AnalyzeBrand(ctx, company, researchReport, forceFresh)
	if err != nil {
		return nil, fmt.Errorf("analyze brand: %w", err)
	}
	audience, err := a.MapAudience(ctx, company, researchReport, forceFresh)
	if err != nil {
		return nil, fmt.Errorf("map audience: %w", err)
	}
	market, err := a.AssessMarket(ctx, company, researchReport, forceFresh)
	if err != nil {
		return nil, fmt.Errorf("assess market: %w", err)
	}

	campaigns, err := a.GenerateCampaigns(ctx, company,
		brand.Value, audience.Value, market.Value, forceFresh)
	if err != nil {
		return nil, err
	}

	a.logger.Info("pipeline finished",
		"company", company, "campaigns", len(campaigns), "session", a.sessionID)

	return &Result{
		SessionID: a.sessionID,
		Brand:     brand.Value,
		Audience:  audience.Value,
		Market:    market.Value,
		Campaigns: campaigns,
	}, nil
}
