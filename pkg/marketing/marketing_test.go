package marketing

import (
	"context"
	"strings"
	"testing"

	"github.com/openai/openai-go/v3"

	"adforge/pkg/cache"
	"adforge/pkg/campaign"
)

type fakeInferencer struct {
	campaignText   string
	structuredText string
	calls          int
}

func (f *fakeInferencer) Infer(_ context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	f.calls++
	if params != nil && params.ResponseFormat.OfJSONSchema != nil {
		return f.structuredText, nil
	}
	if strings.Contains(system, "creative marketing director") {
		return f.campaignText, nil
	}
	switch {
	case strings.Contains(system, "brand voice"):
		return "brand analysis text", nil
	case strings.Contains(system, "audience profiles"):
		return "audience analysis text", nil
	case strings.Contains(system, "market position"):
		return "market analysis text", nil
	}
	return "unexpected", nil
}

func (f *fakeInferencer) Verify(_ context.Context, result string) (bool, error) {
	return result != "", nil
}

type fakeArchive struct {
	texts []string
	metas []map[string]string
}

func (f *fakeArchive) Add(_ context.Context, texts []string, metas []map[string]string, _ string) ([]string, error) {
	f.texts = append(f.texts, texts...)
	f.metas = append(f.metas, metas...)
	return make([]string, len(texts)), nil
}

const campaignResponse = `Campaign: Solar Surge
1. Core Message: Power your home with sunlight
2. Visual Theme Description:
- Color Palette: amber and white
- Mood and Atmosphere: optimistic

Campaign: Half Built
1. Core Message: incomplete idea
`

func TestRunPipeline(t *testing.T) {
	inf := &fakeInferencer{campaignText: campaignResponse}
	archive := &fakeArchive{}
	agent := NewAgent(inf, cache.NewManager(nil), archive, 5)

	result, err := agent.Run(context.Background(), "Acme Solar", "research report", false)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.Brand != "brand analysis text" {
		t.Errorf("brand = %q", result.Brand)
	}
	if result.Audience != "audience analysis text" {
		t.Errorf("audience = %q", result.Audience)
	}
	if result.Market != "market analysis text" {
		t.Errorf("market = %q", result.Market)
	}
	if result.SessionID == "" {
		t.Error("session id should be set")
	}

	// Half Built is missing its visual theme, so only Solar Surge survives.
	if len(result.Campaigns) != 1 {
		t.Fatalf("expected 1 valid campaign, got %d", len(result.Campaigns))
	}
	r := result.Campaigns[0]
	if r.Name() != "Solar Surge" {
		t.Errorf("campaign name = %q", r.Name())
	}
	v, ok := r.Get(campaign.KeySuggestions)
	if !ok || !v.IsSub() {
		t.Fatal("surviving campaigns must carry prompt suggestions")
	}
	if v.Field("product_focused", "") == "" {
		t.Error("product_focused suggestion is empty")
	}

	// Brand, audience, and market analyses all land in the session archive.
	if len(archive.texts) != 3 {
		t.Fatalf("expected 3 archived analyses, got %d", len(archive.texts))
	}
	if archive.metas[0]["content_type"] != PurposeBrand {
		t.Errorf("first archive meta = %v", archive.metas[0])
	}
}

func TestRunCachesAnalyses(t *testing.T) {
	inf := &fakeInferencer{campaignText: campaignResponse}
	agent := NewAgent(inf, cache.NewManager(nil), nil, 3)

	if _, err := agent.Run(context.Background(), "Acme", "report", false); err != nil {
		t.Fatalf("first run: %v", err)
	}
	callsAfterFirst := inf.calls

	if _, err := agent.Run(context.Background(), "Acme", "report", false); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if inf.calls != callsAfterFirst {
		t.Fatalf("second run should be served from cache, calls went %d -> %d",
			callsAfterFirst, inf.calls)
	}
}

func TestGenerateCampaignsAllInvalid(t *testing.T) {
	inf := &fakeInferencer{campaignText: "Campaign: Nameless Only\n"}
	agent := NewAgent(inf, cache.NewManager(nil), nil, 5)

	_, err := agent.GenerateCampaigns(context.Background(), "Acme", "b", "a", "m", false)
	if err == nil {
		t.Fatal("expected an error when every campaign fails validation")
	}
}

func TestProfileBrand(t *testing.T) {
	inf := &fakeInferencer{structuredText: "```json\n" +
		`{"personality": "bold", "tone": "direct", "values": ["sustainability"], "keywords": ["solar", "clean"]}` +
		"\n```"}
	agent := NewAgent(inf, cache.NewManager(nil), nil, 3)

	profile, err := agent.ProfileBrand(context.Background(), "brand analysis text")
	if err != nil {
		t.Fatalf("profile brand: %v", err)
	}
	if profile.Personality != "bold" || profile.Tone != "direct" {
		t.Errorf("profile = %+v", profile)
	}
	if len(profile.Keywords) != 2 || profile.Keywords[0] != "solar" {
		t.Errorf("keywords = %v", profile.Keywords)
	}
}

func TestProfileBrandRejectsMalformedJSON(t *testing.T) {
	inf := &fakeInferencer{structuredText: "not json at all"}
	agent := NewAgent(inf, cache.NewManager(nil), nil, 3)

	if _, err := agent.ProfileBrand(context.Background(), "brand analysis text"); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestNewAgentClampsCampaignCount(t *testing.T) {
	a := NewAgent(&fakeInferencer{}, cache.NewManager(nil), nil, 99)
	if a.numCampaigns != campaign.MaxRecords {
		t.Fatalf("numCampaigns = %d, want %d", a.numCampaigns, campaign.MaxRecords)
	}
	b := NewAgent(&fakeInferencer{}, cache.NewManager(nil), nil, -1)
	if b.numCampaigns != 1 {
		t.Fatalf("numCampaigns = %d, want 1", b.numCampaigns)
	}
}
