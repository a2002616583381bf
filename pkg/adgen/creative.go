// Package adgen produces the creative assets for a campaign: tagline,
// narrative, image prompt, and the rendered image itself.
package adgen

import (
	"context"
	"fmt"

	"adforge/pkg/cache"
	"adforge/pkg/campaign"
	"adforge/pkg/inference"
	"adforge/pkg/retrying"
	"adforge/pkg/utils"
)

// Cache purposes for each asset kind.
const (
	PurposeTagline     = "tagline"
	PurposeStory       = "story"
	PurposeImagePrompt = "image_prompt"
)

const creativeSystemPrompt = "You are an advertising copywriter producing polished, ready-to-use creative assets."

// Assets are the text deliverables for one campaign.
type Assets struct {
	Tagline     string `json:"tagline"`
	Story       string `json:"story"`
	ImagePrompt string `json:"image_prompt"`
}

// CreativeAgent generates campaign assets, serving repeats from the cache.
type CreativeAgent struct {
	inferencer inference.Inferencer
	cache      *cache.Manager
}

func NewCreativeAgent(inf inference.Inferencer, c *cache.Manager) *CreativeAgent {
	return &CreativeAgent{inferencer: inf, cache: c}
}

// GenerateTagline produces the campaign tagline.
func (a *CreativeAgent) GenerateTagline(ctx context.Context, name, core, theme, emotion string, forceFresh bool) (cache.Entry, error) {
	user := fmt.Sprintf(taglineTemplate, core, theme, emotion)
	return a.asset(ctx, name, PurposeTagline, user, forceFresh)
}

// GenerateStory produces the campaign narrative.
func (a *CreativeAgent) GenerateStory(ctx context.Context, name, core, theme, emotion string, forceFresh bool) (cache.Entry, error) {
	user := fmt.Sprintf(storyTemplate, core, theme, emotion)
	return a.asset(ctx, name, PurposeStory, user, forceFresh)
}

// GenerateImagePrompt composes the final text-to-image prompt from the
// campaign's derived suggestions.
func (a *CreativeAgent) GenerateImagePrompt(ctx context.Context, name, product, brand, social string, forceFresh bool) (cache.Entry, error) {
	user := fmt.Sprintf(imagePromptTemplate, name, product, brand, social)
	return a.asset(ctx, name, PurposeImagePrompt, user, forceFresh)
}

func (a *CreativeAgent) asset(ctx context.Context, name, purpose, user string, forceFresh bool) (cache.Entry, error) {
	key := cache.Key{Subject: name, Purpose: purpose}
	return a.cache.GetOrGenerate(ctx, key, func(ctx context.Context) (string, error) {
		return retrying.DoWithData(ctx, func() (string, error) {
			return a.inferencer.Infer(ctx, nil, creativeSystemPrompt, user)
		})
	}, forceFresh)
}

// GenerateAssets produces all text assets for one parsed campaign record.
func (a *CreativeAgent) GenerateAssets(ctx context.Context, r *campaign.Record, forceFresh bool) (Assets, error) {
	name := r.Name()
	core := sectionText(r, campaign.KeyCoreMessage)
	theme := sectionText(r, campaign.KeyVisualTheme)
	emotion := sectionText(r, campaign.KeyEmotionalAppeal)

	tagline, err := a.GenerateTagline(ctx, name, core, theme, emotion, forceFresh)
	if err != nil {
		return Assets{}, fmt.Errorf("generate tagline: %w", err)
	}
	story, err := a.GenerateStory(ctx, name, core, theme, emotion, forceFresh)
	if err != nil {
		return Assets{}, fmt.Errorf("generate story: %w", err)
	}

	suggestions, _ := r.Get(campaign.KeySuggestions)
	imagePrompt, err := a.GenerateImagePrompt(ctx, name,
		suggestions.Field("product_focused", ""),
		suggestions.Field("brand_focused", ""),
		suggestions.Field("social_media", ""),
		forceFresh)
	if err != nil {
		return Assets{}, fmt.Errorf("generate image prompt: %w", err)
	}

	return Assets{
		Tagline:     tagline.Value,
		Story:       story.Value,
		ImagePrompt: imagePrompt.Value,
	}, nil
}

// sectionText renders a section as prompt text: scalars pass through and
// subsections render as indented JSON.
func sectionText(r *campaign.Record, key string) string {
	v, ok := r.Get(key)
	if !ok {
		return ""
	}
	if !v.IsSub() {
		return v.Text
	}
	return utils.PrettyJSON(v.Sub)
}
