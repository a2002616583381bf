package campaign

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// KeySuggestions is the section key the derived prompt variants attach
// under when added to a record.
const KeySuggestions = "prompt_suggestions"

// Suggestions are the three image prompt angles derived from one sealed
// record. Every field is always populated; gaps in the record render as
// neutral placeholders rather than failing.
type Suggestions struct {
	ProductFocused string `json:"product_focused"`
	BrandFocused   string `json:"brand_focused"`
	SocialMedia    string `json:"social_media"`
}

// DeriveSuggestions composes the product, brand, and social prompt variants
// from a sealed record. The derivation is pure and deterministic.
func DeriveSuggestions(r *Record) Suggestions {
	theme := themeDescription(r)
	emotion := emotionDescription(r)
	core := r.Text(KeyCoreMessage)

	product := fmt.Sprintf(
		"%s. Focus on %s. Style: Professional photography, %s, "+
			"photorealistic quality, advertisement composition, "+
			"product-centric, commercial lighting",
		theme, core, emotion)

	brand := fmt.Sprintf(
		"Scene capturing %s through %s. Emphasizing: %s. "+
			"Style: Cinematic lighting, emotional depth, photorealistic quality, "+
			"lifestyle photography, brand storytelling",
		emotion, theme, core)

	platforms, format := socialFocus(r)
	social := fmt.Sprintf(
		"Social media content for %s. %s. Format: %s. Style: %s, "+
			"high engagement, platform-optimized, scroll-stopping visuals",
		platforms, theme, format, emotion)

	return Suggestions{
		ProductFocused: strings.TrimSpace(product),
		BrandFocused:   strings.TrimSpace(brand),
		SocialMedia:    strings.TrimSpace(social),
	}
}

// Value renders the suggestions as a record subsection so they serialize
// alongside the parsed sections.
func (s Suggestions) Value() Value {
	sub := orderedmap.New[string, string]()
	sub.Set("product_focused", s.ProductFocused)
	sub.Set("brand_focused", s.BrandFocused)
	sub.Set("social_media", s.SocialMedia)
	return Value{Sub: sub}
}

// themeDescription renders the visual theme subsection in a fixed field
// order. A scalar theme passes through as-is; a missing or empty one renders
// entirely from placeholders.
func themeDescription(r *Record) string {
	v, ok := r.Get(KeyVisualTheme)
	if ok && !v.IsSub() {
		return v.Text
	}
	return fmt.Sprintf("Color palette: %s. Style: %s. Elements: %s. Mood: %s",
		v.Field("color_palette", "professional"),
		v.Field("photography_illustration_style", "modern"),
		v.Field("key_visual_elements", "clean and minimal"),
		v.Field("mood_and_atmosphere", "professional"))
}

// emotionDescription renders the emotional appeal as "<emotion> mood with
// <triggers>", falling back to its scalar form when it is not a subsection.
func emotionDescription(r *Record) string {
	v, ok := r.Get(KeyEmotionalAppeal)
	if ok && !v.IsSub() {
		return v.Text
	}
	return fmt.Sprintf("%s mood with %s",
		v.Field("primary_emotion", "professional"),
		v.Field("supporting_psychological_triggers", "trust and reliability"))
}

// socialFocus extracts the platform list and content format from the social
// media subsection. A scalar focus is treated as the platform list with a
// generic format.
func socialFocus(r *Record) (platforms, format string) {
	v, ok := r.Get(KeySocialMedia)
	if ok && !v.IsSub() {
		return v.Text, "engaging social media content"
	}
	return v.Field("primary_platforms", ""), v.Field("content_format_recommendations", "")
}
