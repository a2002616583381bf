package campaign

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Section keys produced by the generation prompt. The parser derives these
// from the response text itself; they are listed here so callers can look
// them up without re-deriving.
const (
	KeyCampaignName    = "campaign_name"
	KeyCoreMessage     = "core_message"
	KeyVisualTheme     = "visual_theme_description"
	KeyEmotionalAppeal = "key_emotional_appeal"
	KeySocialMedia     = "social_media_focus"
)

// Value is the content of one section: either a text scalar or a nested
// mapping of sub-keys to text. Exactly one of the two forms is populated.
type Value struct {
	Text string
	Sub  *orderedmap.OrderedMap[string, string]
}

// Scalar wraps plain text as a section value.
func Scalar(text string) Value {
	return Value{Text: text}
}

// IsSub reports whether the value holds a nested subsection.
func (v Value) IsSub() bool {
	return v.Sub != nil
}

// Field returns the named sub-key, or fallback when the value is not a
// subsection or the sub-key is absent or empty.
func (v Value) Field(key, fallback string) string {
	if v.Sub == nil {
		return fallback
	}
	s, ok := v.Sub.Get(key)
	if !ok || s == "" {
		return fallback
	}
	return s
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.Sub != nil {
		return json.Marshal(v.Sub)
	}
	return json.Marshal(v.Text)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		sub := orderedmap.New[string, string]()
		if err := json.Unmarshal(data, sub); err != nil {
			return err
		}
		v.Sub = sub
		v.Text = ""
		return nil
	}
	v.Sub = nil
	return json.Unmarshal(data, &v.Text)
}

// Record is one parsed campaign. Sections keep the order they appeared in
// the generated text, and a record is never mutated once the parser has
// sealed it.
type Record struct {
	sections *orderedmap.OrderedMap[string, Value]
}

func NewRecord() *Record {
	return &Record{sections: orderedmap.New[string, Value]()}
}

// Set inserts or replaces a section. Insertion order is preserved; replacing
// an existing key keeps its original position.
func (r *Record) Set(key string, v Value) {
	r.sections.Set(key, v)
}

func (r *Record) Get(key string) (Value, bool) {
	return r.sections.Get(key)
}

// Text returns the scalar value of a section, or "" when the section is
// missing or holds a subsection.
func (r *Record) Text(key string) string {
	v, ok := r.sections.Get(key)
	if !ok || v.Sub != nil {
		return ""
	}
	return v.Text
}

// Name returns the campaign_name scalar.
func (r *Record) Name() string {
	return r.Text(KeyCampaignName)
}

func (r *Record) Len() int {
	if r == nil || r.sections == nil {
		return 0
	}
	return r.sections.Len()
}

// Keys returns the section keys in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, r.Len())
	for pair := r.sections.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.sections)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	r.sections = orderedmap.New[string, Value]()
	return json.Unmarshal(data, r.sections)
}
