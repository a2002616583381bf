package campaign

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want TokenKind
	}{
		{"blank", "", Blank},
		{"campaign with colon", "Campaign: Launch Day", CampaignStart},
		{"campaign numbered", "Campaign Idea 2", CampaignStart},
		{"campaign is case sensitive", "campaign: launch", KeyValueLine},
		{"section header", "1. Core Message: Save energy", SectionHeader},
		{"section header bare", "2. Visual Theme Description:", SectionHeader},
		{"section header nine", "9. Risk Mitigation:", SectionHeader},
		{"digit without period", "10 reasons to buy", KeyValueLine},
		{"two digit number", "10. Extra Section:", KeyValueLine},
		{"zero is not a header", "0. Preface:", KeyValueLine},
		{"subsection bullet", "- Color Palette: green", SubsectionLine},
		{"key value", "Target Audience: homeowners", KeyValueLine},
		{"free text falls back", "a closing remark without structure", KeyValueLine},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.line); got != tt.want {
				t.Fatalf("Classify(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestClassifyIsHistoryFree(t *testing.T) {
	// The same line must classify identically no matter what was seen before.
	lines := []string{"Campaign: A", "1. Core Message: x", "- Mood: calm", "k: v", ""}
	first := make([]TokenKind, len(lines))
	for i, l := range lines {
		first[i] = Classify(l)
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if got := Classify(lines[i]); got != first[i] {
			t.Fatalf("Classify(%q) changed between calls: %v then %v", lines[i], first[i], got)
		}
	}
}
