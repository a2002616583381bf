package campaign

import "strings"

// TokenKind classifies one trimmed line of a generation response.
type TokenKind int

const (
	Blank TokenKind = iota
	CampaignStart
	SectionHeader
	SubsectionLine
	KeyValueLine
)

func (k TokenKind) String() string {
	switch k {
	case Blank:
		return "blank"
	case CampaignStart:
		return "campaign_start"
	case SectionHeader:
		return "section_header"
	case SubsectionLine:
		return "subsection_line"
	case KeyValueLine:
		return "key_value_line"
	}
	return "unknown"
}

// campaignMarker opens a new campaign block. The match is a case-sensitive
// prefix, mirroring the wording the generation prompt asks for.
const campaignMarker = "Campaign"

// Classify assigns exactly one kind to a line that has already been trimmed
// of surrounding whitespace. Classification is total and depends only on the
// line itself; every non-blank line that matches none of the specific shapes
// falls back to KeyValueLine.
func Classify(line string) TokenKind {
	if line == "" {
		return Blank
	}
	if strings.HasPrefix(line, campaignMarker) {
		return CampaignStart
	}
	if len(line) >= 2 && line[0] >= '1' && line[0] <= '9' && line[1] == '.' {
		return SectionHeader
	}
	if strings.HasPrefix(line, "-") {
		return SubsectionLine
	}
	return KeyValueLine
}
