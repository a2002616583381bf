// Package campaign turns the free-form multi-section text of a generation
// response into ordered, typed campaign records, and derives image prompt
// suggestions from them.
package campaign

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// MaxRecords is the hard ceiling on how many campaigns a single parse can
// return, regardless of what the caller asks for.
const MaxRecords = 10

// clampCount keeps the requested record count within [1, MaxRecords].
func clampCount(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxRecords {
		return MaxRecords
	}
	return n
}

// builder is the per-parse state machine. At most one record is open at a
// time; a subsection accumulator is only ever attached to the section that
// opened it.
type builder struct {
	sealed []*Record

	current *Record
	section string
	sub     *orderedmap.OrderedMap[string, string]
}

// Parse consumes one full generation response and returns the campaigns it
// describes, in input order, capped at maxCount. Input with no campaign
// marker at all parses to an empty slice; that is a recoverable condition
// for the caller, not an error.
func Parse(raw string, maxCount int) []*Record {
	maxCount = clampCount(maxCount)

	var b builder
	for line := range strings.Lines(raw) {
		line = strings.TrimSpace(line)
		switch Classify(line) {
		case Blank:
			// Never changes state.
		case CampaignStart:
			b.openCampaign(line)
		case SectionHeader:
			b.openSection(line)
		case SubsectionLine:
			b.addSubsectionLine(line)
		case KeyValueLine:
			b.addKeyValue(line)
		}
	}
	b.seal()

	if len(b.sealed) > maxCount {
		return b.sealed[:maxCount]
	}
	return b.sealed
}

// openCampaign seals any open record and starts a new one. The campaign name
// is the text after the first colon, or the whole line when there is none.
func (b *builder) openCampaign(line string) {
	b.seal()

	name := line
	if _, after, ok := strings.Cut(line, ":"); ok {
		name = strings.TrimSpace(after)
	}
	b.current = NewRecord()
	b.current.Set(KeyCampaignName, Scalar(name))
}

// openSection handles a numbered header. A header carrying an inline value
// becomes a scalar section immediately; a bare header opens a fresh
// subsection accumulator instead.
func (b *builder) openSection(line string) {
	if b.current == nil {
		return
	}
	b.flushSub()

	rest := line[2:] // strip the leading digit and period
	head, after, hasColon := strings.Cut(rest, ":")
	b.section = deriveKey(head)
	if b.section == "" {
		return
	}

	if value := strings.TrimSpace(after); hasColon && value != "" {
		b.current.Set(b.section, Scalar(value))
		return
	}
	b.sub = orderedmap.New[string, string]()
}

// addSubsectionLine records one bulleted sub-key. Later duplicates overwrite
// earlier ones. Bullets arriving while no accumulator is open are dropped.
func (b *builder) addSubsectionLine(line string) {
	if b.current == nil || b.sub == nil {
		return
	}

	rest := strings.TrimLeft(line, "- ")
	key, after, hasColon := strings.Cut(rest, ":")
	if !hasColon {
		b.sub.Set(deriveKey(rest), rest)
		return
	}
	if k := deriveKey(key); k != "" {
		b.sub.Set(k, strings.TrimSpace(after))
	}
}

// addKeyValue assigns a bare key:value line as a top-level scalar on the
// open record. Lines arriving before the first campaign marker are ignored.
func (b *builder) addKeyValue(line string) {
	if b.current == nil {
		return
	}
	key, after, hasColon := strings.Cut(line, ":")
	if !hasColon {
		return
	}
	if k := deriveKey(key); k != "" {
		b.current.Set(k, Scalar(strings.TrimSpace(after)))
	}
}

// flushSub attaches the open accumulator to its owning section. An empty
// accumulator is discarded so a bare header with no bullets leaves no key.
func (b *builder) flushSub() {
	if b.current != nil && b.section != "" && b.sub != nil && b.sub.Len() > 0 {
		b.current.Set(b.section, Value{Sub: b.sub})
	}
	b.sub = nil
	b.section = ""
}

// seal flushes and appends the open record, in input order.
func (b *builder) seal() {
	b.flushSub()
	if b.current != nil {
		b.sealed = append(b.sealed, b.current)
		b.current = nil
	}
}

// deriveKey lowercases a header phrase and joins its words with underscores,
// e.g. "Visual Theme Description" -> "visual_theme_description".
func deriveKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}
