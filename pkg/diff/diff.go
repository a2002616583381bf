// Package diff compares two generations of campaign output: which
// campaigns appeared, disappeared, or changed, field by field.
package diff

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"adforge/pkg/campaign"
	"adforge/pkg/utils"
)

type ChangeType int

const (
	Unchanged ChangeType = iota
	Added
	Removed
	Modified
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

type WordDelta struct {
	Op   Op
	Text string
}

type StringDiff struct {
	Old    string
	New    string
	Deltas []WordDelta
}

type FieldDiff struct {
	Path string
	Str  StringDiff
}

// CampaignDiff describes how one named campaign changed between two
// generations.
type CampaignDiff struct {
	Name       string
	State      ChangeType
	FieldDiffs []FieldDiff
}

// renameThreshold is how similar two campaign names must be before an
// unmatched old/new pair counts as a rename rather than a remove + add.
const renameThreshold = 0.7

// Campaigns matches old and new records by campaign name and diffs every
// section, flattening subsections into dotted paths. Names that changed
// only slightly between generations are paired up as a modification.
func Campaigns(oldR, newR []*campaign.Record) []CampaignDiff {
	omap := map[string]*campaign.Record{}
	nmap := map[string]*campaign.Record{}

	for _, r := range oldR {
		omap[r.Name()] = r
	}
	for _, r := range newR {
		nmap[r.Name()] = r
	}

	var out []CampaignDiff
	for name, o := range omap {
		if n, ok := nmap[name]; ok {
			fd := fieldDiffs(o, n)
			state := Unchanged
			if len(fd) > 0 {
				state = Modified
			}
			out = append(out, CampaignDiff{Name: name, State: state, FieldDiffs: fd})
			delete(omap, name)
			delete(nmap, name)
		}
	}

	// Pair leftovers whose names are close enough to be the same campaign
	// with a touched-up title.
	for oname, o := range omap {
		bestName, bestScore := "", 0.0
		for nname := range nmap {
			if score := utils.Similarity(oname, nname); score > bestScore {
				bestName, bestScore = nname, score
			}
		}
		if bestScore < renameThreshold {
			continue
		}
		out = append(out, CampaignDiff{Name: bestName, State: Modified, FieldDiffs: fieldDiffs(o, nmap[bestName])})
		delete(omap, oname)
		delete(nmap, bestName)
	}

	for name := range omap {
		out = append(out, CampaignDiff{Name: name, State: Removed})
	}
	for name := range nmap {
		out = append(out, CampaignDiff{Name: name, State: Added})
	}

	slices.SortFunc(out, func(a, b CampaignDiff) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

// Analyses word-diffs two versions of the same analysis text.
func Analyses(old, new string) StringDiff {
	return strDiff(old, new)
}

// fieldDiffs flattens both records and diffs the union of their paths.
func fieldDiffs(a, b *campaign.Record) []FieldDiff {
	apaths, avals := flatten(a)
	bpaths, bvals := flatten(b)

	seen := map[string]struct{}{}
	order := make([]string, 0, len(apaths)+len(bpaths))
	for _, p := range apaths {
		seen[p] = struct{}{}
		order = append(order, p)
	}
	for _, p := range bpaths {
		if _, ok := seen[p]; !ok {
			order = append(order, p)
		}
	}

	var out []FieldDiff
	for _, path := range order {
		av, bv := avals[path], bvals[path]
		if av == bv {
			continue
		}
		out = append(out, FieldDiff{Path: path, Str: strDiff(av, bv)})
	}
	return out
}

// flatten renders a record as ordered dotted paths to scalar strings.
func flatten(r *campaign.Record) ([]string, map[string]string) {
	var paths []string
	vals := map[string]string{}
	for _, key := range r.Keys() {
		v, _ := r.Get(key)
		if !v.IsSub() {
			paths = append(paths, key)
			vals[key] = v.Text
			continue
		}
		for pair := v.Sub.Oldest(); pair != nil; pair = pair.Next() {
			path := key + "." + pair.Key
			paths = append(paths, path)
			vals[path] = pair.Value
		}
	}
	return paths, vals
}

func strDiff(a, b string) StringDiff {
	if a == b {
		return StringDiff{Old: a, New: b, Deltas: []WordDelta{{Op: Equal, Text: a}}}
	}
	words := utils.DiffWords(a, b)
	deltas := make([]WordDelta, 0, len(words))
	for _, w := range words {
		switch w.Op {
		case utils.WordRemoved:
			deltas = append(deltas, WordDelta{Op: Delete, Text: w.Text})
		case utils.WordAdded:
			deltas = append(deltas, WordDelta{Op: Insert, Text: w.Text})
		default:
			deltas = append(deltas, WordDelta{Op: Equal, Text: w.Text})
		}
	}
	return StringDiff{Old: a, New: b, Deltas: coalesceSpaces(deltas)}
}

func coalesceSpaces(in []WordDelta) []WordDelta {
	out := make([]WordDelta, 0, len(in))
	flush := func(op Op, buf *strings.Builder) {
		if buf.Len() == 0 {
			return
		}
		out = append(out, WordDelta{Op: op, Text: buf.String()})
		buf.Reset()
	}
	var curOp Op = -1
	var buf strings.Builder
	for _, d := range in {
		if strings.TrimSpace(d.Text) == "" && d.Op == Equal {
			buf.WriteString(d.Text)
			continue
		}
		if curOp != d.Op && curOp != -1 {
			flush(curOp, &buf)
		}
		if curOp != d.Op {
			curOp = d.Op
		}
		buf.WriteString(d.Text)
	}
	flush(curOp, &buf)
	return out
}

const (
	ansiReset = "\x1b[0m"
	fgGreen   = "\x1b[32m"
	fgRed     = "\x1b[31m"
	fgYellow  = "\x1b[33m"
	fgCyan    = "\x1b[36m"
	faint     = "\x1b[2m"
	uline     = "\x1b[4m"
	strike    = "\x1b[9m"
)

func renderStringDiff(sd StringDiff) string {
	var b strings.Builder
	for _, d := range sd.Deltas {
		switch d.Op {
		case Equal:
			b.WriteString(d.Text)
		case Insert:
			fmt.Fprintf(&b, "%s%s%s%s", fgGreen, uline, d.Text, ansiReset)
		case Delete:
			fmt.Fprintf(&b, "%s%s%s%s", fgRed, strike, d.Text, ansiReset)
		}
	}
	return b.String()
}

// Print renders the diff set for terminal output.
func Print(w io.Writer, diffs []CampaignDiff) {
	if len(diffs) == 0 {
		return
	}
	fmt.Fprintln(w, fgCyan+"Campaigns"+ansiReset)
	for _, c := range diffs {
		tag := map[ChangeType]string{
			Added:     fgGreen + "[+]" + ansiReset,
			Removed:   fgRed + "[-]" + ansiReset,
			Modified:  fgYellow + "[~]" + ansiReset,
			Unchanged: faint + "[=]" + ansiReset,
		}[c.State]
		fmt.Fprintf(w, "  %s %s\n", tag, c.Name)
		for _, f := range c.FieldDiffs {
			fmt.Fprintf(w, "    %s: %s\n", f.Path, renderStringDiff(f.Str))
		}
	}
}
