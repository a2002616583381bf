// Package research gathers and analyzes company information: it generates
// research questions, collects findings through web search, and distills
// them into a structured report.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"

	"adforge/pkg/cache"
	"adforge/pkg/inference"
	"adforge/pkg/retrying"
	"adforge/pkg/schema"
	"adforge/pkg/utils"
)

// PurposeResearch tags research reports in the cache tiers.
const PurposeResearch = "research"

// findingsChunkLimit caps how much collected text goes into one analysis
// call; longer findings are analyzed chunk by chunk.
const findingsChunkLimit = 12000

// Agent runs the research pipeline for one company at a time.
type Agent struct {
	inferencer inference.Inferencer
	searcher   Searcher
	cache      *cache.Manager
	logger     *log.Logger
}

func NewAgent(inf inference.Inferencer, searcher Searcher, c *cache.Manager) *Agent {
	return &Agent{
		inferencer: inf,
		searcher:   searcher,
		cache:      c,
		logger:     log.Default().With("agent", "research"),
	}
}

// GenerateQuestions produces categorized research questions for a company.
func (a *Agent) GenerateQuestions(ctx context.Context, company string) (string, error) {
	return retrying.DoWithData(ctx, func() (string, error) {
		return a.inferencer.Infer(ctx, nil, questionSystemPrompt,
			"Generate research questions for: "+company)
	})
}

// Collect runs web searches for the company across the research
// categories and concatenates the findings.
func (a *Agent) Collect(ctx context.Context, company string) (string, error) {
	queries := []string{
		company + " company overview products services",
		company + " brand voice marketing social media",
		company + " competitors market position",
		company + " target audience customers",
	}

	var sb strings.Builder
	for _, q := range queries {
		findings, err := a.searcher.Search(ctx, q)
		if err != nil {
			a.logger.Warn("search failed, continuing with partial findings", "query", q, "err", err)
			continue
		}
		if findings == "" {
			continue
		}
		fmt.Fprintf(&sb, "Search: %s\n%s\n\n", q, findings)
	}

	collected := strings.TrimSpace(sb.String())
	if collected == "" {
		return "", fmt.Errorf("no findings collected for %q", company)
	}
	return collected, nil
}

// Analyze distills collected findings into a structured profile. Findings
// longer than the analysis window are processed in chunks and the partial
// analyses concatenated.
func (a *Agent) Analyze(ctx context.Context, collected string) (string, error) {
	chunks := utils.ChunkText(collected, findingsChunkLimit)
	if len(chunks) == 0 {
		return "", fmt.Errorf("nothing to analyze")
	}

	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		analysis, err := retrying.DoWithData(ctx, func() (string, error) {
			return a.inferencer.Infer(ctx, nil, analysisSystemPrompt,
				"Analyze the following company data:\n"+chunk)
		})
		if err != nil {
			return "", fmt.Errorf("analyze chunk %d/%d: %w", i+1, len(chunks), err)
		}
		parts = append(parts, analysis)
	}
	return strings.Join(parts, "\n\n"), nil
}

// AnalyzeStructured maps collected findings onto the CompanyAnalysis shape
// using structured outputs.
func (a *Agent) AnalyzeStructured(ctx context.Context, collected string) (*schema.CompanyAnalysis, error) {
	params := &openai.ChatCompletionNewParams{
		ResponseFormat: schema.CompanyAnalysisResponseFormat(),
	}
	raw, err := retrying.DoWithData(ctx, func() (string, error) {
		return a.inferencer.Infer(ctx, params, analysisSystemPrompt,
			"Analyze the following company data:\n"+collected)
	})
	if err != nil {
		return nil, err
	}

	var analysis schema.CompanyAnalysis
	if err := json.Unmarshal([]byte(utils.CleanJSON(raw)), &analysis); err != nil {
		return nil, fmt.Errorf("decode company analysis: %w", err)
	}
	return &analysis, nil
}

// Run produces the full research report for a company, serving repeat
// requests from the cache tiers. forceFresh regenerates even when a
// cached report exists.
func (a *Agent) Run(ctx context.Context, company string, forceFresh bool) (cache.Entry, error) {
	key := cache.Key{Subject: company, Purpose: PurposeResearch}
	return a.cache.GetOrGenerate(ctx, key, func(ctx context.Context) (string, error) {
		return a.report(ctx, company)
	}, forceFresh)
}

func (a *Agent) report(ctx context.Context, company string) (string, error) {
	a.logger.Info("researching company", "company", company)

	questions, err := a.GenerateQuestions(ctx, company)
	if err != nil {
		return "", fmt.Errorf("generate questions: %w", err)
	}

	findings, err := a.Collect(ctx, company)
	if err != nil {
		return "", fmt.Errorf("collect findings: %w", err)
	}
	if n, err := utils.NumTokens(findings); err == nil {
		a.logger.Debug("collected findings", "company", company, "tokens", n)
	}

	analysis, err := a.Analyze(ctx, findings)
	if err != nil {
		return "", fmt.Errorf("analyze findings: %w", err)
	}

	report := fmt.Sprintf(
		"Research Questions:\n%s\n\nRaw Findings:\n%s\n\nAnalysis:\n%s",
		questions, findings, analysis)
	return report, nil
}
