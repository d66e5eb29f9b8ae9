// Package pipeline sequences one search request end to end: alias
// expansion, query building, provider fan-out, extraction, scoring,
// merging, and response assembly.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mkarpov/rolefinder/internal/alias"
	"github.com/mkarpov/rolefinder/internal/extract"
	"github.com/mkarpov/rolefinder/internal/llm"
	"github.com/mkarpov/rolefinder/internal/merge"
	"github.com/mkarpov/rolefinder/internal/model"
	"github.com/mkarpov/rolefinder/internal/override"
	"github.com/mkarpov/rolefinder/internal/query"
	"github.com/mkarpov/rolefinder/internal/score"
	"github.com/mkarpov/rolefinder/internal/search"
	"github.com/mkarpov/rolefinder/internal/worker"
)

// Pipeline is the per-process orchestrator. It holds no per-request
// state, so requests may run fully in parallel.
type Pipeline struct {
	cfg        *model.Config
	expander   *alias.Expander
	providers  []search.Provider
	extractor  *extract.Extractor
	scorer     *score.Scorer
	merger     *merge.Merger
	overrides  *override.Table
	summarizer llm.Provider
}

// New builds a pipeline from config, wiring the enabled providers and
// the optional LLM summarizer.
func New(cfg *model.Config) (*Pipeline, error) {
	fetcher := search.NewFetcher(cfg)
	providers := search.Providers(cfg, fetcher)

	summarizer, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}

	return NewWithProviders(cfg, providers, summarizer), nil
}

// NewWithProviders builds a pipeline around an explicit provider set.
// Tests use it to substitute stub providers.
func NewWithProviders(cfg *model.Config, providers []search.Provider, summarizer llm.Provider) *Pipeline {
	scorer := score.NewScorer(cfg.Scoring)
	return &Pipeline{
		cfg:        cfg,
		expander:   alias.NewExpander(),
		providers:  providers,
		extractor:  extract.NewExtractor(cfg.Trusted),
		scorer:     scorer,
		merger:     merge.NewMerger(scorer),
		overrides:  override.NewTable(),
		summarizer: summarizer,
	}
}

// Run executes one request. Only a blank company or designation fails;
// provider errors degrade into a smaller (possibly empty) result set.
// A cancelled context aborts the request and discards partial results.
func (p *Pipeline) Run(ctx context.Context, company, designation string) (*model.SearchResponse, error) {
	company = strings.TrimSpace(company)
	designation = strings.TrimSpace(designation)
	if company == "" || designation == "" {
		return nil, fmt.Errorf("%w: company and designation are required", model.ErrInvalidRequest)
	}

	aliases := p.expander.Expand(designation)
	queries := query.Build(company, designation, aliases, p.cfg.Providers.MaxQueryVariant)

	raw := p.collect(ctx, queries)
	if len(raw) == 0 && ctx.Err() == nil {
		// Relax to company-only queries before giving up entirely.
		raw = p.collect(ctx, query.Fallback(company))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var candidates []model.PersonCandidate
	for i, r := range raw {
		cand, ok := p.extractor.Extract(r, company, aliases)
		if !ok {
			continue
		}
		cand.SeenOrder = i
		cand.Confidence, cand.Signals = p.scorer.Score(cand, company, aliases, 0)
		candidates = append(candidates, *cand)
	}

	merged := p.merger.Merge(candidates, company, aliases)

	resp := &model.SearchResponse{
		Company:                      company,
		Designation:                  designation,
		NormalizedDesignationAliases: aliases,
		Candidates:                   merged,
		RawResults:                   raw,
	}
	if resp.RawResults == nil {
		resp.RawResults = []model.RawSearchResult{}
	}

	switch {
	case len(merged) > 0:
		best := merged[0]
		resp.BestMatch = &best
		if best.Confidence < p.cfg.Scoring.StrongMatch {
			resp.Message = "Low confidence in the best match. Verify the cited sources or refine the designation/company."
		} else {
			resp.Message = "Found at least one likely match."
		}

	default:
		if cand, ok := p.overrides.Find(company, designation); ok {
			resp.BestMatch = cand
			resp.Candidates = []model.PersonCandidate{*cand}
			resp.Message = "Result returned from the built-in knowledge table because web search did not produce a strong match."
			break
		}
		resp.Candidates = []model.PersonCandidate{}
		resp.Message = "No strong match could be identified. Try refining the company or designation."
	}

	p.attachSummary(ctx, resp)
	return resp, nil
}

// attachSummary adds the optional LLM narration. It runs after scoring
// and a failure only costs the summary, never the response.
func (p *Pipeline) attachSummary(ctx context.Context, resp *model.SearchResponse) {
	if p.summarizer == nil {
		return
	}
	summary, err := p.summarizer.Summarize(ctx, *resp)
	if err != nil {
		if p.cfg.Verbose {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary failed: %v\n", err)
		}
		return
	}
	resp.LLM = summary
}

// searchJob is one (provider, query) call executed on the fan-out pool.
type searchJob struct {
	seq      int
	provider search.Provider
	query    string
	cfg      *model.Config
}

type searchResult struct {
	seq      int
	provider string
	results  []model.RawSearchResult
	err      error
}

func (r *searchResult) Err() error { return r.err }

// Execute implements worker.Job. Each call gets its own timeout so a
// stalled provider cannot hold up the join.
func (j *searchJob) Execute(ctx context.Context) worker.Result {
	callCtx, cancel := context.WithTimeout(ctx, j.cfg.Providers.PerCallTimeout)
	defer cancel()

	results, err := j.provider.Search(callCtx, j.query)
	return &searchResult{
		seq:      j.seq,
		provider: j.provider.Name(),
		results:  results,
		err:      err,
	}
}

// collect fans the query list out across all providers and returns the
// combined results in a deterministic order (by submission sequence),
// de-duplicated by URL. Provider failures contribute nothing.
func (p *Pipeline) collect(ctx context.Context, queries []string) []model.RawSearchResult {
	if len(p.providers) == 0 || len(queries) == 0 {
		return nil
	}

	pool := worker.NewPool(p.cfg.Providers.FanoutWorkers, len(queries)*len(p.providers))
	pool.Start(ctx)

	seq := 0
	for _, q := range queries {
		for _, prov := range p.providers {
			pool.Submit(ctx, &searchJob{seq: seq, provider: prov, query: q, cfg: p.cfg})
			seq++
		}
	}

	results := pool.Wait()

	collected := make([]*searchResult, 0, len(results))
	for _, r := range results {
		sr := r.(*searchResult)
		if sr.err != nil {
			if p.cfg.Verbose {
				fmt.Fprintf(os.Stderr, "Warning: provider %s failed: %v\n", sr.provider, sr.err)
			}
			continue
		}
		collected = append(collected, sr)
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].seq < collected[j].seq })

	seen := make(map[string]bool)
	var out []model.RawSearchResult
	for _, sr := range collected {
		for _, r := range sr.results {
			if r.URL == "" || seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			out = append(out, r)
		}
	}
	return out
}
