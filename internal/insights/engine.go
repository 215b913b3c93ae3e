// Package insights generates, caches, and manages the lifecycle of
// optimization recommendations for connected channels. Generation runs a
// model-backed pipeline with a deterministic rule fallback; results persist
// as atomic batches so dashboards always see exactly one open batch per
// channel connection.
package insights

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/optimizer/internal/domain"
	"github.com/ignite/optimizer/internal/genai"
	"github.com/ignite/optimizer/internal/prompt"
	"github.com/ignite/optimizer/internal/provider"
)

// DefaultFreshFor is how long an open batch satisfies requests before a
// regeneration is attempted.
const DefaultFreshFor = 6 * time.Hour

// DefaultLookbackDays is the analysis window handed to adapters.
const DefaultLookbackDays = 30

// Wait window for a contended generation lock: the loser polls for the
// winner's committed batch instead of generating a duplicate.
const (
	defaultLockWaitFor   = 2 * time.Second
	defaultLockPollEvery = 200 * time.Millisecond
)

// Engine orchestrates the recommendation pipeline: freshness check, channel
// summary, prompt rendering, generation, scoring, and atomic persistence.
type Engine struct {
	repo     Repository
	adapters map[domain.SourceType]provider.Adapter
	resolver *prompt.Resolver
	client   genai.Client
	lock     *GenerationLock // optional

	freshFor     time.Duration
	lookbackDays int

	lockWaitFor   time.Duration
	lockPollEvery time.Duration
}

// EngineParams collects the engine's collaborators. Lock is optional; when
// nil, concurrent regenerations are serialized only by the repository
// transaction.
type EngineParams struct {
	Repo         Repository
	Adapters     map[domain.SourceType]provider.Adapter
	Resolver     *prompt.Resolver
	Client       genai.Client
	Lock         *GenerationLock
	FreshFor     time.Duration
	LookbackDays int
}

func NewEngine(p EngineParams) *Engine {
	if p.FreshFor == 0 {
		p.FreshFor = DefaultFreshFor
	}
	if p.LookbackDays == 0 {
		p.LookbackDays = DefaultLookbackDays
	}
	return &Engine{
		repo:          p.Repo,
		adapters:      p.Adapters,
		resolver:      p.Resolver,
		client:        p.Client,
		lock:          p.Lock,
		freshFor:      p.FreshFor,
		lookbackDays:  p.LookbackDays,
		lockWaitFor:   defaultLockWaitFor,
		lockPollEvery: defaultLockPollEvery,
	}
}

// GetOrGenerate returns the channel's recommendations, regenerating when
// the open batch is stale or force is set. A fresh open batch is returned
// as-is; an empty channel short-circuits to the insufficient-data response
// without touching storage.
func (e *Engine) GetOrGenerate(ctx context.Context, accountID string, source domain.SourceType, sourceID string, force bool) (Response, error) {
	adapter, ok := e.adapters[source]
	if !ok {
		return Response{}, fmt.Errorf("%w: %s", ErrUnknownSource, source)
	}

	if !force {
		recs, fresh, err := e.repo.FreshOpenBatch(ctx, accountID, source, sourceID, e.freshFor)
		if err != nil {
			return Response{}, fmt.Errorf("load open batch: %w", err)
		}
		if fresh {
			return formatBatch(recs, true), nil
		}
	}

	if e.lock != nil {
		release, acquired := e.lock.Acquire(ctx, accountID, source, sourceID)
		if !acquired {
			// Another process is generating; wait for its committed batch
			// rather than paying for a duplicate generation.
			recs, err := e.waitForWinner(ctx, accountID, source, sourceID)
			if err != nil {
				return Response{}, err
			}
			return formatBatch(recs, true), nil
		}
		defer release()
	}

	summary, err := adapter.BuildContext(ctx, accountID, sourceID, e.lookbackDays)
	if err != nil {
		return Response{}, fmt.Errorf("build %s context: %w", source, err)
	}
	if summary.IsEmpty() {
		log.Printf("[insights] %s/%s/%s: no data, skipping generation", accountID, source, sourceID)
		return insufficientDataResponse(), nil
	}

	raw, fromModel := e.generate(ctx, adapter, summary)

	now := time.Now().UTC()
	batchID := uuid.NewString()
	recs := make([]domain.Recommendation, 0, len(raw))
	for _, r := range raw {
		recs = append(recs, domain.Recommendation{
			ID:             uuid.NewString(),
			AccountID:      accountID,
			BatchID:        batchID,
			Source:         source,
			SourceID:       sourceID,
			Category:       r.Category,
			Title:          r.Title,
			Description:    r.Description,
			ExpectedImpact: r.ExpectedImpact,
			DataPoints:     r.DataPoints,
			Action:         r.Action,
			Severity:       r.Severity,
			Confidence:     scoreConfidence(r, summary, fromModel),
			Status:         domain.StatusOpen,
			CreatedAt:      now,
		})
	}

	if err := e.repo.ReplaceOpenBatch(ctx, accountID, source, sourceID, recs); err != nil {
		return Response{}, fmt.Errorf("store %s batch: %w", source, err)
	}
	log.Printf("[insights] %s/%s/%s: stored batch %s (%d recommendations, model=%t)",
		accountID, source, sourceID, batchID, len(recs), fromModel)

	return formatBatch(recs, false), nil
}

// waitForWinner polls the open batch while another process holds the
// generation lock. An existing batch (fresh or stale) satisfies the caller
// immediately. An empty triple means the winner has not committed yet; that
// must not be mistaken for a clean bill of health, so the poll ends in
// ErrGenerationInProgress instead of an empty batch.
func (e *Engine) waitForWinner(ctx context.Context, accountID string, source domain.SourceType, sourceID string) ([]domain.Recommendation, error) {
	deadline := time.Now().Add(e.lockWaitFor)
	for {
		recs, err := e.repo.OpenBatch(ctx, accountID, source, sourceID)
		if err != nil {
			return nil, fmt.Errorf("load open batch: %w", err)
		}
		if len(recs) > 0 {
			return recs, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s/%s/%s", ErrGenerationInProgress, accountID, source, sourceID)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(e.lockPollEvery):
		}
	}
}

// generate runs the model path and falls back to the rule engine on any
// failure. The bool reports whether the result came from the model.
func (e *Engine) generate(ctx context.Context, adapter provider.Adapter, summary provider.MetricsSummary) ([]domain.RawRecommendation, bool) {
	cfg, err := e.resolver.Resolve(ctx, adapter.PromptKey())
	if err != nil {
		log.Printf("[insights] prompt resolve failed for %s: %v, using fallback rules", adapter.Source(), err)
		return fallbackRecommendations(adapter, summary), false
	}

	rendered, err := e.resolver.Render(cfg, prompt.Bindings(summary))
	if err != nil {
		log.Printf("[insights] prompt render failed for %s: %v, using fallback rules", adapter.Source(), err)
		return fallbackRecommendations(adapter, summary), false
	}

	recs, err := e.client.Generate(ctx, genai.Request{
		SystemMessage: cfg.SystemMessage,
		Prompt:        rendered,
		Model:         cfg.Model,
		Temperature:   cfg.Temperature,
		MaxTokens:     cfg.MaxTokens,
	})
	if err != nil {
		log.Printf("[insights] generation failed for %s: %v, using fallback rules", adapter.Source(), err)
		return fallbackRecommendations(adapter, summary), false
	}
	return recs, true
}

// Open returns the current open batch without triggering generation.
func (e *Engine) Open(ctx context.Context, accountID string, source domain.SourceType, sourceID string) (Response, error) {
	if !source.Valid() {
		return Response{}, fmt.Errorf("%w: %s", ErrUnknownSource, source)
	}
	recs, err := e.repo.OpenBatch(ctx, accountID, source, sourceID)
	if err != nil {
		return Response{}, fmt.Errorf("load open batch: %w", err)
	}
	return formatBatch(recs, true), nil
}

// Apply marks a recommendation applied on behalf of actorID.
func (e *Engine) Apply(ctx context.Context, recommendationID, actorID, notes string) (domain.Action, error) {
	return e.repo.Apply(ctx, recommendationID, actorID, notes)
}

// Dismiss marks a recommendation dismissed on behalf of actorID.
func (e *Engine) Dismiss(ctx context.Context, recommendationID, actorID, notes string) (domain.Action, error) {
	return e.repo.Dismiss(ctx, recommendationID, actorID, notes)
}
