// Package resolver turns a user profile into a recommendation stack through
// the archetype, generator and static fallback tiers.
//
// Resolution is an explicit state machine:
//
//	start -> normalize -> matching -> annotating -> resolved          (cached)
//	start -> normalize -> matching -> generating -> annotating -> resolved
//	generating | annotating -> fallback -> resolved                   (on error)
//
// No state is entered twice. A panic inside any state is recovered into the
// fallback state, so a valid profile always produces a stack.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"example.com/supplementstack/internal/annotate"
	"example.com/supplementstack/internal/domain"
	"example.com/supplementstack/internal/events"
	"example.com/supplementstack/internal/fallback"
	"example.com/supplementstack/internal/logging"
	"example.com/supplementstack/internal/matcher"
	"example.com/supplementstack/internal/narrative"
	"example.com/supplementstack/internal/normalize"
	"example.com/supplementstack/internal/observability"
	"example.com/supplementstack/internal/selector"
)

// State is one step of a resolution.
type State string

const (
	StateStart      State = "start"
	StateNormalize  State = "normalize"
	StateMatching   State = "matching"
	StateGenerating State = "generating"
	StateAnnotating State = "annotating"
	StateFallback   State = "fallback"
	StateResolved   State = "resolved"
)

// Config tunes resolution.
type Config struct {
	// AcceptanceThreshold is the minimum archetype score for the cached path.
	AcceptanceThreshold int
	Policy              matcher.Policy
	NarrativeTimeout    time.Duration
	PublishTimeout      time.Duration
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		AcceptanceThreshold: 60,
		Policy:              matcher.DefaultPolicy(),
		NarrativeTimeout:    3 * time.Second,
		PublishTimeout:      2 * time.Second,
	}
}

// Result is a resolved stack with its trace.
type Result struct {
	Stack  domain.RecommendationStack
	States []State
	// Match is the best archetype match, nil when no archetype was scored.
	Match   *domain.MatchResult
	Skipped []selector.Skip
	// Cause is the recovered error that sent resolution to fallback.
	Cause error
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDescriber enables narrative enrichment.
func WithDescriber(d narrative.Describer) Option {
	return func(r *Resolver) { r.describer = d }
}

// WithPublisher sets the event publisher.
func WithPublisher(p events.Publisher) Option {
	return func(r *Resolver) { r.publisher = p }
}

// WithIDGenerator overrides stack id generation.
func WithIDGenerator(fn func() string) Option {
	return func(r *Resolver) { r.newID = fn }
}

// WithClock overrides time.Now.
func WithClock(fn func() time.Time) Option {
	return func(r *Resolver) { r.now = fn }
}

// Resolver orchestrates a resolution. It is safe for concurrent use.
type Resolver struct {
	catalog    domain.CatalogReader
	archetypes domain.ArchetypeReader
	matcher    *matcher.Matcher
	selector   *selector.Selector
	describer  narrative.Describer
	publisher  events.Publisher
	cfg        Config
	newID      func() string
	now        func() time.Time
	logger     zerolog.Logger
}

// New constructs a Resolver reading items from catalog and archetypes from archetypes.
func New(catalog domain.CatalogReader, archetypes domain.ArchetypeReader, cfg Config, opts ...Option) *Resolver {
	if cfg.NarrativeTimeout <= 0 {
		cfg.NarrativeTimeout = DefaultConfig().NarrativeTimeout
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = DefaultConfig().PublishTimeout
	}
	r := &Resolver{
		catalog:    catalog,
		archetypes: archetypes,
		matcher:    matcher.New(cfg.Policy),
		selector:   selector.New(catalog),
		describer:  narrative.Noop{},
		publisher:  events.NoopPublisher{},
		cfg:        cfg,
		newID:      uuid.NewString,
		now:        time.Now,
		logger:     logging.WithComponent("resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the stack for profile. The only errors are a
// *domain.ValidationError for malformed input and the context's error when
// ctx is done before resolution completes.
func (r *Resolver) Resolve(ctx context.Context, profile domain.UserProfile) (domain.RecommendationStack, error) {
	res, err := r.ResolveDetailed(ctx, profile)
	if err != nil {
		return domain.RecommendationStack{}, err
	}
	return res.Stack, nil
}

// ResolveDetailed is Resolve with the state trace, match and packing skips.
func (r *Resolver) ResolveDetailed(ctx context.Context, profile domain.UserProfile) (Result, error) {
	started := r.now()
	run := &run{Resolver: r, res: &Result{}}
	run.enter(StateStart)

	if err := profile.Validate(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	run.enter(StateNormalize)
	run.profile = normalize.Profile(profile)

	run.enter(StateMatching)
	var items []domain.CatalogItem
	var archetype *domain.Archetype
	if err := guard(StateMatching, func() error {
		var err error
		items, archetype, err = run.matching(ctx)
		return err
	}); err != nil {
		// Matching failures only skip the cached tier.
		r.logger.Debug().Err(err).Msg("cached tier unavailable")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if archetype == nil {
		run.enter(StateGenerating)
		err := guard(StateGenerating, func() error {
			var err error
			items, err = run.generating(ctx)
			return err
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Result{}, ctxErr
			}
			return run.fallback(ctx, &domain.GenerationError{Stage: string(StateGenerating), Err: err}, started), nil
		}
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	run.enter(StateAnnotating)
	err := guard(StateAnnotating, func() error {
		return run.annotating(ctx, items, archetype)
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		return run.fallback(ctx, &domain.GenerationError{Stage: string(StateAnnotating), Err: err}, started), nil
	}

	run.enter(StateResolved)
	run.finish(ctx, started)
	return *run.res, nil
}

// run holds the per-resolution state.
type run struct {
	*Resolver
	res     *Result
	profile domain.NormalizedProfile
}

func (r *run) enter(s State) {
	r.res.States = append(r.res.States, s)
}

// matching returns the archetype's items when the best match is acceptable.
// A nil archetype means the cached tier does not apply.
func (r *run) matching(ctx context.Context) ([]domain.CatalogItem, *domain.Archetype, error) {
	archetypes, err := r.archetypes.ListArchetypes(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list archetypes: %w", err)
	}
	match, ok := r.matcher.Match(r.profile, archetypes)
	if !ok {
		return nil, nil, fmt.Errorf("%w: no archetypes", domain.ErrNoCandidate)
	}
	r.res.Match = &match
	observability.RecordMatchScore(match.Score)

	if match.Score < r.cfg.AcceptanceThreshold {
		return nil, nil, nil
	}

	var best domain.Archetype
	for _, a := range archetypes {
		if a.ID == match.ArchetypeID {
			best = a
			break
		}
	}
	items, err := r.catalog.GetItems(ctx, best.SupplementIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("archetype %s items: %w", best.ID, err)
	}
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("%w: archetype %s has no items", domain.ErrNoCandidate, best.ID)
	}
	// The archetype's list is taken whole or not at all: any diet conflict or
	// a total above the budget ceiling sends the profile to the generator.
	var total domain.Cents
	for _, item := range items {
		if !item.CompatibleWith(r.profile.Diet) {
			return nil, nil, nil
		}
		total += item.Price
	}
	if total > r.profile.Profile.BudgetMonthly {
		return nil, nil, nil
	}
	return items, &best, nil
}

func (r *run) generating(ctx context.Context) ([]domain.CatalogItem, error) {
	sel, err := r.selector.Select(ctx, r.profile)
	if err != nil {
		return nil, err
	}
	r.res.Skipped = sel.Skipped
	return sel.Items, nil
}

func (r *run) annotating(ctx context.Context, items []domain.CatalogItem, archetype *domain.Archetype) error {
	synergies, warnings := annotate.Annotate(items)

	stackItems := make([]domain.StackItem, 0, len(items))
	for _, item := range items {
		stackItems = append(stackItems, domain.StackItem{
			CatalogItemID: item.ID,
			Name:          item.Name,
			Brand:         item.Brand,
			Category:      item.Category,
			Dosage:        item.Dosage,
			Timing:        item.Timing,
			Reasoning:     item.Rationale,
			Price:         item.Price,
		})
	}

	stack := domain.RecommendationStack{
		ID:                r.newID(),
		Items:             stackItems,
		TotalMonthlyCost:  domain.SumPrices(stackItems),
		EvidenceScore:     domain.EvidenceScore(items),
		Synergies:         synergies,
		Contraindications: warnings,
		Source:            domain.SourceGenerated,
	}
	if archetype != nil {
		stack.Source = domain.SourceCached
		stack.Name = archetype.Name
		stack.ArchetypeID = archetype.ID
		score := r.res.Match.Score
		stack.MatchScore = &score
	} else {
		stack.Name = narrative.GoalTitle(r.profile.PrimaryGoal()) + " Stack"
	}
	if stack.Source == domain.SourceGenerated && stack.TotalMonthlyCost > r.profile.Profile.BudgetMonthly {
		return fmt.Errorf("generated stack costs %s over budget %s", stack.TotalMonthlyCost, r.profile.Profile.BudgetMonthly)
	}

	stack.Description = narrative.Template(stack, r.profile)
	if text, err := r.enrich(ctx, stack); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("stack_id", stack.ID).Msg("narrative enrichment skipped")
	} else if text != "" {
		stack.Description = text
	}

	r.res.Stack = stack
	return nil
}

type describeOutcome struct {
	text string
	err  error
}

// enrich runs the describer under the narrative timeout. A describer that
// ignores its context is abandoned when the timeout elapses.
func (r *run) enrich(ctx context.Context, stack domain.RecommendationStack) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.NarrativeTimeout)
	defer cancel()

	done := make(chan describeOutcome, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- describeOutcome{err: fmt.Errorf("describer panicked: %v", p)}
			}
		}()
		text, err := r.describer.Describe(ctx, stack, r.profile)
		done <- describeOutcome{text: strings.TrimSpace(text), err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			observability.RecordNarrativeFailure(failureReason(out.err))
			return "", &domain.EnrichmentError{Err: out.err}
		}
		return out.text, nil
	case <-ctx.Done():
		observability.RecordNarrativeFailure("timeout")
		return "", &domain.EnrichmentError{Err: ctx.Err()}
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case narrative.IsCircuitOpen(err):
		return "circuit_open"
	default:
		return "error"
	}
}

func (r *run) fallback(ctx context.Context, cause error, started time.Time) Result {
	r.enter(StateFallback)
	logging.Ctx(ctx).Warn().Err(cause).Msg("resolution fell back to static stack")
	r.res.Stack = fallback.Stack()
	r.res.Cause = cause
	r.enter(StateResolved)
	r.finish(ctx, started)
	return *r.res
}

func (r *run) finish(ctx context.Context, started time.Time) {
	stack := r.res.Stack
	elapsed := r.now().Sub(started)
	observability.RecordResolution(string(stack.Source), elapsed)

	states := make([]string, len(r.res.States))
	for i, s := range r.res.States {
		states[i] = string(s)
	}
	logging.Ctx(ctx).Info().
		Str("stack_id", stack.ID).
		Str("source", string(stack.Source)).
		Str("archetype_id", stack.ArchetypeID).
		Int("items", len(stack.Items)).
		Str("total", stack.TotalMonthlyCost.String()).
		Strs("states", states).
		Dur("elapsed", elapsed).
		Msg("recommendation resolved")

	evt := events.RecommendationResolved{
		RequestID:        logging.RequestIDFromContext(ctx),
		StackID:          stack.ID,
		Source:           string(stack.Source),
		ArchetypeID:      stack.ArchetypeID,
		MatchScore:       stack.MatchScore,
		PrimaryGoal:      string(r.profile.PrimaryGoal()),
		ItemIDs:          stack.ItemIDs(),
		TotalMonthlyCost: stack.TotalMonthlyCost.Dollars(),
		States:           states,
		ResolvedAt:       r.now().UTC(),
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.cfg.PublishTimeout)
	defer cancel()
	if err := r.publisher.PublishResolved(pubCtx, evt); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("stack_id", stack.ID).Msg("publish resolution event failed")
	}
}

// guard runs fn, converting a panic into an error.
func guard(state State, fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic in %s: %v", state, p)
		}
	}()
	return fn()
}
