// Package planner assembles weekly plans from templates, optional AI
// enrichment and deterministic fallbacks, then validates and corrects them.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"alcyxob/fitness-planner/internal/ai"
	"alcyxob/fitness-planner/internal/calc"
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/validation"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrRegenerationFailed wraps the AI failure behind a failed regeneration.
var ErrRegenerationFailed = errors.New("plan regeneration failed")

const (
	opGenerate   = "generate"
	opRegenerate = "regenerate"
)

// TemplateSource looks up exact-match templates. *templates.Library
// satisfies it.
type TemplateSource interface {
	FindTrainingTemplate(goal domain.Goal, daysPerWeek, sessionMinutes int, equipment domain.Equipment, level domain.Level) (domain.TrainingTemplate, bool)
	FindNutritionTemplate(goal domain.Goal, dietType domain.DietType, mealsPerDay int, allergies []string) (domain.NutritionTemplate, bool)
}

// Enricher produces AI plan fragments. *ai.Adapter satisfies it.
type Enricher interface {
	Generate(ctx context.Context, prefs domain.UserPreferences, base *ai.BaseTemplate) (*domain.PlanFragment, error)
	Regenerate(ctx context.Context, plan *domain.WeeklyPlan, constraints domain.RegenerationConstraints) (*domain.PlanFragment, error)
	Model() string
}

// Engine runs the generate and regenerate pipelines. It holds no per-call
// state and is safe for concurrent use.
type Engine struct {
	templates TemplateSource
	enricher  Enricher
	rules     domain.ValidationRules
	observer  Observer
	tracer    trace.Tracer
	now       func() time.Time
	newID     func() string
}

type Option func(*Engine)

func WithRules(r domain.ValidationRules) Option {
	return func(e *Engine) { e.rules = r }
}

func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithLogger routes stage events to logger through NewLogObserver.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.observer = NewLogObserver(l) }
}

func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// NewEngine builds an engine. enricher may be nil, in which case generation
// is template and fallback only and regeneration is unavailable.
func NewEngine(templates TemplateSource, enricher Enricher, opts ...Option) *Engine {
	e := &Engine{
		templates: templates,
		enricher:  enricher,
		rules:     domain.DefaultValidationRules(),
		observer:  NewLogObserver(nil),
		tracer:    otel.Tracer("alcyxob/fitness-planner/internal/planner"),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the thresholds the engine validates against.
func (e *Engine) Rules() domain.ValidationRules { return e.rules }

// AIEnabled reports whether an enricher is configured.
func (e *Engine) AIEnabled() bool { return e.enricher != nil }

// sources tracks where each plan section came from during one call.
type sources struct {
	training  domain.SectionSource
	nutrition domain.SectionSource
	aiUsed    bool
}

// generatedBy derives the plan origin tag from the section sources.
func (s sources) generatedBy() domain.GeneratedBy {
	if s.aiUsed {
		if s.training == domain.SourceAI && s.nutrition == domain.SourceAI {
			return domain.GeneratedByAI
		}
		return domain.GeneratedByHybrid
	}
	if s.training == domain.SourceTemplate && s.nutrition == domain.SourceTemplate {
		return domain.GeneratedByTemplate
	}
	return domain.GeneratedByHybrid
}

// GenerateWeeklyPlan builds a plan for userID. useAI asks for enrichment,
// which only happens when a training or nutrition template is missing. AI
// failures fall back to template and deterministic content; the only error
// returned is the context's.
func (e *Engine) GenerateWeeklyPlan(ctx context.Context, userID string, prefs domain.UserPreferences, weekNumber int, useAI bool) (*domain.WeeklyPlan, error) {
	start := e.now()
	ctx, span := e.tracer.Start(ctx, "planner.Generate", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.Int("plan.week", weekNumber),
		attribute.Bool("plan.use_ai", useAI),
	))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if weekNumber < 1 {
		weekNumber = 1
	}

	plan := &domain.WeeklyPlan{
		ID:          e.newID(),
		UserID:      userID,
		WeekNumber:  weekNumber,
		CreatedAt:   start.UTC(),
		Version:     1,
		Preferences: prefs.WithConstraints(nil),
	}
	ev := Event{Operation: opGenerate, UserID: userID, PlanID: plan.ID}

	training, hasTraining := e.templates.FindTrainingTemplate(prefs.Goal, prefs.DaysPerWeek, prefs.SessionTime, prefs.Equipment, prefs.ExperienceLevel())
	nutrition, hasNutrition := e.templates.FindNutritionTemplate(prefs.Goal, prefs.DietType, prefs.MealsPerDay, prefs.Allergies)
	e.emit(ctx, ev, StageTemplateMatch, fmt.Sprintf("training template: %t, nutrition template: %t", hasTraining, hasNutrition), nil)

	var src sources
	dailyCalories := calc.DailyCalories(prefs.Goal, prefs.Biometrics)
	plan.Nutrition.DailyCalories = dailyCalories
	plan.Nutrition.MacroTargets = calc.MacroGrams(dailyCalories, domain.DefaultMacroDistribution)

	if hasTraining {
		plan.Training.WeeklyStructure = training.WeeklyStructure
		plan.Training.Progression = training.Progression.ForWeek(weekNumber)
		plan.Metadata.TemplateIDs = append(plan.Metadata.TemplateIDs, training.ID)
		src.training = domain.SourceTemplate
	}
	if hasNutrition {
		plan.Nutrition.MacroTargets = calc.MacroGrams(dailyCalories, nutrition.MacroDistribution)
		plan.Nutrition.WeeklyMenu = nutrition.WeeklyMenu
		plan.Nutrition.MealPrepTips = nutrition.MealPrepTips
		plan.Metadata.TemplateIDs = append(plan.Metadata.TemplateIDs, nutrition.ID)
		src.nutrition = domain.SourceTemplate
	}

	if useAI && (!hasTraining || !hasNutrition) {
		base := &ai.BaseTemplate{}
		if hasTraining {
			base.Training = &training
		}
		if hasNutrition {
			base.Nutrition = &nutrition
		}
		frag, err := e.callAI(ctx, ev, func(ctx context.Context) (*domain.PlanFragment, error) {
			if e.enricher == nil {
				return nil, &ai.ConfigurationError{Setting: "ai.api_key"}
			}
			return e.enricher.Generate(ctx, prefs, base)
		})
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			e.emit(ctx, ev, StageAIFallback, "ai enrichment failed, continuing with templates", err)
		} else {
			e.mergeFragment(plan, frag, &src)
		}
	}

	e.completeSections(plan, prefs, &src)
	e.emit(ctx, ev, StageMerge, fmt.Sprintf("training from %s, nutrition from %s", src.training, src.nutrition), nil)

	e.validateAndFix(ctx, ev, plan, nil)
	e.finalize(ctx, ev, plan, src, start)
	span.SetAttributes(
		attribute.String("plan.id", plan.ID),
		attribute.String("plan.generated_by", string(plan.Metadata.GeneratedBy)),
		attribute.Bool("plan.valid", plan.Validation.Passed),
	)
	return plan, nil
}

// RegeneratePlan derives a new version of existing adjusted to constraints.
// It always calls the AI; there is no template path, so an AI failure fails
// the call with ErrRegenerationFailed. existing is never modified.
func (e *Engine) RegeneratePlan(ctx context.Context, existing *domain.WeeklyPlan, constraints domain.RegenerationConstraints) (*domain.WeeklyPlan, error) {
	if existing == nil {
		return nil, errors.New("regenerate: existing plan is required")
	}
	start := e.now()
	ctx, span := e.tracer.Start(ctx, "planner.Regenerate", trace.WithAttributes(
		attribute.String("user.id", existing.UserID),
		attribute.String("plan.parent_id", existing.ID),
	))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.enricher == nil {
		err := &ai.ConfigurationError{Setting: "ai.api_key"}
		span.SetStatus(codes.Error, "ai not configured")
		return nil, err
	}

	ev := Event{Operation: opRegenerate, UserID: existing.UserID, PlanID: existing.ID}
	frag, err := e.callAI(ctx, ev, func(ctx context.Context) (*domain.PlanFragment, error) {
		return e.enricher.Regenerate(ctx, existing, constraints)
	})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		span.SetStatus(codes.Error, "regeneration failed")
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %w", ErrRegenerationFailed, err)
	}

	plan := existing.Clone()
	plan.ID = e.newID()
	plan.ParentID = existing.ID
	plan.Version = existing.Version + 1
	plan.CreatedAt = start.UTC()
	plan.Constraints = nil
	if !constraints.IsEmpty() {
		c := constraints
		plan.Constraints = &c
	}
	plan.ArchiveKey = ""
	plan.Metadata.AutoFixes = nil
	plan.Metadata.AIReasoning = ""
	ev.PlanID = plan.ID

	src := sources{
		training:  inheritedSource(existing.Metadata.TrainingSource, len(existing.Training.WeeklyStructure) > 0),
		nutrition: inheritedSource(existing.Metadata.NutritionSource, len(existing.Nutrition.WeeklyMenu) > 0),
	}
	e.mergeFragment(plan, frag, &src)
	prefs := plan.EffectivePreferences()
	e.completeSections(plan, prefs, &src)
	e.emit(ctx, ev, StageMerge, fmt.Sprintf("training from %s, nutrition from %s", src.training, src.nutrition), nil)

	if clamps := applyClamps(plan, plan.Constraints); len(clamps) > 0 {
		plan.Metadata.AutoFixes = append(plan.Metadata.AutoFixes, clamps...)
		e.emit(ctx, ev, StageClamp, fmt.Sprintf("applied %d constraint clamps", len(clamps)), nil)
	}

	e.validateAndFix(ctx, ev, plan, plan.Metadata.AutoFixes)
	e.finalize(ctx, ev, plan, src, start)
	span.SetAttributes(
		attribute.String("plan.id", plan.ID),
		attribute.Int("plan.version", plan.Version),
		attribute.Bool("plan.valid", plan.Validation.Passed),
	)
	return plan, nil
}

// inheritedSource is the source a regenerated section starts from. Untagged
// content is kept and counted as template content.
func inheritedSource(s domain.SectionSource, hasContent bool) domain.SectionSource {
	if s == domain.SourceUnset && hasContent {
		return domain.SourceTemplate
	}
	return s
}

func (e *Engine) callAI(ctx context.Context, ev Event, call func(context.Context) (*domain.PlanFragment, error)) (*domain.PlanFragment, error) {
	ctx, span := e.tracer.Start(ctx, "planner.ai", trace.WithAttributes(attribute.String("plan.operation", ev.Operation)))
	defer span.End()

	began := e.now()
	frag, err := call(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "ai call failed")
		span.RecordError(err)
		e.emit(ctx, ev, StageAICall, "ai call failed", err)
		return nil, err
	}
	span.SetAttributes(
		attribute.Bool("fragment.training", frag.HasTraining()),
		attribute.Bool("fragment.nutrition", frag.HasNutrition()),
	)
	e.emit(ctx, ev, StageAICall, fmt.Sprintf("ai call completed in %s", e.now().Sub(began)), nil)
	return frag, nil
}

// mergeFragment applies the usable parts of an AI fragment. Training replaces
// the current week only when non-empty; nutrition replaces the menu only
// when non-empty, and the targets are re-read from its first day.
func (e *Engine) mergeFragment(plan *domain.WeeklyPlan, frag *domain.PlanFragment, src *sources) {
	if frag.HasTraining() {
		plan.Training.WeeklyStructure = domain.CloneWeek(frag.Training.WeeklyStructure)
		if frag.Training.Progression != "" {
			plan.Training.Progression = frag.Training.Progression
		}
		src.training = domain.SourceAI
		src.aiUsed = true
	}
	if frag.HasNutrition() {
		plan.Nutrition.WeeklyMenu = domain.CloneMenu(frag.Nutrition.WeeklyMenu)
		if len(frag.Nutrition.MealPrepTips) > 0 {
			plan.Nutrition.MealPrepTips = append([]string(nil), frag.Nutrition.MealPrepTips...)
		}
		first := frag.Nutrition.WeeklyMenu[0]
		if first.TotalCalories > 0 {
			plan.Nutrition.DailyCalories = first.TotalCalories
		}
		if m := first.Macros(); m.Calories() > 0 {
			plan.Nutrition.MacroTargets = m
		}
		src.nutrition = domain.SourceAI
		src.aiUsed = true
	}
	if frag != nil && frag.Reasoning != "" && src.aiUsed {
		plan.Metadata.AIReasoning = frag.Reasoning
	}
}

// completeSections fills whatever no template or AI provided and recomputes
// derived metrics.
func (e *Engine) completeSections(plan *domain.WeeklyPlan, prefs domain.UserPreferences, src *sources) {
	switch src.training {
	case domain.SourceTemplate, domain.SourceAI, domain.SourceFallback:
		if len(plan.Training.WeeklyStructure) == 0 {
			plan.Training.WeeklyStructure = FallbackWeek(prefs)
			src.training = domain.SourceFallback
		}
	case domain.SourceUnset:
		plan.Training.WeeklyStructure = FallbackWeek(prefs)
		src.training = domain.SourceFallback
	}
	if src.training == domain.SourceFallback && plan.Training.Progression == "" {
		plan.Training.Progression = fallbackProgression
	}

	switch src.nutrition {
	case domain.SourceTemplate, domain.SourceAI, domain.SourceFallback:
	case domain.SourceUnset:
		// Calculated targets with no menu.
		src.nutrition = domain.SourceFallback
	}

	plan.Training.TotalVolume = calc.MuscleGroupVolume(plan.Training.WeeklyStructure)
}

// validateAndFix runs one validation pass, a single auto-fix pass when an
// error failed, and a final validation whose result overwrites the first.
func (e *Engine) validateAndFix(ctx context.Context, ev Event, plan *domain.WeeklyPlan, priorFixes []string) {
	weight := plan.EffectivePreferences().Weight
	checks := validation.Validate(plan, e.rules, weight)
	plan.Validation = validation.Summarize(checks)
	e.emit(ctx, ev, StageValidation, fmt.Sprintf("%d checks, %d errors, %d warnings",
		len(checks), len(plan.Validation.Errors), len(plan.Validation.Warnings)), nil)

	if plan.Validation.Passed {
		return
	}

	fixed, fixes := AutoFix(plan, checks, e.rules)
	*plan = *fixed
	plan.Metadata.AutoFixes = append(append([]string(nil), priorFixes...), fixes...)
	if len(plan.Metadata.AutoFixes) == 0 {
		plan.Metadata.AutoFixes = nil
	}

	checks = validation.Validate(plan, e.rules, weight)
	plan.Validation = validation.Summarize(checks)
	e.emit(ctx, ev, StageAutoFix, fmt.Sprintf("applied %d fixes, valid after fix: %t", len(fixes), plan.Validation.Passed), nil)
}

func (e *Engine) finalize(ctx context.Context, ev Event, plan *domain.WeeklyPlan, src sources, start time.Time) {
	plan.Metadata.GeneratedBy = src.generatedBy()
	plan.Metadata.TrainingSource = src.training
	plan.Metadata.NutritionSource = src.nutrition
	plan.Metadata.AIModel = ""
	if src.aiUsed && e.enricher != nil {
		plan.Metadata.AIModel = e.enricher.Model()
	}
	plan.Metadata.GenerationTime = e.now().Sub(start).Milliseconds()
	e.emit(ctx, ev, StageFinalize, fmt.Sprintf("plan generated by %s in %d ms", plan.Metadata.GeneratedBy, plan.Metadata.GenerationTime), nil)
}

func (e *Engine) emit(ctx context.Context, ev Event, stage Stage, msg string, err error) {
	ev.Stage = stage
	ev.Message = msg
	ev.Err = err
	e.observer.Observe(ctx, ev)
}
