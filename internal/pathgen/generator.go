package pathgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/pathweaver/internal/llm"
	"github.com/abhisek/pathweaver/internal/logger"
	"github.com/abhisek/pathweaver/internal/paths"
)

// ErrGenerationFailed marks a fatal generation failure: the outline provider
// was unreachable, returned nothing, or returned something unparsable. No
// partial path is ever produced.
var ErrGenerationFailed = errors.New("path generation failed")

// Generator orchestrates two-phase path construction.
type Generator struct {
	provider llm.Provider
	resolver ResourceResolver
	cfg      Config
	log      *logger.Logger
}

// NewGenerator creates a path generator.
func NewGenerator(provider llm.Provider, resolver ResourceResolver, cfg Config, log *logger.Logger) *Generator {
	return &Generator{
		provider: provider,
		resolver: resolver,
		cfg:      cfg,
		log:      log.With("component", "pathgen"),
	}
}

// Generate builds a complete LearningPath for the topic. skillLevel is
// optional. Outline failure is fatal; individual lesson resolutions degrade
// to placeholders and never abort the call. Nothing is persisted here.
func (g *Generator) Generate(ctx context.Context, topic, skillLevel string) (*paths.LearningPath, error) {
	out, err := g.requestOutline(ctx, topic, skillLevel)
	if err != nil {
		return nil, err
	}

	path := g.assemble(ctx, topic, out)
	path.ComputeTotals()

	g.log.Info("path generated",
		"topic", topic,
		"units", path.UnitCount,
		"lessons", path.LessonCount,
		"total_xp", path.TotalXP)

	return path, nil
}

func (g *Generator) requestOutline(ctx context.Context, topic, skillLevel string) (*outline, error) {
	ctx = llm.WithPurpose(ctx, "path-outline")

	req := llm.Request{
		System: outlineSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildOutlineUserMessage(topic, skillLevel)},
		},
		Schema:      PathOutlineSchema,
		MaxTokens:   g.cfg.OutlineMaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: outline request: %v", ErrGenerationFailed, err)
	}

	payload := extractJSON(string(resp.Content))
	if payload == "" {
		return nil, fmt.Errorf("%w: no JSON in outline response", ErrGenerationFailed)
	}

	var out outline
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return nil, fmt.Errorf("%w: parse outline: %v", ErrGenerationFailed, err)
	}

	if err := out.check(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return &out, nil
}

// check re-verifies structural bounds after schema validation. The schema
// is advisory for providers without strict structured output.
func (o *outline) check() error {
	if len(o.Units) == 0 {
		return errors.New("outline has no units")
	}
	if len(o.Units) > paths.MaxUnits {
		return fmt.Errorf("outline has %d units, limit is %d", len(o.Units), paths.MaxUnits)
	}
	for ui, u := range o.Units {
		if len(u.Levels) == 0 {
			return fmt.Errorf("unit %d has no levels", ui)
		}
		if len(u.Levels) > paths.MaxLevelsPerUnit {
			return fmt.Errorf("unit %d has %d levels, limit is %d", ui, len(u.Levels), paths.MaxLevelsPerUnit)
		}
		for li, l := range u.Levels {
			if len(l.Lessons) == 0 {
				return fmt.Errorf("unit %d level %d has no lessons", ui, li)
			}
		}
	}
	return nil
}

// assemble resolves every lesson's resource concurrently and rebuilds the
// tree in outline order. Each resolution writes to its own pre-assigned
// slot, so completion order cannot reorder lessons.
func (g *Generator) assemble(ctx context.Context, topic string, out *outline) *paths.LearningPath {
	type slot struct {
		unit, level, lesson int
		query               string
	}

	var slots []slot
	for ui, u := range out.Units {
		for li, l := range u.Levels {
			for i, lesson := range l.Lessons {
				query := lesson.SearchHint
				if query == "" {
					query = topic + " " + lesson.Title
				}
				slots = append(slots, slot{unit: ui, level: li, lesson: i, query: query})
			}
		}
	}

	resources := make([]paths.Resource, len(slots))
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(g.cfg.LookupConcurrency)
	for idx, s := range slots {
		grp.Go(func() error {
			resources[idx] = g.resolver.FetchBestMatch(grpCtx, s.query)
			return nil
		})
	}
	// Resolutions never return errors; placeholders absorb failures.
	_ = grp.Wait()

	byPosition := make(map[[3]int]paths.Resource, len(slots))
	for idx, s := range slots {
		byPosition[[3]int{s.unit, s.level, s.lesson}] = resources[idx]
	}

	path := &paths.LearningPath{Topic: topic}
	for ui, u := range out.Units {
		unit := paths.Unit{
			Title:         u.Title,
			Description:   u.Description,
			Color:         u.Color,
			BossChallenge: u.BossChallenge,
		}
		for li, l := range u.Levels {
			level := paths.Level{
				Title:            l.Title,
				Description:      l.Description,
				Icon:             l.Icon,
				ChallengeProject: l.ChallengeProject,
			}
			for i, lesson := range l.Lessons {
				level.Lessons = append(level.Lessons, paths.Lesson{
					ID:          fmt.Sprintf("lesson-%d-%d-%d", ui, li, i),
					Title:       lesson.Title,
					Description: lesson.Description,
					XP:          randomXP(),
					Resource:    byPosition[[3]int{ui, li, i}],
				})
			}
			unit.Levels = append(unit.Levels, level)
		}
		path.Units = append(path.Units, unit)
	}

	return path
}

// randomXP picks a lesson reward in [MinLessonXP, MaxLessonXP]. Assigned at
// assembly time, so regenerating a topic need not be deterministic.
func randomXP() int {
	return paths.MinLessonXP + rand.IntN(paths.MaxLessonXP-paths.MinLessonXP+1)
}

// QuickDive asks the provider for flat resource suggestions and resolves
// them. Suggestions fail silently: any provider or parse failure yields an
// empty list, never an error.
func (g *Generator) QuickDive(ctx context.Context, topic string) []paths.Resource {
	ctx = llm.WithPurpose(ctx, "quick-dive")

	req := llm.Request{
		System: quickDiveSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuickDiveUserMessage(topic, g.cfg.QuickDiveCount)},
		},
		Schema:      QuickDiveSchema,
		MaxTokens:   g.cfg.QuickDiveMaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		g.log.Warn("quick dive generation failed", "topic", topic, "error", err)
		return []paths.Resource{}
	}

	suggestions := parseSuggestions(string(resp.Content))
	if len(suggestions) == 0 {
		g.log.Warn("quick dive returned no usable suggestions", "topic", topic)
		return []paths.Resource{}
	}

	out := make([]paths.Resource, len(suggestions))
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(g.cfg.LookupConcurrency)
	for i, s := range suggestions {
		grp.Go(func() error {
			out[i] = g.resolveSuggestion(grpCtx, s)
			return nil
		})
	}
	_ = grp.Wait()

	return out
}

// parseSuggestions accepts both the wrapped object form and a bare array.
func parseSuggestions(raw string) []suggestion {
	payload := extractJSON(raw)
	if payload == "" {
		return nil
	}
	if payload[0] == '[' {
		var list []suggestion
		if err := json.Unmarshal([]byte(payload), &list); err != nil {
			return nil
		}
		return list
	}
	var wrapped suggestionList
	if err := json.Unmarshal([]byte(payload), &wrapped); err != nil {
		return nil
	}
	return wrapped.Suggestions
}

func (g *Generator) resolveSuggestion(ctx context.Context, s suggestion) paths.Resource {
	kind := paths.ResourceKind(s.Kind)
	known := false
	for _, k := range paths.AllResourceKinds() {
		if k == kind {
			known = true
			break
		}
	}
	if !known {
		kind = paths.KindArticle
	}

	if kind == paths.KindVideo {
		r := g.resolver.FetchBestMatch(ctx, s.SearchHint)
		if s.Description != "" {
			r.Description = s.Description
		}
		return r
	}

	r := g.resolver.FetchResourceList(ctx, s.SearchHint, 1, []paths.ResourceKind{kind})[0]
	r.Title = s.Title
	if s.Description != "" {
		r.Description = s.Description
	}
	return r
}
