package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/oakkaya/degreeplan/internal/app/models"
	"github.com/oakkaya/degreeplan/internal/pkg/coursecode"
)

// DefaultHorizonTerms bounds the scheduler's walk over future terms: twelve
// consecutive terms, a four-year horizon.
const DefaultHorizonTerms = 12

// PlannerService schedules a ranked list of desired courses across future
// terms based on when each course is offered.
type PlannerService struct {
	offerings *OfferingService
	horizon   int
	logger    zerolog.Logger
}

// NewPlannerService creates a new planner service instance. A non-positive
// horizon falls back to the default.
func NewPlannerService(offerings *OfferingService, horizon int, lgr zerolog.Logger) *PlannerService {
	if horizon <= 0 {
		horizon = DefaultHorizonTerms
	}
	return &PlannerService{
		offerings: offerings,
		horizon:   horizon,
		logger:    lgr.With().Str("component", "planner").Logger(),
	}
}

// desiredCourse pairs a course's normalized comparison form with the display
// form it had in the caller's ranked list.
type desiredCourse struct {
	norm    string
	display string
}

// BuildPlan greedily assigns desired courses to consecutive terms starting at
// (startYear, startTerm). Each term takes up to perTerm offered courses in
// the caller's ranking order; courses still unscheduled when the horizon is
// exhausted are omitted, which is a normal outcome rather than an error.
func (s *PlannerService) BuildPlan(ctx context.Context, desired []string, perTerm int, startYear int, startTerm models.Term) models.SemesterPlan {
	if perTerm < 0 {
		perTerm = 0
	}

	remaining := make([]desiredCourse, 0, len(desired))
	seen := make(map[string]bool, len(desired))
	for _, d := range desired {
		norm := coursecode.Normalize(d)
		if seen[norm] {
			continue
		}
		seen[norm] = true
		remaining = append(remaining, desiredCourse{norm: norm, display: d})
	}

	plan := models.SemesterPlan{}
	cache := s.offerings.LoadCache(ctx)

	year, term := startYear, startTerm
	for i := 0; i < s.horizon && len(remaining) > 0; i++ {
		var offerings []string
		var fromPrediction bool
		offerings, cache, fromPrediction = s.offerings.ResolveWithPrediction(ctx, year, term, cache)

		offered := make(map[string]bool, len(offerings))
		for _, o := range offerings {
			offered[coursecode.Normalize(o)] = true
		}

		var take []string
		rest := remaining[:0:0]
		for _, course := range remaining {
			if len(take) < perTerm && offered[course.norm] {
				take = append(take, course.display)
			} else {
				rest = append(rest, course)
			}
		}

		if len(take) > 0 {
			plan.Items = append(plan.Items, models.PlanItem{
				Year:           year,
				Term:           term,
				Label:          models.TermLabel(year, term),
				Courses:        take,
				FromPrediction: fromPrediction,
			})
			remaining = rest
		}

		year, term = models.NextTerm(year, term)
	}

	if len(remaining) > 0 {
		s.logger.Debug().Int("unscheduled", len(remaining)).Int("horizon", s.horizon).
			Msg("Horizon exhausted with courses left unscheduled")
	}
	return plan
}
