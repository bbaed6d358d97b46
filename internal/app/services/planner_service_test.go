package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakkaya/degreeplan/internal/app/models"
	"github.com/oakkaya/degreeplan/internal/app/repositories"
)

func newPlanner(client *stubCatalog) *PlannerService {
	offerings := NewOfferingService(client, repositories.NewMemoryOfferingStore(), zerolog.Nop())
	return NewPlannerService(offerings, DefaultHorizonTerms, zerolog.Nop())
}

func TestBuildPlan_EndToEnd(t *testing.T) {
	client := newStubCatalog(map[string][]string{
		"2024-fall":   {"CMPT 225", "MATH 240"},
		"2025-spring": {"CMPT 295"},
	})
	planner := newPlanner(client)

	plan := planner.BuildPlan(context.Background(),
		[]string{"CMPT 225", "CMPT 295", "MATH 240"}, 2, 2024, models.TermFall)

	require.Len(t, plan.Items, 2)

	assert.Equal(t, 2024, plan.Items[0].Year)
	assert.Equal(t, models.TermFall, plan.Items[0].Term)
	assert.Equal(t, "Fall 2024", plan.Items[0].Label)
	assert.Equal(t, []string{"CMPT 225", "MATH 240"}, plan.Items[0].Courses)

	assert.Equal(t, 2025, plan.Items[1].Year)
	assert.Equal(t, models.TermSpring, plan.Items[1].Term)
	assert.Equal(t, []string{"CMPT 295"}, plan.Items[1].Courses)
}

func TestBuildPlan_RespectsCapacity(t *testing.T) {
	offered := []string{"CMPT 120", "CMPT 125", "CMPT 225", "MATH 150", "MATH 152"}
	client := newStubCatalog(map[string][]string{
		"2024-fall":   offered,
		"2025-spring": offered,
	})
	planner := newPlanner(client)

	plan := planner.BuildPlan(context.Background(), offered, 3, 2024, models.TermFall)

	require.Len(t, plan.Items, 2)
	for _, item := range plan.Items {
		assert.LessOrEqual(t, len(item.Courses), 3)
	}
	assert.Equal(t, 5, plan.ScheduledCount())
}

func TestBuildPlan_PrefersEarliestRanked(t *testing.T) {
	client := newStubCatalog(map[string][]string{
		"2024-fall": {"MATH 240", "CMPT 295", "CMPT 225"},
	})
	planner := newPlanner(client)

	plan := planner.BuildPlan(context.Background(),
		[]string{"CMPT 225", "CMPT 295", "MATH 240"}, 2, 2024, models.TermFall)

	require.NotEmpty(t, plan.Items)
	// Ranking order decides, not catalog order.
	assert.Equal(t, []string{"CMPT 225", "CMPT 295"}, plan.Items[0].Courses)
}

func TestBuildPlan_NoDuplicateScheduling(t *testing.T) {
	offered := []string{"CMPT 225", "MATH 240"}
	client := newStubCatalog(map[string][]string{
		"2024-fall":   offered,
		"2025-spring": offered,
		"2025-summer": offered,
	})
	planner := newPlanner(client)

	// Desired list repeats a course; only the first occurrence counts.
	plan := planner.BuildPlan(context.Background(),
		[]string{"CMPT 225", "cmpt225", "MATH 240"}, 1, 2024, models.TermFall)

	scheduled := make(map[string]int)
	for _, item := range plan.Items {
		for _, course := range item.Courses {
			scheduled[course]++
		}
	}
	assert.Len(t, scheduled, 2)
	for course, count := range scheduled {
		assert.Equal(t, 1, count, "course %s scheduled more than once", course)
	}
	assert.Equal(t, 2, plan.ScheduledCount())
}

func TestBuildPlan_EmptyDesiredList(t *testing.T) {
	planner := newPlanner(newStubCatalog(nil))

	plan := planner.BuildPlan(context.Background(), nil, 3, 2024, models.TermSpring)

	assert.Empty(t, plan.Items)
	assert.Zero(t, plan.ScheduledCount())
}

func TestBuildPlan_NonPositiveCapacity(t *testing.T) {
	client := newStubCatalog(map[string][]string{"2024-fall": {"CMPT 225"}})
	planner := newPlanner(client)

	for _, capacity := range []int{0, -1} {
		plan := planner.BuildPlan(context.Background(), []string{"CMPT 225"}, capacity, 2024, models.TermFall)
		assert.Empty(t, plan.Items)
	}
}

func TestBuildPlan_SparseItems(t *testing.T) {
	// Nothing desired is offered until two terms into the horizon.
	client := newStubCatalog(map[string][]string{
		"2025-fall": {"CMPT 225"},
	})
	planner := newPlanner(client)

	plan := planner.BuildPlan(context.Background(), []string{"CMPT 225"}, 3, 2025, models.TermSpring)

	require.Len(t, plan.Items, 1)
	assert.Equal(t, models.TermFall, plan.Items[0].Term)
	assert.Equal(t, 2025, plan.Items[0].Year)
}

func TestBuildPlan_HorizonExhausted(t *testing.T) {
	planner := newPlanner(newStubCatalog(nil))

	// Never offered anywhere: omitted from the plan, no error.
	plan := planner.BuildPlan(context.Background(), []string{"CMPT 999"}, 3, 2024, models.TermFall)

	assert.Empty(t, plan.Items)
}

func TestBuildPlan_PredictionFlagPropagates(t *testing.T) {
	// Catalog is down; the store already knows last year's fall offerings.
	store := repositories.NewMemoryOfferingStore()
	seeded := models.NewOfferingCache()
	seeded.Semesters["2023-fall"] = []string{"CMPT 120"}
	store.Save(context.Background(), seeded)

	offerings := NewOfferingService(newStubCatalog(nil), store, zerolog.Nop())
	planner := NewPlannerService(offerings, DefaultHorizonTerms, zerolog.Nop())

	plan := planner.BuildPlan(context.Background(), []string{"CMPT 120"}, 3, 2024, models.TermFall)

	require.Len(t, plan.Items, 1)
	assert.True(t, plan.Items[0].FromPrediction)
	assert.Equal(t, []string{"CMPT 120"}, plan.Items[0].Courses)
}

func TestBuildPlan_ShortHorizonStopsEarly(t *testing.T) {
	client := newStubCatalog(map[string][]string{
		"2025-summer": {"CMPT 225"},
	})
	offerings := NewOfferingService(client, repositories.NewMemoryOfferingStore(), zerolog.Nop())
	planner := NewPlannerService(offerings, 2, zerolog.Nop())

	// The offering appears in the third term, beyond a two-term horizon.
	plan := planner.BuildPlan(context.Background(), []string{"CMPT 225"}, 3, 2024, models.TermFall)

	assert.Empty(t, plan.Items)
}
