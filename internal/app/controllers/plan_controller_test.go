package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakkaya/degreeplan/internal/app/controllers"
	"github.com/oakkaya/degreeplan/internal/app/models"
	"github.com/oakkaya/degreeplan/internal/app/models/dto"
	"github.com/oakkaya/degreeplan/internal/app/repositories"
	"github.com/oakkaya/degreeplan/internal/app/routes"
	"github.com/oakkaya/degreeplan/internal/app/services"
)

// everyTermCatalog offers the same courses in every term.
type everyTermCatalog struct {
	courses []string
}

func (c everyTermCatalog) FetchOfferings(ctx context.Context, year int, term string) []string {
	return c.courses
}

func newTestRouter(courses []string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	offerings := services.NewOfferingService(everyTermCatalog{courses: courses}, repositories.NewMemoryOfferingStore(), zerolog.Nop())
	planner := services.NewPlannerService(offerings, services.DefaultHorizonTerms, zerolog.Nop())
	controller := controllers.NewPlanController(planner, offerings, []int{3, 5}, zerolog.Nop())

	router := gin.New()
	routes.SetupRouter(router, controller, nil)
	return router
}

func postPlan(t *testing.T, router *gin.Engine, req dto.PlanRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/plan", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, r)
	return w
}

func TestCreatePlan_SchedulesDesiredCourses(t *testing.T) {
	router := newTestRouter([]string{"CMPT 225", "MATH 240", "CMPT 295"})

	w := postPlan(t, router, dto.PlanRequest{
		DesiredCourses: []string{"CMPT 225", "MATH 240"},
		CoursesPerTerm: 3,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data dto.PlanResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 2, resp.Data.ScheduledCount)
	assert.Zero(t, resp.Data.UnscheduledCount)
	require.Len(t, resp.Data.Semesters, 1)

	// The plan starts at the current term.
	year, term := models.CurrentTerm(time.Now())
	assert.Equal(t, year, resp.Data.Semesters[0].Year)
	assert.Equal(t, term, resp.Data.Semesters[0].Term)
	assert.Equal(t, []string{"CMPT 225", "MATH 240"}, resp.Data.Semesters[0].Courses)
}

func TestCreatePlan_FiltersCompletedEquivalents(t *testing.T) {
	router := newTestRouter([]string{"MATH 151", "CMPT 225"})

	w := postPlan(t, router, dto.PlanRequest{
		CompletedCourses: []string{"MATH 150"},
		DesiredCourses:   []string{"MATH 151", "CMPT 225"},
		CoursesPerTerm:   3,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data dto.PlanResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Data.Semesters, 1)
	assert.Equal(t, []string{"CMPT 225"}, resp.Data.Semesters[0].Courses)
}

func TestCreatePlan_EmptyDesiredList(t *testing.T) {
	router := newTestRouter([]string{"CMPT 225"})

	w := postPlan(t, router, dto.PlanRequest{
		DesiredCourses: []string{},
		CoursesPerTerm: 3,
	})

	// An explicitly empty list binds fine and yields an empty plan.
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data dto.PlanResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data.Semesters)
	assert.Zero(t, resp.Data.ScheduledCount)
}

func TestCreatePlan_RejectsUnsupportedTermLoad(t *testing.T) {
	router := newTestRouter([]string{"CMPT 225"})

	w := postPlan(t, router, dto.PlanRequest{
		DesiredCourses: []string{"CMPT 225"},
		CoursesPerTerm: 4,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), string(dto.ErrorCodeInvalidTermLoad))
}

func TestCreatePlan_RejectsMalformedBody(t *testing.T) {
	router := newTestRouter(nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/plan", bytes.NewReader([]byte("{not json")))
	r.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTermOfferings(t *testing.T) {
	router := newTestRouter([]string{"CMPT 225", "MATH 240"})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/offerings/2024/fall", nil)
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data dto.OfferingsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "2024-fall", resp.Data.TermKey)
	assert.Equal(t, 2, resp.Data.Count)
	assert.False(t, resp.Data.FromPrediction)
}

func TestGetTermOfferings_InvalidTerm(t *testing.T) {
	router := newTestRouter(nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/offerings/2024/winter", nil)
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), string(dto.ErrorCodeInvalidTerm))
}

func TestGetTermOfferings_InvalidYear(t *testing.T) {
	router := newTestRouter(nil)

	for _, year := range []string{"abc", "-3"} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/offerings/%s/fall", year), nil)
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}
