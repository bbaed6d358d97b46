package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/oakkaya/degreeplan/internal/app/models"
	"github.com/oakkaya/degreeplan/internal/app/models/dto"
	"github.com/oakkaya/degreeplan/internal/app/services"
	"github.com/oakkaya/degreeplan/internal/middleware"
	"github.com/oakkaya/degreeplan/internal/pkg/coursecode"
)

// PlanController handles course planning operations
type PlanController struct {
	planner   *services.PlannerService
	offerings *services.OfferingService
	termLoads []int
	logger    zerolog.Logger
}

// NewPlanController creates a new PlanController
func NewPlanController(planner *services.PlannerService, offerings *services.OfferingService, termLoads []int, lgr zerolog.Logger) *PlanController {
	return &PlanController{
		planner:   planner,
		offerings: offerings,
		termLoads: termLoads,
		logger:    lgr,
	}
}

// CreatePlan schedules the desired courses across future terms
// @Summary Build a semester plan
// @Description Schedules the ranked desired courses across future terms, starting from the current term, based on when each course is offered
// @Tags plan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PlanRequest true "Completed courses, ranked desired courses, and courses per term"
// @Success 200 {object} dto.APIResponse{data=dto.PlanResponse} "Semester plan built"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /plan [post]
func (c *PlanController) CreatePlan(ctx *gin.Context) {
	var req dto.PlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid plan request")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if !c.allowedLoad(req.CoursesPerTerm) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidTermLoad, "Unsupported courses-per-term value")
		errorDetail = errorDetail.WithField("coursesPerTerm").WithDetails(c.termLoads)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	taken := services.ExpandTaken(req.CompletedCourses)
	desired := services.FilterTaken(req.DesiredCourses, taken)

	year, term := models.CurrentTerm(time.Now())
	plan := c.planner.BuildPlan(ctx, desired, req.CoursesPerTerm, year, term)

	items := plan.Items
	if items == nil {
		items = []models.PlanItem{}
	}
	scheduled := plan.ScheduledCount()
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PlanResponse{
			Semesters:        items,
			ScheduledCount:   scheduled,
			UnscheduledCount: uniqueCount(desired) - scheduled,
		},
		Timestamp: time.Now(),
	})
}

// GetTermOfferings retrieves the offered courses for one term
// @Summary Get term offerings
// @Description Retrieves the courses offered in a given term, falling back to prior-year prediction when the catalog has no data
// @Tags offerings
// @Accept json
// @Produce json
// @Param year path int true "Academic year"
// @Param term path string true "Term name" Enums(spring, summer, fall)
// @Success 200 {object} dto.APIResponse{data=dto.OfferingsResponse} "Offerings retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid year or term"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offerings/{year}/{term} [get]
func (c *PlanController) GetTermOfferings(ctx *gin.Context) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil || year <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid year")
		errorDetail = errorDetail.WithField("year").WithDetails("Year must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	term, err := models.ParseTerm(ctx.Param("term"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	cache := c.offerings.LoadCache(ctx)
	courses, _, fromPrediction := c.offerings.ResolveWithPrediction(ctx, year, term, cache)

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.OfferingsResponse{
			TermKey:        models.TermKey(year, term),
			Courses:        courses,
			Count:          len(courses),
			FromPrediction: fromPrediction,
		},
		Timestamp: time.Now(),
	})
}

// allowedLoad reports whether the requested per-term load is one of the
// configured presets.
func (c *PlanController) allowedLoad(load int) bool {
	for _, l := range c.termLoads {
		if load == l {
			return true
		}
	}
	return false
}

// uniqueCount counts distinct courses after normalization.
func uniqueCount(codes []string) int {
	seen := make(map[string]bool, len(codes))
	for _, c := range codes {
		seen[coursecode.Normalize(c)] = true
	}
	return len(seen)
}
