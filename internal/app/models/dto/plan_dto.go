package dto

import "github.com/oakkaya/degreeplan/internal/app/models"

// PlanRequest carries a planning request: what the student has completed,
// what the upstream ranking produced, and how many courses per term.
type PlanRequest struct {
	CompletedCourses []string `json:"completedCourses" example:"MATH 150,CMPT 120"`
	DesiredCourses   []string `json:"desiredCourses" example:"CMPT 225,CMPT 295,MATH 240"`
	CoursesPerTerm   int      `json:"coursesPerTerm" binding:"required" example:"3"`
}

// PlanResponse is the scheduled plan plus summary figures.
type PlanResponse struct {
	Semesters        []models.PlanItem `json:"semesters"`
	ScheduledCount   int               `json:"scheduledCount" example:"5"`
	UnscheduledCount int               `json:"unscheduledCount" example:"1"`
}

// OfferingsResponse is one term's resolved offerings.
type OfferingsResponse struct {
	TermKey        string   `json:"termKey" example:"2024-fall"`
	Courses        []string `json:"courses"`
	Count          int      `json:"count" example:"412"`
	FromPrediction bool     `json:"fromPrediction"`
}
