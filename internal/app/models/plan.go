package models

// PlanItem is one term of a semester plan. Courses keep the display form they
// had in the desired list; FromPrediction marks items scheduled against
// predicted rather than fetched offerings.
type PlanItem struct {
	Year           int      `json:"year" example:"2024"`
	Term           Term     `json:"term" example:"fall"`
	Label          string   `json:"label" example:"Fall 2024"`
	Courses        []string `json:"courses"`
	FromPrediction bool     `json:"fromPrediction"`
}

// SemesterPlan is the ordered result of scheduling a desired-course list
// across future terms. Items are sparse: terms with no assignable courses
// produce no item.
type SemesterPlan struct {
	Items []PlanItem `json:"items"`
}

// ScheduledCount returns the total number of courses placed in the plan.
func (p SemesterPlan) ScheduledCount() int {
	n := 0
	for _, item := range p.Items {
		n += len(item.Courses)
	}
	return n
}
