package dto

import "github.com/yigit/prereqplanner/internal/app/models"

// PlannedCourseRequest is one course of a plan term. A blank id is accepted
// and reported as an advisory note.
type PlannedCourseRequest struct {
	ID          string `json:"id" binding:"max=64" example:"MATH 222"`
	DisplayName string `json:"displayName" binding:"max=200" example:"Calculus II"`
	Credits     int    `json:"credits" binding:"min=0,max=30" example:"4"`
}

// PlanTermRequest is one semester of a plan
type PlanTermRequest struct {
	Year          int                    `json:"year" binding:"required,min=1,max=12" example:"1"`
	SemesterIndex int                    `json:"semesterIndex" binding:"min=0,max=1" example:"0"`
	Courses       []PlannedCourseRequest `json:"courses" binding:"dive"`
}

// ValidatePlanRequest is the body of POST /plans/validate
type ValidatePlanRequest struct {
	Terms     []PlanTermRequest `json:"terms" binding:"required,dive"`
	Overrides []string          `json:"overrides" binding:"dive,courseid" example:"MATH 221"`
}

// ToPlan converts the request into the domain plan
func (r ValidatePlanRequest) ToPlan() models.Plan {
	plan := models.Plan{Terms: make([]models.PlanTerm, 0, len(r.Terms))}
	for _, t := range r.Terms {
		term := models.PlanTerm{Year: t.Year, SemesterIndex: t.SemesterIndex}
		for _, c := range t.Courses {
			term.Courses = append(term.Courses, models.PlannedCourse{
				ID:          c.ID,
				DisplayName: c.DisplayName,
				Credits:     c.Credits,
			})
		}
		plan.Terms = append(plan.Terms, term)
	}
	return plan
}
