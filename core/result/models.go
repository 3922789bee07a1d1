package result

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/spaceacademy/backoffice/core"
)

// The fixed grade scale, best first.
var GradeScale = []string{"A+", "A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D+", "D", "F"}

var gradePoints = map[string]float64{
	"A+": 4.0, "A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0, "C-": 1.7,
	"D+": 1.3, "D": 1.0,
	"F": 0.0,
}

// Result records a grade for a (student, course) pair; at most one exists per
// pair. StudentName and CourseCode are denormalized from the referenced
// records at write time and deliberately NOT kept in sync afterwards.
type Result struct {
	ID          int       `json:"id"`
	StudentID   int       `json:"student_id"`
	StudentName string    `json:"student_name"`
	CourseID    int       `json:"course_id"`
	CourseCode  string    `json:"course_code"`
	Grade       string    `json:"grade"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// NewResult contains information needed to record a new Result.
type NewResult struct {
	StudentID int    `json:"student_id" validate:"required"`
	CourseID  int    `json:"course_id" validate:"required"`
	Grade     string `json:"grade" validate:"required,grade"`
}

func (nr *NewResult) Validate(validate *validator.Validate) error {
	nr.Grade = core.CleanString(nr.Grade)
	return validate.Struct(nr)
}

// UpdateResult replaces all mutable fields of an existing Result.
type UpdateResult struct {
	StudentID int    `json:"student_id" validate:"required"`
	CourseID  int    `json:"course_id" validate:"required"`
	Grade     string `json:"grade" validate:"required,grade"`
}

func (ur *UpdateResult) Validate(validate *validator.Validate) error {
	ur.Grade = core.CleanString(ur.Grade)
	return validate.Struct(ur)
}

type QueryFilter struct {
	Search     string `query:"search"`
	CourseCode string `query:"course_code"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.CourseCode == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.CourseCode = core.CleanString(qf.CourseCode)
}

// Summary is the aggregate view behind the results charts.
type Summary struct {
	Total   int             `json:"total"`
	Grades  []GradeCount    `json:"grades"`
	Courses []CourseSummary `json:"courses"`
}

type GradeCount struct {
	Grade string `json:"grade"` // letter bucket: A, B, C, D, F
	Count int    `json:"count"`
}

type CourseSummary struct {
	CourseCode string  `json:"course_code"`
	Results    int     `json:"results"`
	GPA        float64 `json:"gpa"`
}

// validation

var (
	gradeTag  = "grade"
	gradeText = "grade must be one of the grade scale values"
)

// RegisterValidators adds result-specific validation tags; call once after
// core.NewValidator.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(gradeTag, gradeValidation)
	core.RegisterCustomTranslation(validate, translator, gradeTag, gradeText)
}

// gradeValidation checks that the provided grade is on the scale.
func gradeValidation(fl validator.FieldLevel) bool {
	grade := fl.Field().String()
	for _, g := range GradeScale {
		if g == grade {
			return true
		}
	}
	return false
}
