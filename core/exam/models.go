package exam

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/spaceacademy/backoffice/core"
)

// DateLayout is the wire format for exam dates.
const DateLayout = "2006-01-02"

type Exam struct {
	ID        int       `json:"id"`
	Course    string    `json:"course"`
	Date      time.Time `json:"date"`
	Time      string    `json:"time"` // display time, e.g. "10:00 AM"
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// NewExam contains information needed to schedule a new Exam.
type NewExam struct {
	Course   string `json:"course" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required"`
	Location string `json:"location" validate:"required"`
}

func (ne *NewExam) Validate(validate *validator.Validate) error {
	ne.Course = core.CleanString(ne.Course)
	ne.Date = core.CleanString(ne.Date)
	ne.Time = core.CleanString(ne.Time)
	ne.Location = core.CleanString(ne.Location)
	return validate.Struct(ne)
}

// UpdateExam replaces all mutable fields of an existing Exam.
type UpdateExam struct {
	Course   string `json:"course" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required"`
	Location string `json:"location" validate:"required"`
}

func (ue *UpdateExam) Validate(validate *validator.Validate) error {
	ue.Course = core.CleanString(ue.Course)
	ue.Date = core.CleanString(ue.Date)
	ue.Time = core.CleanString(ue.Time)
	ue.Location = core.CleanString(ue.Location)
	return validate.Struct(ue)
}

type QueryFilter struct {
	Search string `query:"search"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
