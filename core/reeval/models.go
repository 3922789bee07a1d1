package reeval

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/spaceacademy/backoffice/core"
)

// Request statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Request is an exam re-evaluation request filed from the exams screen.
type Request struct {
	ID          int       `json:"id"`
	StudentName string    `json:"student_name"`
	StudentID   string    `json:"student_id"` // registration code as typed by the student
	Course      string    `json:"course"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// NewRequest contains information needed to file a new Request.
// Status always starts out pending.
type NewRequest struct {
	StudentName string `json:"student_name" validate:"required"`
	StudentID   string `json:"student_id" validate:"required"`
	Course      string `json:"course" validate:"required"`
	Reason      string `json:"reason" validate:"required"`
}

func (nr *NewRequest) Validate(validate *validator.Validate) error {
	nr.StudentName = core.CleanString(nr.StudentName)
	nr.StudentID = core.CleanString(nr.StudentID)
	nr.Course = core.CleanString(nr.Course)
	nr.Reason = core.CleanString(nr.Reason)
	return validate.Struct(nr)
}

// UpdateRequest replaces all mutable fields of an existing Request; this is
// how a request gets approved or rejected.
type UpdateRequest struct {
	StudentName string `json:"student_name" validate:"required"`
	Course      string `json:"course" validate:"required"`
	Reason      string `json:"reason" validate:"required"`
	Status      string `json:"status" validate:"required,oneof=pending approved rejected"`
}

func (ur *UpdateRequest) Validate(validate *validator.Validate) error {
	ur.StudentName = core.CleanString(ur.StudentName)
	ur.Course = core.CleanString(ur.Course)
	ur.Reason = core.CleanString(ur.Reason)
	ur.Status = core.CleanString(ur.Status, true /* lower */)
	return validate.Struct(ur)
}

type QueryFilter struct {
	Search string `query:"search"`
	Status string `query:"status"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Status == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Status = core.CleanString(qf.Status, true /* lower */)
}
