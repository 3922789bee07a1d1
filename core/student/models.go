package student

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/spaceacademy/backoffice/core"
)

type Student struct {
	ID        int       `json:"id"`
	RegNo     string    `json:"reg_no"` // short registration code, e.g. "S-1a2b3c4d"
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Major     string    `json:"major,omitempty"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email_tld"`
	Major string `json:"major"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Major = core.CleanString(ns.Major)
	return validate.Struct(ns)
}

// UpdateStudent replaces all mutable fields of an existing Student.
// RegNo is assigned at enrollment and never changes.
type UpdateStudent struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email_tld"`
	Major string `json:"major"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.Name = core.CleanString(us.Name)
	us.Email = core.CleanString(us.Email, true /* lower */)
	us.Major = core.CleanString(us.Major)
	return validate.Struct(us)
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
