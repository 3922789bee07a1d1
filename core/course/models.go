package course

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/spaceacademy/backoffice/core"
)

type Course struct {
	ID               int       `json:"id"`
	Code             string    `json:"code"`
	Title            string    `json:"title"`
	StudentsEnrolled int       `json:"students_enrolled"`
	Files            []File    `json:"files"`
	CreatedAt        time.Time `json:"created_at"` // UTC
	UpdatedAt        time.Time `json:"updated_at"` // UTC
}

// File is a course material artifact. Contents are opaque bytes held by the
// store; URL is where the API serves them from.
type File struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	URL     string `json:"url"`
	Content []byte `json:"-"`
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Code  string `json:"code" validate:"required"`
	Title string `json:"title" validate:"required"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Code = core.CleanString(nc.Code)
	nc.Title = core.CleanString(nc.Title)
	return validate.Struct(nc)
}

// UpdateCourse replaces all mutable fields of an existing Course.
type UpdateCourse struct {
	Code  string `json:"code" validate:"required"`
	Title string `json:"title" validate:"required"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	uc.Code = core.CleanString(uc.Code)
	uc.Title = core.CleanString(uc.Title)
	return validate.Struct(uc)
}

// NewFile contains information needed to attach a material to a Course.
type NewFile struct {
	Name    string `json:"name" validate:"required"`
	Content []byte `json:"-"`
}

func (nf *NewFile) Validate(validate *validator.Validate) error {
	nf.Name = core.CleanString(nf.Name)
	return validate.Struct(nf)
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
