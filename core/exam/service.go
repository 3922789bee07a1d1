package exam

import (
	"errors"
	"time"

	"github.com/spaceacademy/backoffice/core"
)

var (
	// errors
	ErrNotFound = errors.New("exam not found")
)

type (
	Repository interface {
		CreateExam(e Exam) (Exam, error)
		QueryAllExams() ([]Exam, error)
		GetExamByID(id int) (Exam, error)
		// FilterExams does a case-insensitive substring match of
		// QueryFilter.Search on Exam.Course or Exam.Location; an empty filter
		// returns the full collection in insertion order.
		FilterExams(filter QueryFilter, orderings ...core.Ordering) ([]Exam, error)
		UpdateExam(e Exam) (Exam, error)
		DeleteExamByID(id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ne NewExam) (Exam, error) {
	date, err := time.Parse(DateLayout, ne.Date)
	if err != nil {
		return Exam{}, err
	}
	now := time.Now().UTC()
	exm := Exam{
		Course:    ne.Course,
		Date:      date,
		Time:      ne.Time,
		Location:  ne.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateExam(exm)
}

func (svc *Service) QueryAll() ([]Exam, error) {
	return svc.repo.QueryAllExams()
}

func (svc *Service) GetByID(id int) (Exam, error) {
	return svc.repo.GetExamByID(id)
}

func (svc *Service) Filter(filter QueryFilter, orderings ...core.Ordering) ([]Exam, error) {
	filter.Clean()
	return svc.repo.FilterExams(filter, orderings...)
}

func (svc *Service) Update(id int, ue UpdateExam) (Exam, error) {
	date, err := time.Parse(DateLayout, ue.Date)
	if err != nil {
		return Exam{}, err
	}
	exm := Exam{
		ID:        id,
		Course:    ue.Course,
		Date:      date,
		Time:      ue.Time,
		Location:  ue.Location,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdateExam(exm)
}

func (svc *Service) Delete(id int) error {
	return svc.repo.DeleteExamByID(id)
}
