package reeval

import (
	"errors"
	"time"

	"github.com/spaceacademy/backoffice/core"
)

var (
	// errors
	ErrNotFound = errors.New("re-evaluation request not found")
)

type (
	Repository interface {
		CreateRequest(r Request) (Request, error)
		QueryAllRequests() ([]Request, error)
		GetRequestByID(id int) (Request, error)
		// FilterRequests does a case-insensitive substring match of
		// QueryFilter.Search on Request.StudentName, Request.StudentID or
		// Request.Course, and an exact match on QueryFilter.Status; an empty
		// filter returns the full collection in insertion order.
		FilterRequests(filter QueryFilter, orderings ...core.Ordering) ([]Request, error)
		UpdateRequest(r Request) (Request, error)
		DeleteRequestByID(id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nr NewRequest) (Request, error) {
	now := time.Now().UTC()
	req := Request{
		StudentName: nr.StudentName,
		StudentID:   nr.StudentID,
		Course:      nr.Course,
		Reason:      nr.Reason,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateRequest(req)
}

func (svc *Service) QueryAll() ([]Request, error) {
	return svc.repo.QueryAllRequests()
}

func (svc *Service) GetByID(id int) (Request, error) {
	return svc.repo.GetRequestByID(id)
}

func (svc *Service) Filter(filter QueryFilter, orderings ...core.Ordering) ([]Request, error) {
	filter.Clean()
	return svc.repo.FilterRequests(filter, orderings...)
}

func (svc *Service) Update(id int, ur UpdateRequest) (Request, error) {
	req := Request{
		ID:          id,
		StudentName: ur.StudentName,
		Course:      ur.Course,
		Reason:      ur.Reason,
		Status:      ur.Status,
		UpdatedAt:   time.Now().UTC(),
	}
	return svc.repo.UpdateRequest(req)
}

func (svc *Service) Delete(id int) error {
	return svc.repo.DeleteRequestByID(id)
}
