package course

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spaceacademy/backoffice/core"
)

var (
	// errors
	ErrNotFound     = errors.New("course not found")
	ErrFileNotFound = errors.New("course file not found")
)

type (
	Repository interface {
		CreateCourse(c Course) (Course, error)
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id int) (Course, error)
		// FilterCourses does a case-insensitive substring match of
		// QueryFilter.Search on Course.Code or Course.Title; an empty filter
		// returns the full collection in insertion order.
		FilterCourses(filter QueryFilter, orderings ...core.Ordering) ([]Course, error)
		UpdateCourse(c Course) (Course, error)
		DeleteCourseByID(id int) error
		AddCourseFile(courseID int, f File) (File, error)
		GetCourseFile(courseID int, fileID string) (File, error)
		RemoveCourseFile(courseID int, fileID string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nc NewCourse) (Course, error) {
	now := time.Now().UTC()
	crs := Course{
		Code:      nc.Code,
		Title:     nc.Title,
		Files:     []File{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateCourse(crs)
}

func (svc *Service) QueryAll() ([]Course, error) {
	return svc.repo.QueryAllCourses()
}

func (svc *Service) GetByID(id int) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

func (svc *Service) Filter(filter QueryFilter, orderings ...core.Ordering) ([]Course, error) {
	filter.Clean()
	return svc.repo.FilterCourses(filter, orderings...)
}

func (svc *Service) Update(id int, uc UpdateCourse) (Course, error) {
	crs := Course{
		ID:        id,
		Code:      uc.Code,
		Title:     uc.Title,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdateCourse(crs)
}

func (svc *Service) Delete(id int) error {
	return svc.repo.DeleteCourseByID(id)
}

// AttachFile stores a new material for the course and returns it with its
// assigned id and serving URL. Contents are not interpreted.
func (svc *Service) AttachFile(courseID int, nf NewFile) (File, error) {
	id := uuid.New().String()
	f := File{
		ID:      id,
		Name:    nf.Name,
		Size:    int64(len(nf.Content)),
		URL:     fmt.Sprintf("/v1/courses/%d/files/%s", courseID, id),
		Content: nf.Content,
	}
	return svc.repo.AddCourseFile(courseID, f)
}

func (svc *Service) GetFile(courseID int, fileID string) (File, error) {
	return svc.repo.GetCourseFile(courseID, fileID)
}

func (svc *Service) DetachFile(courseID int, fileID string) error {
	return svc.repo.RemoveCourseFile(courseID, fileID)
}
