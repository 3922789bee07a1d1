package student

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spaceacademy/backoffice/core"
)

var (
	// errors
	ErrNotFound = errors.New("student not found")
)

type (
	Repository interface {
		CreateStudent(s Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id int) (Student, error)
		// FilterStudents does a case-insensitive substring match of
		// QueryFilter.Search on Student.Name, Student.Email or Student.Major;
		// an empty filter returns the full collection in insertion order.
		FilterStudents(filter QueryFilter, orderings ...core.Ordering) ([]Student, error)
		UpdateStudent(s Student) (Student, error)
		DeleteStudentByID(id int) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

func (svc *Service) Create(ns NewStudent) (Student, error) {
	now := time.Now().UTC()
	std := Student{
		RegNo:     newRegNo(),
		Name:      ns.Name,
		Email:     ns.Email,
		Major:     ns.Major,
		CreatedAt: now,
		UpdatedAt: now,
	}
	std, err := svc.repo.CreateStudent(std)
	if err != nil {
		return Student{}, err
	}
	svc.sendWelcomeEmail(std)
	return std, nil
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetByID(id int) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) Filter(filter QueryFilter, orderings ...core.Ordering) ([]Student, error) {
	filter.Clean()
	return svc.repo.FilterStudents(filter, orderings...)
}

func (svc *Service) Update(id int, us UpdateStudent) (Student, error) {
	std := Student{
		ID:        id,
		Name:      us.Name,
		Email:     us.Email,
		Major:     us.Major,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdateStudent(std)
}

func (svc *Service) Delete(id int) error {
	return svc.repo.DeleteStudentByID(id)
}

func (svc *Service) sendWelcomeEmail(std Student) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: std.Name, Address: std.Email}},
		Subject: "Welcome to Space Academy",
		Body: "Hi " + std.Name + ",\r\n\r\n" +
			"Your enrollment is confirmed. Your registration number is " + std.RegNo + ".\r\n",
	})
}

// newRegNo derives a short registration code from a random UUID.
func newRegNo() string {
	return "S-" + strings.SplitN(uuid.New().String(), "-", 2)[0]
}
