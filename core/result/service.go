package result

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/spaceacademy/backoffice/core"
	"github.com/spaceacademy/backoffice/core/course"
	"github.com/spaceacademy/backoffice/core/student"
)

var (
	// errors
	ErrNotFound        = errors.New("result not found")
	ErrResultExists    = errors.New("a result already exists for this student and course")
	ErrStudentNotFound = errors.New("referenced student not found")
	ErrCourseNotFound  = errors.New("referenced course not found")
)

type (
	Repository interface {
		// CheckResultUniqueness reports ErrResultExists when a result for the
		// (studentID, courseID) pair exists, excluding the given result ids.
		CheckResultUniqueness(studentID, courseID int, excludedIDs ...int) error
		CreateResult(r Result) (Result, error)
		QueryAllResults() ([]Result, error)
		GetResultByID(id int) (Result, error)
		// FilterResults does a case-insensitive substring match of
		// QueryFilter.Search on Result.StudentName, Result.CourseCode or
		// Result.Grade, and an exact match on QueryFilter.CourseCode; an empty
		// filter returns the full collection in insertion order.
		FilterResults(filter QueryFilter, orderings ...core.Ordering) ([]Result, error)
		UpdateResult(r Result) (Result, error)
		DeleteResultByID(id int) error
	}

	// StudentDirectory resolves student references at write time.
	StudentDirectory interface {
		GetByID(id int) (student.Student, error)
	}

	// CourseDirectory resolves course references at write time.
	CourseDirectory interface {
		GetByID(id int) (course.Course, error)
	}

	Service struct {
		repo     Repository
		students StudentDirectory
		courses  CourseDirectory
	}
)

func NewService(repo Repository, students StudentDirectory, courses CourseDirectory) *Service {
	return &Service{repo: repo, students: students, courses: courses}
}

// resolveRefs loads the referenced student and course; a missing reference is
// a validation error, not a server error.
func (svc *Service) resolveRefs(studentID, courseID int) (student.Student, course.Course, error) {
	std, err := svc.students.GetByID(studentID)
	if err != nil {
		if err == student.ErrNotFound {
			return student.Student{}, course.Course{}, core.NewValidationError(
				ErrStudentNotFound, core.FieldError{Field: "student_id", Error: ErrStudentNotFound.Error()})
		}
		return student.Student{}, course.Course{}, err
	}
	crs, err := svc.courses.GetByID(courseID)
	if err != nil {
		if err == course.ErrNotFound {
			return student.Student{}, course.Course{}, core.NewValidationError(
				ErrCourseNotFound, core.FieldError{Field: "course_id", Error: ErrCourseNotFound.Error()})
		}
		return student.Student{}, course.Course{}, err
	}
	return std, crs, nil
}

func (svc *Service) checkUniqueness(studentID, courseID int, exclIDs ...int) error {
	if err := svc.repo.CheckResultUniqueness(studentID, courseID, exclIDs...); err != nil {
		if err == ErrResultExists {
			return core.NewValidationError(err,
				core.FieldError{Field: "student_id", Error: err.Error()},
				core.FieldError{Field: "course_id", Error: err.Error()},
			)
		}
		return err
	}
	return nil
}

func (svc *Service) Create(nr NewResult) (Result, error) {
	std, crs, err := svc.resolveRefs(nr.StudentID, nr.CourseID)
	if err != nil {
		return Result{}, err
	}
	if err := svc.checkUniqueness(nr.StudentID, nr.CourseID); err != nil {
		return Result{}, err
	}

	now := time.Now().UTC()
	res := Result{
		StudentID:   std.ID,
		StudentName: std.Name,
		CourseID:    crs.ID,
		CourseCode:  crs.Code,
		Grade:       nr.Grade,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateResult(res)
}

func (svc *Service) QueryAll() ([]Result, error) {
	return svc.repo.QueryAllResults()
}

func (svc *Service) GetByID(id int) (Result, error) {
	return svc.repo.GetResultByID(id)
}

func (svc *Service) Filter(filter QueryFilter, orderings ...core.Ordering) ([]Result, error) {
	filter.Clean()
	return svc.repo.FilterResults(filter, orderings...)
}

// Update re-resolves the references and re-denormalizes the display fields;
// moving a result onto an already-occupied (student, course) pair is rejected
// like a duplicate create, the record's own pair excepted.
func (svc *Service) Update(id int, ur UpdateResult) (Result, error) {
	orig, err := svc.repo.GetResultByID(id)
	if err != nil {
		return Result{}, err
	}
	std, crs, err := svc.resolveRefs(ur.StudentID, ur.CourseID)
	if err != nil {
		return Result{}, err
	}
	if err := svc.checkUniqueness(ur.StudentID, ur.CourseID, orig.ID); err != nil {
		return Result{}, err
	}

	res := Result{
		ID:          orig.ID,
		StudentID:   std.ID,
		StudentName: std.Name,
		CourseID:    crs.ID,
		CourseCode:  crs.Code,
		Grade:       ur.Grade,
		UpdatedAt:   time.Now().UTC(),
	}
	return svc.repo.UpdateResult(res)
}

func (svc *Service) Delete(id int) error {
	return svc.repo.DeleteResultByID(id)
}

// Summarize aggregates the current results into letter-grade counts and
// per-course tallies, optionally restricted to one course code.
func (svc *Service) Summarize(courseCode string) (Summary, error) {
	results, err := svc.repo.FilterResults(QueryFilter{CourseCode: core.CleanString(courseCode)})
	if err != nil {
		return Summary{}, err
	}

	letters := make(map[string]int)
	type acc struct {
		count  int
		points float64
	}
	perCourse := make(map[string]*acc)

	for _, res := range results {
		letters[res.Grade[:1]]++
		a, ok := perCourse[res.CourseCode]
		if !ok {
			a = &acc{}
			perCourse[res.CourseCode] = a
		}
		a.count++
		a.points += gradePoints[res.Grade]
	}

	sum := Summary{Total: len(results)}
	for _, l := range []string{"A", "B", "C", "D", "F"} {
		if n, ok := letters[l]; ok {
			sum.Grades = append(sum.Grades, GradeCount{Grade: l, Count: n})
		}
	}
	for code, a := range perCourse {
		sum.Courses = append(sum.Courses, CourseSummary{
			CourseCode: code,
			Results:    a.count,
			GPA:        a.points / float64(a.count),
		})
	}
	sort.Slice(sum.Courses, func(i, j int) bool {
		return strings.Compare(sum.Courses[i].CourseCode, sum.Courses[j].CourseCode) < 0
	})
	return sum, nil
}
