package inmem

import (
	"sort"
	"strings"

	"github.com/spaceacademy/backoffice/core"
	"github.com/spaceacademy/backoffice/core/course"
)

type courseRepository struct {
	t *courseTable
}

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{t: db.courses}
}

func (repo *courseRepository) CreateCourse(crs course.Course) (course.Course, error) {
	repo.t.mu.Lock()
	defer repo.t.mu.Unlock()

	repo.t.seq++
	crs.ID = repo.t.seq
	repo.t.rows = append(repo.t.rows, crs)
	return copyCourse(crs), nil
}

func (repo *courseRepository) QueryAllCourses() ([]course.Course, error) {
	repo.t.mu.RLock()
	defer repo.t.mu.RUnlock()
	return repo.query(), nil
}

func (repo *courseRepository) GetCourseByID(id int) (course.Course, error) {
	repo.t.mu.RLock()
	defer repo.t.mu.RUnlock()

	if i := repo.index(id); i >= 0 {
		return copyCourse(repo.t.rows[i]), nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) FilterCourses(filter course.QueryFilter, orderings ...core.Ordering) ([]course.Course, error) {
	repo.t.mu.RLock()
	defer repo.t.mu.RUnlock()

	var courses []course.Course
	if filter.IsEmpty() {
		courses = repo.query()
	} else {
		search := strings.ToLower(filter.Search)
		courses = make([]course.Course, 0, len(repo.t.rows))
		for _, crs := range repo.t.rows {
			haystack := strings.ToLower(crs.Code + " " + crs.Title)
			if strings.Contains(haystack, search) {
				courses = append(courses, copyCourse(crs))
			}
		}
	}
	orderCourses(courses, orderings)
	return courses, nil
}

func (repo *courseRepository) UpdateCourse(crs course.Course) (course.Course, error) {
	repo.t.mu.Lock()
	defer repo.t.mu.Unlock()

	i := repo.index(crs.ID)
	if i < 0 {
		return course.Course{}, course.ErrNotFound
	}
	// replace mutable fields in place; position, files and enrollment stay
	orig := &repo.t.rows[i]
	orig.Code = crs.Code
	orig.Title = crs.Title
	orig.UpdatedAt = crs.UpdatedAt
	return copyCourse(*orig), nil
}

func (repo *courseRepository) DeleteCourseByID(id int) error {
	repo.t.mu.Lock()
	defer repo.t.mu.Unlock()

	i := repo.index(id)
	if i < 0 {
		return course.ErrNotFound
	}
	repo.t.rows = append(repo.t.rows[:i], repo.t.rows[i+1:]...)
	return nil
}

func (repo *courseRepository) AddCourseFile(courseID int, f course.File) (course.File, error) {
	repo.t.mu.Lock()
	defer repo.t.mu.Unlock()

	i := repo.index(courseID)
	if i < 0 {
		return course.File{}, course.ErrNotFound
	}
	repo.t.rows[i].Files = append(repo.t.rows[i].Files, f)
	return f, nil
}

func (repo *courseRepository) GetCourseFile(courseID int, fileID string) (course.File, error) {
	repo.t.mu.RLock()
	defer repo.t.mu.RUnlock()

	i := repo.index(courseID)
	if i < 0 {
		return course.File{}, course.ErrNotFound
	}
	for _, f := range repo.t.rows[i].Files {
		if f.ID == fileID {
			return f, nil
		}
	}
	return course.File{}, course.ErrFileNotFound
}

func (repo *courseRepository) RemoveCourseFile(courseID int, fileID string) error {
	repo.t.mu.Lock()
	defer repo.t.mu.Unlock()

	i := repo.index(courseID)
	if i < 0 {
		return course.ErrNotFound
	}
	files := repo.t.rows[i].Files
	for j, f := range files {
		if f.ID == fileID {
			repo.t.rows[i].Files = append(files[:j], files[j+1:]...)
			return nil
		}
	}
	return course.ErrFileNotFound
}

// callers must hold at least a read lock
func (repo *courseRepository) query() []course.Course {
	courses := make([]course.Course, 0, len(repo.t.rows))
	for _, crs := range repo.t.rows {
		courses = append(courses, copyCourse(crs))
	}
	return courses
}

// callers must hold at least a read lock
func (repo *courseRepository) index(id int) int {
	for i, crs := range repo.t.rows {
		if crs.ID == id {
			return i
		}
	}
	return -1
}

// copyCourse detaches the Files slice so readers never alias table state.
func copyCourse(crs course.Course) course.Course {
	files := make([]course.File, len(crs.Files))
	copy(files, crs.Files)
	crs.Files = files
	return crs
}

func orderCourses(courses []course.Course, orderings []core.Ordering) {
	for i := len(orderings) - 1; i >= 0; i-- {
		ord := orderings[i]
		var less func(a, b course.Course) bool
		switch ord.Field {
		case "code":
			less = func(a, b course.Course) bool { return a.Code < b.Code }
		case "title":
			less = func(a, b course.Course) bool { return a.Title < b.Title }
		case "students_enrolled":
			less = func(a, b course.Course) bool { return a.StudentsEnrolled < b.StudentsEnrolled }
		default:
			continue
		}
		sort.SliceStable(courses, func(a, b int) bool {
			if ord.Ascending {
				return less(courses[a], courses[b])
			}
			return less(courses[b], courses[a])
		})
	}
}
