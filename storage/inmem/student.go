package inmem

import (
	"sort"
	"strings"

	"github.com/spaceacademy/backoffice/core"
	"github.com/spaceacademy/backoffice/core/student"
)

type studentRepository struct {
	t *studentTable
}

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{t: db.students}
}

func (repo *studentRepository) CreateStudent(std student.Student) (student.Student, error) {
	repo.t.mu.Lock()
	defer repo.t.mu.Unlock()

	repo.t.seq++
	std.ID = repo.t.seq
	repo.t.rows = append(repo.t.rows, std)
	return std, nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	repo.t.mu.RLock()
	defer repo.t.mu.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) GetStudentByID(id int) (student.Student, error) {
	repo.t.mu.RLock()
	defer repo.t.mu.RUnlock()

	if i := repo.index(id); i >= 0 {
		return repo.t.rows[i], nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) FilterStudents(filter student.QueryFilter, orderings ...core.Ordering) ([]student.Student, error) {
	repo.t.mu.RLock()
	defer repo.t.mu.RUnlock()

	var students []student.Student
	if filter.IsEmpty() {
		students = repo.query()
	} else {
		search := strings.ToLower(filter.Search)
		students = make([]student.Student, 0, len(repo.t.rows))
		for _, std := range repo.t.rows {
			haystack := strings.ToLower(std.Name + " " + std.Email + " " + std.Major)
			if strings.Contains(haystack, search) {
				students = append(students, std)
			}
		}
	}
	orderStudents(students, orderings)
	return students, nil
}

func (repo *studentRepository) UpdateStudent(std student.Student) (student.Student, error) {
	repo.t.mu.Lock()
	defer repo.t.mu.Unlock()

	i := repo.index(std.ID)
	if i < 0 {
		return student.Student{}, student.ErrNotFound
	}
	// replace mutable fields in place; position and RegNo stay
	orig := &repo.t.rows[i]
	orig.Name = std.Name
	orig.Email = std.Email
	orig.Major = std.Major
	orig.UpdatedAt = std.UpdatedAt
	return *orig, nil
}

func (repo *studentRepository) DeleteStudentByID(id int) error {
	repo.t.mu.Lock()
	defer repo.t.mu.Unlock()

	i := repo.index(id)
	if i < 0 {
		return student.ErrNotFound
	}
	repo.t.rows = append(repo.t.rows[:i], repo.t.rows[i+1:]...)
	return nil
}

// callers must hold at least a read lock
func (repo *studentRepository) query() []student.Student {
	students := make([]student.Student, len(repo.t.rows))
	copy(students, repo.t.rows)
	return students
}

// callers must hold at least a read lock
func (repo *studentRepository) index(id int) int {
	for i, std := range repo.t.rows {
		if std.ID == id {
			return i
		}
	}
	return -1
}

func orderStudents(students []student.Student, orderings []core.Ordering) {
	for i := len(orderings) - 1; i >= 0; i-- {
		ord := orderings[i]
		var less func(a, b student.Student) bool
		switch ord.Field {
		case "name":
			less = func(a, b student.Student) bool { return a.Name < b.Name }
		case "email":
			less = func(a, b student.Student) bool { return a.Email < b.Email }
		case "major":
			less = func(a, b student.Student) bool { return a.Major < b.Major }
		default:
			continue
		}
		sort.SliceStable(students, func(a, b int) bool {
			if ord.Ascending {
				return less(students[a], students[b])
			}
			return less(students[b], students[a])
		})
	}
}
