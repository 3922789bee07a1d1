package inmem

import (
	"sort"
	"strings"

	"github.com/spaceacademy/backoffice/core"
	"github.com/spaceacademy/backoffice/core/exam"
)

type examRepository struct {
	t *examTable
}

func NewExamRepository(db *DB) exam.Repository {
	return &examRepository{t: db.exams}
}

func (repo *examRepository) CreateExam(exm exam.Exam) (exam.Exam, error) {
	repo.t.mu.Lock()
	defer repo.t.mu.Unlock()

	repo.t.seq++
	exm.ID = repo.t.seq
	repo.t.rows = append(repo.t.rows, exm)
	return exm, nil
}

func (repo *examRepository) QueryAllExams() ([]exam.Exam, error) {
	repo.t.mu.RLock()
	defer repo.t.mu.RUnlock()
	return repo.query(), nil
}

func (repo *examRepository) GetExamByID(id int) (exam.Exam, error) {
	repo.t.mu.RLock()
	defer repo.t.mu.RUnlock()

	if i := repo.index(id); i >= 0 {
		return repo.t.rows[i], nil
	}
	return exam.Exam{}, exam.ErrNotFound
}

func (repo *examRepository) FilterExams(filter exam.QueryFilter, orderings ...core.Ordering) ([]exam.Exam, error) {
	repo.t.mu.RLock()
	defer repo.t.mu.RUnlock()

	var exams []exam.Exam
	if filter.IsEmpty() {
		exams = repo.query()
	} else {
		search := strings.ToLower(filter.Search)
		exams = make([]exam.Exam, 0, len(repo.t.rows))
		for _, exm := range repo.t.rows {
			haystack := strings.ToLower(exm.Course + " " + exm.Location)
			if strings.Contains(haystack, search) {
				exams = append(exams, exm)
			}
		}
	}
	orderExams(exams, orderings)
	return exams, nil
}

func (repo *examRepository) UpdateExam(exm exam.Exam) (exam.Exam, error) {
	repo.t.mu.Lock()
	defer repo.t.mu.Unlock()

	i := repo.index(exm.ID)
	if i < 0 {
		return exam.Exam{}, exam.ErrNotFound
	}
	// replace mutable fields in place; position stays
	orig := &repo.t.rows[i]
	orig.Course = exm.Course
	orig.Date = exm.Date
	orig.Time = exm.Time
	orig.Location = exm.Location
	orig.UpdatedAt = exm.UpdatedAt
	return *orig, nil
}

func (repo *examRepository) DeleteExamByID(id int) error {
	repo.t.mu.Lock()
	defer repo.t.mu.Unlock()

	i := repo.index(id)
	if i < 0 {
		return exam.ErrNotFound
	}
	repo.t.rows = append(repo.t.rows[:i], repo.t.rows[i+1:]...)
	return nil
}

// callers must hold at least a read lock
func (repo *examRepository) query() []exam.Exam {
	exams := make([]exam.Exam, len(repo.t.rows))
	copy(exams, repo.t.rows)
	return exams
}

// callers must hold at least a read lock
func (repo *examRepository) index(id int) int {
	for i, exm := range repo.t.rows {
		if exm.ID == id {
			return i
		}
	}
	return -1
}

func orderExams(exams []exam.Exam, orderings []core.Ordering) {
	for i := len(orderings) - 1; i >= 0; i-- {
		ord := orderings[i]
		var less func(a, b exam.Exam) bool
		switch ord.Field {
		case "course":
			less = func(a, b exam.Exam) bool { return a.Course < b.Course }
		case "date":
			less = func(a, b exam.Exam) bool { return a.Date.Before(b.Date) }
		case "location":
			less = func(a, b exam.Exam) bool { return a.Location < b.Location }
		default:
			continue
		}
		sort.SliceStable(exams, func(a, b int) bool {
			if ord.Ascending {
				return less(exams[a], exams[b])
			}
			return less(exams[b], exams[a])
		})
	}
}
