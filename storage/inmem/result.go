package inmem

import (
	"strings"

	"github.com/spaceacademy/backoffice/core"
	"github.com/spaceacademy/backoffice/core/result"
)

type resultRepository struct {
	t *resultTable
}

func NewResultRepository(db *DB) result.Repository {
	return &resultRepository{t: db.results}
}

func (repo *resultRepository) CheckResultUniqueness(studentID, courseID int, excludedIDs ...int) error {
	repo.t.mu.RLock()
	defer repo.t.mu.RUnlock()

	for _, res := range repo.t.rows {
		if res.StudentID != studentID || res.CourseID != courseID {
			continue
		}
		if !isExcluded(res.ID, excludedIDs) {
			return result.ErrResultExists
		}
	}
	return nil
}

func (repo *resultRepository) CreateResult(res result.Result) (result.Result, error) {
	repo.t.mu.Lock()
	defer repo.t.mu.Unlock()

	repo.t.seq++
	res.ID = repo.t.seq
	repo.t.rows = append(repo.t.rows, res)
	return res, nil
}

func (repo *resultRepository) QueryAllResults() ([]result.Result, error) {
	repo.t.mu.RLock()
	defer repo.t.mu.RUnlock()
	return repo.query(), nil
}

func (repo *resultRepository) GetResultByID(id int) (result.Result, error) {
	repo.t.mu.RLock()
	defer repo.t.mu.RUnlock()

	if i := repo.index(id); i >= 0 {
		return repo.t.rows[i], nil
	}
	return result.Result{}, result.ErrNotFound
}

func (repo *resultRepository) FilterResults(filter result.QueryFilter, orderings ...core.Ordering) ([]result.Result, error) {
	repo.t.mu.RLock()
	defer repo.t.mu.RUnlock()

	if filter.IsEmpty() {
		return repo.query(), nil
	}
	search := strings.ToLower(filter.Search)
	results := make([]result.Result, 0, len(repo.t.rows))
	for _, res := range repo.t.rows {
		if filter.CourseCode != "" && res.CourseCode != filter.CourseCode {
			continue
		}
		if search != "" {
			haystack := strings.ToLower(res.StudentName + " " + res.CourseCode + " " + res.Grade)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		results = append(results, res)
	}
	return results, nil
}

func (repo *resultRepository) UpdateResult(res result.Result) (result.Result, error) {
	repo.t.mu.Lock()
	defer repo.t.mu.Unlock()

	i := repo.index(res.ID)
	if i < 0 {
		return result.Result{}, result.ErrNotFound
	}
	// replace mutable fields in place; position stays
	orig := &repo.t.rows[i]
	orig.StudentID = res.StudentID
	orig.StudentName = res.StudentName
	orig.CourseID = res.CourseID
	orig.CourseCode = res.CourseCode
	orig.Grade = res.Grade
	orig.UpdatedAt = res.UpdatedAt
	return *orig, nil
}

func (repo *resultRepository) DeleteResultByID(id int) error {
	repo.t.mu.Lock()
	defer repo.t.mu.Unlock()

	i := repo.index(id)
	if i < 0 {
		return result.ErrNotFound
	}
	repo.t.rows = append(repo.t.rows[:i], repo.t.rows[i+1:]...)
	return nil
}

// callers must hold at least a read lock
func (repo *resultRepository) query() []result.Result {
	results := make([]result.Result, len(repo.t.rows))
	copy(results, repo.t.rows)
	return results
}

// callers must hold at least a read lock
func (repo *resultRepository) index(id int) int {
	for i, res := range repo.t.rows {
		if res.ID == id {
			return i
		}
	}
	return -1
}

func isExcluded(id int, excludedIDs []int) bool {
	for _, excl := range excludedIDs {
		if id == excl {
			return true
		}
	}
	return false
}
