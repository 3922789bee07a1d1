package inmem

import (
	"strings"

	"github.com/spaceacademy/backoffice/core"
	"github.com/spaceacademy/backoffice/core/reeval"
)

type reevalRepository struct {
	t *reevalTable
}

func NewReevalRepository(db *DB) reeval.Repository {
	return &reevalRepository{t: db.reevals}
}

func (repo *reevalRepository) CreateRequest(req reeval.Request) (reeval.Request, error) {
	repo.t.mu.Lock()
	defer repo.t.mu.Unlock()

	repo.t.seq++
	req.ID = repo.t.seq
	repo.t.rows = append(repo.t.rows, req)
	return req, nil
}

func (repo *reevalRepository) QueryAllRequests() ([]reeval.Request, error) {
	repo.t.mu.RLock()
	defer repo.t.mu.RUnlock()
	return repo.query(), nil
}

func (repo *reevalRepository) GetRequestByID(id int) (reeval.Request, error) {
	repo.t.mu.RLock()
	defer repo.t.mu.RUnlock()

	if i := repo.index(id); i >= 0 {
		return repo.t.rows[i], nil
	}
	return reeval.Request{}, reeval.ErrNotFound
}

func (repo *reevalRepository) FilterRequests(filter reeval.QueryFilter, orderings ...core.Ordering) ([]reeval.Request, error) {
	repo.t.mu.RLock()
	defer repo.t.mu.RUnlock()

	if filter.IsEmpty() {
		return repo.query(), nil
	}
	search := strings.ToLower(filter.Search)
	requests := make([]reeval.Request, 0, len(repo.t.rows))
	for _, req := range repo.t.rows {
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		if search != "" {
			haystack := strings.ToLower(req.StudentName + " " + req.StudentID + " " + req.Course)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func (repo *reevalRepository) UpdateRequest(req reeval.Request) (reeval.Request, error) {
	repo.t.mu.Lock()
	defer repo.t.mu.Unlock()

	i := repo.index(req.ID)
	if i < 0 {
		return reeval.Request{}, reeval.ErrNotFound
	}
	// replace mutable fields in place; position and StudentID stay
	orig := &repo.t.rows[i]
	orig.StudentName = req.StudentName
	orig.Course = req.Course
	orig.Reason = req.Reason
	orig.Status = req.Status
	orig.UpdatedAt = req.UpdatedAt
	return *orig, nil
}

func (repo *reevalRepository) DeleteRequestByID(id int) error {
	repo.t.mu.Lock()
	defer repo.t.mu.Unlock()

	i := repo.index(id)
	if i < 0 {
		return reeval.ErrNotFound
	}
	repo.t.rows = append(repo.t.rows[:i], repo.t.rows[i+1:]...)
	return nil
}

// callers must hold at least a read lock
func (repo *reevalRepository) query() []reeval.Request {
	requests := make([]reeval.Request, len(repo.t.rows))
	copy(requests, repo.t.rows)
	return requests
}

// callers must hold at least a read lock
func (repo *reevalRepository) index(id int) int {
	for i, req := range repo.t.rows {
		if req.ID == id {
			return i
		}
	}
	return -1
}
