// Package inmem implements the entity repositories over in-process ordered
// collections. This is the system of record by design: collections reset on
// every process start and are owned by a single writer, so a plain RWMutex
// per table is all the coordination needed. Ids come from a per-table
// sequence and are never reused after a delete.
package inmem

import (
	"sync"

	"github.com/spaceacademy/backoffice/core/course"
	"github.com/spaceacademy/backoffice/core/exam"
	"github.com/spaceacademy/backoffice/core/reeval"
	"github.com/spaceacademy/backoffice/core/result"
	"github.com/spaceacademy/backoffice/core/student"
)

type (
	DB struct {
		courses  *courseTable
		students *studentTable
		results  *resultTable
		exams    *examTable
		reevals  *reevalTable
	}

	courseTable struct {
		mu   sync.RWMutex
		rows []course.Course
		seq  int
	}

	studentTable struct {
		mu   sync.RWMutex
		rows []student.Student
		seq  int
	}

	resultTable struct {
		mu   sync.RWMutex
		rows []result.Result
		seq  int
	}

	examTable struct {
		mu   sync.RWMutex
		rows []exam.Exam
		seq  int
	}

	reevalTable struct {
		mu   sync.RWMutex
		rows []reeval.Request
		seq  int
	}
)

func Open() (*DB, error) {
	db := &DB{
		courses:  &courseTable{},
		students: &studentTable{},
		results:  &resultTable{},
		exams:    &examTable{},
		reevals:  &reevalTable{},
	}
	return db, nil
}
