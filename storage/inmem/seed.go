package inmem

import (
	"time"

	"github.com/spaceacademy/backoffice/core/course"
	"github.com/spaceacademy/backoffice/core/exam"
	"github.com/spaceacademy/backoffice/core/result"
	"github.com/spaceacademy/backoffice/core/student"
)

// Seed loads the demo fixtures into an empty DB. The back office starts from
// these on every boot; there is nothing to migrate.
func Seed(db *DB) error {
	now := time.Now().UTC()

	courseRepo := NewCourseRepository(db)
	seedCourses := []course.Course{
		{Code: "CS101", Title: "Introduction to Computer Science", StudentsEnrolled: 42, Files: []course.File{
			{ID: "f1c6f7f0-0000-4000-8000-000000000001", Name: "Syllabus.pdf", URL: "/v1/courses/1/files/f1c6f7f0-0000-4000-8000-000000000001"},
			{ID: "f1c6f7f0-0000-4000-8000-000000000002", Name: "Lecture 1 Slides.pptx", URL: "/v1/courses/1/files/f1c6f7f0-0000-4000-8000-000000000002"},
		}},
		{Code: "MA201", Title: "Calculus I", StudentsEnrolled: 35, Files: []course.File{
			{ID: "f1c6f7f0-0000-4000-8000-000000000003", Name: "Homework 1.docx", URL: "/v1/courses/2/files/f1c6f7f0-0000-4000-8000-000000000003"},
		}},
		{Code: "ENG101", Title: "English Composition", StudentsEnrolled: 50, Files: []course.File{}},
	}
	for _, crs := range seedCourses {
		crs.CreatedAt, crs.UpdatedAt = now, now
		if _, err := courseRepo.CreateCourse(crs); err != nil {
			return err
		}
	}

	studentRepo := NewStudentRepository(db)
	seedStudents := []student.Student{
		{RegNo: "S-001", Name: "Alice Johnson", Email: "alice.johnson@university.edu", Major: "Computer Science"},
		{RegNo: "S-002", Name: "Bob Smith", Email: "bob.smith@university.edu", Major: "Mechanical Engineering"},
		{RegNo: "S-003", Name: "Carol Williams", Email: "carol.williams@university.edu", Major: "English Literature"},
	}
	for _, std := range seedStudents {
		std.CreatedAt, std.UpdatedAt = now, now
		if _, err := studentRepo.CreateStudent(std); err != nil {
			return err
		}
	}

	resultRepo := NewResultRepository(db)
	seedResults := []result.Result{
		{StudentID: 1, StudentName: "Alice Johnson", CourseID: 1, CourseCode: "CS101", Grade: "A"},
		{StudentID: 2, StudentName: "Bob Smith", CourseID: 1, CourseCode: "CS101", Grade: "B+"},
		{StudentID: 1, StudentName: "Alice Johnson", CourseID: 2, CourseCode: "MA201", Grade: "A-"},
	}
	for _, res := range seedResults {
		res.CreatedAt, res.UpdatedAt = now, now
		if _, err := resultRepo.CreateResult(res); err != nil {
			return err
		}
	}

	examRepo := NewExamRepository(db)
	seedExams := []exam.Exam{
		{Course: "CS101", Date: time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), Time: "10:00 AM", Location: "Hall A"},
		{Course: "MA201", Date: time.Date(2024, time.June, 18, 0, 0, 0, 0, time.UTC), Time: "2:00 PM", Location: "Hall B"},
	}
	for _, exm := range seedExams {
		exm.CreatedAt, exm.UpdatedAt = now, now
		if _, err := examRepo.CreateExam(exm); err != nil {
			return err
		}
	}

	return nil
}
