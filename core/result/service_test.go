package result_test

import (
	"net/mail"
	"testing"

	"github.com/spaceacademy/backoffice/core"
	"github.com/spaceacademy/backoffice/core/course"
	"github.com/spaceacademy/backoffice/core/result"
	"github.com/spaceacademy/backoffice/core/student"
	emailsvc "github.com/spaceacademy/backoffice/services/email"
	"github.com/spaceacademy/backoffice/storage/inmem"
)

type fixture struct {
	crsSvc *course.Service
	stdSvc *student.Service
	resSvc *result.Service
}

func setup(t *testing.T) fixture {
	db, err := inmem.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	conf := &core.Config{
		AppName:          "Space Academy",
		DefaultFromEmail: mail.Address{Name: "Space Academy", Address: "noreply@spaceacademy.com"},
	}
	crsSvc := course.NewService(inmem.NewCourseRepository(db))
	stdSvc := student.NewService(inmem.NewStudentRepository(db), emailsvc.NewConsoleServiceMock(conf))
	resSvc := result.NewService(inmem.NewResultRepository(db), stdSvc, crsSvc)
	return fixture{crsSvc: crsSvc, stdSvc: stdSvc, resSvc: resSvc}
}

func (f fixture) createStudent(t *testing.T, name, email string) student.Student {
	std, err := f.stdSvc.Create(student.NewStudent{Name: name, Email: email})
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return std
}

func (f fixture) createCourse(t *testing.T, code, title string) course.Course {
	crs, err := f.crsSvc.Create(course.NewCourse{Code: code, Title: title})
	if err != nil {
		t.Fatalf("createCourse() failed: %v", err)
	}
	return crs
}

func Test_Service_Create_denormalizes(t *testing.T) {
	f := setup(t)
	std := f.createStudent(t, "Alice Johnson", "alice.johnson@university.edu")
	crs := f.createCourse(t, "CS101", "Introduction to Computer Science")

	res, err := f.resSvc.Create(result.NewResult{StudentID: std.ID, CourseID: crs.ID, Grade: "A"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if res.StudentName != "Alice Johnson" || res.CourseCode != "CS101" {
		t.Errorf("result = %+v; want denormalized name and code", res)
	}
}

func Test_Service_Create_duplicatePairRejected(t *testing.T) {
	f := setup(t)
	std := f.createStudent(t, "Alice Johnson", "alice.johnson@university.edu")
	crs := f.createCourse(t, "CS101", "Introduction to Computer Science")

	if _, err := f.resSvc.Create(result.NewResult{StudentID: std.ID, CourseID: crs.ID, Grade: "A"}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	_, err := f.resSvc.Create(result.NewResult{StudentID: std.ID, CourseID: crs.ID, Grade: "B"})
	if !core.IsValidationError(err) {
		t.Fatalf("duplicate Create() error = %v; want validation error", err)
	}

	// the original record is untouched
	results, err := f.resSvc.QueryAll()
	if err != nil {
		t.Fatalf("QueryAll() failed: %v", err)
	}
	if len(results) != 1 || results[0].Grade != "A" {
		t.Errorf("results = %+v; want the single original with grade A", results)
	}
}

func Test_Service_Create_missingRefs(t *testing.T) {
	f := setup(t)
	std := f.createStudent(t, "Alice Johnson", "alice.johnson@university.edu")
	crs := f.createCourse(t, "CS101", "Introduction to Computer Science")

	tests := []struct {
		name      string
		studentID int
		courseID  int
	}{
		{name: "unknown student", studentID: 404, courseID: crs.ID},
		{name: "unknown course", studentID: std.ID, courseID: 404},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.resSvc.Create(result.NewResult{StudentID: tt.studentID, CourseID: tt.courseID, Grade: "A"})
			if !core.IsValidationError(err) {
				t.Errorf("Create() error = %v; want validation error", err)
			}
		})
	}
}

func Test_Service_denormalizedFieldsNeverPropagate(t *testing.T) {
	f := setup(t)
	std := f.createStudent(t, "Alice Johnson", "alice.johnson@university.edu")
	crs1 := f.createCourse(t, "CS101", "Introduction to Computer Science")
	crs2 := f.createCourse(t, "MA201", "Calculus I")

	old, err := f.resSvc.Create(result.NewResult{StudentID: std.ID, CourseID: crs1.ID, Grade: "A"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if _, err := f.stdSvc.Update(std.ID, student.UpdateStudent{Name: "Alice Brown", Email: std.Email}); err != nil {
		t.Fatalf("student Update() failed: %v", err)
	}

	// the existing result keeps the name captured at write time
	got, err := f.resSvc.GetByID(old.ID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if got.StudentName != "Alice Johnson" {
		t.Errorf("StudentName = %s; want the stale Alice Johnson", got.StudentName)
	}

	// a new write snapshots the current name
	fresh, err := f.resSvc.Create(result.NewResult{StudentID: std.ID, CourseID: crs2.ID, Grade: "B"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if fresh.StudentName != "Alice Brown" {
		t.Errorf("StudentName = %s; want Alice Brown", fresh.StudentName)
	}
}

func Test_Service_Update(t *testing.T) {
	f := setup(t)
	alice := f.createStudent(t, "Alice Johnson", "alice.johnson@university.edu")
	bob := f.createStudent(t, "Bob Smith", "bob.smith@university.edu")
	crs := f.createCourse(t, "CS101", "Introduction to Computer Science")

	resAlice, err := f.resSvc.Create(result.NewResult{StudentID: alice.ID, CourseID: crs.ID, Grade: "A"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if _, err := f.resSvc.Create(result.NewResult{StudentID: bob.ID, CourseID: crs.ID, Grade: "B+"}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	// moving onto an occupied pair is rejected like a duplicate create
	_, err = f.resSvc.Update(resAlice.ID, result.UpdateResult{StudentID: bob.ID, CourseID: crs.ID, Grade: "A"})
	if !core.IsValidationError(err) {
		t.Errorf("Update() onto occupied pair error = %v; want validation error", err)
	}

	// keeping its own pair is fine; the grade just changes
	updated, err := f.resSvc.Update(resAlice.ID, result.UpdateResult{StudentID: alice.ID, CourseID: crs.ID, Grade: "A-"})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if updated.Grade != "A-" {
		t.Errorf("Grade = %s; want A-", updated.Grade)
	}

	if _, err := f.resSvc.Update(404, result.UpdateResult{StudentID: alice.ID, CourseID: crs.ID, Grade: "A"}); err != result.ErrNotFound {
		t.Errorf("Update(404) error = %v; want ErrNotFound", err)
	}
}

func Test_Service_Summarize(t *testing.T) {
	f := setup(t)
	alice := f.createStudent(t, "Alice Johnson", "alice.johnson@university.edu")
	bob := f.createStudent(t, "Bob Smith", "bob.smith@university.edu")
	cs := f.createCourse(t, "CS101", "Introduction to Computer Science")
	ma := f.createCourse(t, "MA201", "Calculus I")

	seed := []result.NewResult{
		{StudentID: alice.ID, CourseID: cs.ID, Grade: "A"},
		{StudentID: bob.ID, CourseID: cs.ID, Grade: "B+"},
		{StudentID: alice.ID, CourseID: ma.ID, Grade: "A-"},
	}
	for _, nr := range seed {
		if _, err := f.resSvc.Create(nr); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}

	sum, err := f.resSvc.Summarize("")
	if err != nil {
		t.Fatalf("Summarize() failed: %v", err)
	}
	if sum.Total != 3 {
		t.Errorf("Total = %d; want 3", sum.Total)
	}
	wantGrades := []result.GradeCount{{Grade: "A", Count: 2}, {Grade: "B", Count: 1}}
	if len(sum.Grades) != len(wantGrades) {
		t.Fatalf("Grades = %+v; want %+v", sum.Grades, wantGrades)
	}
	for i, want := range wantGrades {
		if sum.Grades[i] != want {
			t.Fatalf("Grades = %+v; want %+v", sum.Grades, wantGrades)
		}
	}
	// per-course tallies come back sorted by code
	if len(sum.Courses) != 2 || sum.Courses[0].CourseCode != "CS101" || sum.Courses[1].CourseCode != "MA201" {
		t.Fatalf("Courses = %+v", sum.Courses)
	}
	if sum.Courses[0].Results != 2 || sum.Courses[0].GPA != 3.65 {
		t.Errorf("CS101 summary = %+v; want 2 results, GPA 3.65", sum.Courses[0])
	}
	if sum.Courses[1].Results != 1 || sum.Courses[1].GPA != 3.7 {
		t.Errorf("MA201 summary = %+v; want 1 result, GPA 3.7", sum.Courses[1])
	}

	// restricted to one course
	sum, err = f.resSvc.Summarize("MA201")
	if err != nil {
		t.Fatalf("Summarize() failed: %v", err)
	}
	if sum.Total != 1 || len(sum.Courses) != 1 || sum.Courses[0].CourseCode != "MA201" {
		t.Errorf("summary = %+v; want MA201 only", sum)
	}
}
