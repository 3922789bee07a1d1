package tests

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/spaceacademy/backoffice/core/result"
)

func Test_resultApi_create(t *testing.T) {
	ta := newTestServer(t)
	token := getToken(t, ta)

	alice := createStudent(t, ta, "Alice Johnson", "alice.johnson@university.edu", "Computer Science")
	cs := createCourse(t, ta, "CS101", "Introduction to Computer Science")

	t.Run("valid", func(t *testing.T) {
		body := marchallObj(t, result.NewResult{StudentID: alice.ID, CourseID: cs.ID, Grade: "A"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/results", token, body)
		ta.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
		}
		var res result.Result
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if res.StudentName != "Alice Johnson" || res.CourseCode != "CS101" || res.Grade != "A" {
			t.Errorf("result = %+v; want denormalized name and code", res)
		}
	})

	tests := []httpTest{
		{
			name: "duplicate pair", body: marchallObj(t, result.NewResult{StudentID: alice.ID, CourseID: cs.ID, Grade: "B"}),
			wantData: marchallObj(t, map[string]string{
				"student_id": "a result already exists for this student and course",
				"course_id":  "a result already exists for this student and course",
			}),
		},
		{
			name: "unknown student", body: marchallObj(t, result.NewResult{StudentID: 404, CourseID: cs.ID, Grade: "A"}),
			wantData: marchallObj(t, map[string]string{"student_id": "referenced student not found"}),
		},
		{
			name: "unknown course", body: marchallObj(t, result.NewResult{StudentID: alice.ID, CourseID: 404, Grade: "A"}),
			wantData: marchallObj(t, map[string]string{"course_id": "referenced course not found"}),
		},
		{
			name: "grade off the scale", body: marchallObj(t, result.NewResult{StudentID: alice.ID, CourseID: cs.ID, Grade: "E"}),
			wantData: marchallObj(t, map[string]string{"grade": "grade must be one of the grade scale values"}),
		},
		{
			name: "missing fields", body: marchallObj(t, result.NewResult{}),
			wantData: marchallObj(t, map[string]string{
				"student_id": "this field is required",
				"course_id":  "this field is required",
				"grade":      "this field is required",
			}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/results"
		tt.token = token
		tt.wantCode = http.StatusBadRequest

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			ta.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_resultApi_update(t *testing.T) {
	ta := newTestServer(t)
	token := getToken(t, ta)

	alice := createStudent(t, ta, "Alice Johnson", "alice.johnson@university.edu", "Computer Science")
	bob := createStudent(t, ta, "Bob Smith", "bob.smith@university.edu", "Mechanical Engineering")
	cs := createCourse(t, ta, "CS101", "Introduction to Computer Science")

	resAlice, err := ta.resSvc.Create(result.NewResult{StudentID: alice.ID, CourseID: cs.ID, Grade: "A"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if _, err := ta.resSvc.Create(result.NewResult{StudentID: bob.ID, CourseID: cs.ID, Grade: "B+"}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	path := "/v1/results/" + strconv.Itoa(resAlice.ID)

	t.Run("moving onto an occupied pair is rejected", func(t *testing.T) {
		body := marchallObj(t, result.UpdateResult{StudentID: bob.ID, CourseID: cs.ID, Grade: "A"})
		req, rec := newAuthRequest(http.MethodPut, path, token, body)
		ta.app.ServeHTTP(rec, req)
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"student_id": "a result already exists for this student and course",
				"course_id":  "a result already exists for this student and course",
			}),
		}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("keeping its own pair is fine", func(t *testing.T) {
		body := marchallObj(t, result.UpdateResult{StudentID: alice.ID, CourseID: cs.ID, Grade: "A-"})
		req, rec := newAuthRequest(http.MethodPut, path, token, body)
		ta.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
		}
		var updated result.Result
		if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if updated.Grade != "A-" {
			t.Errorf("Grade = %s; want A-", updated.Grade)
		}
	})
}

func Test_resultApi_summary(t *testing.T) {
	ta := newTestServer(t)
	token := getToken(t, ta)

	alice := createStudent(t, ta, "Alice Johnson", "alice.johnson@university.edu", "Computer Science")
	bob := createStudent(t, ta, "Bob Smith", "bob.smith@university.edu", "Mechanical Engineering")
	cs := createCourse(t, ta, "CS101", "Introduction to Computer Science")
	ma := createCourse(t, ta, "MA201", "Calculus I")

	seed := []result.NewResult{
		{StudentID: alice.ID, CourseID: cs.ID, Grade: "A"},
		{StudentID: bob.ID, CourseID: cs.ID, Grade: "B+"},
		{StudentID: alice.ID, CourseID: ma.ID, Grade: "A-"},
	}
	for _, nr := range seed {
		if _, err := ta.resSvc.Create(nr); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}

	tests := []httpTest{
		{
			name: "all courses", path: "/v1/results/summary",
			wantData: marchallObj(t, result.Summary{
				Total:  3,
				Grades: []result.GradeCount{{Grade: "A", Count: 2}, {Grade: "B", Count: 1}},
				Courses: []result.CourseSummary{
					{CourseCode: "CS101", Results: 2, GPA: 3.65},
					{CourseCode: "MA201", Results: 1, GPA: 3.7},
				},
			}),
		},
		{
			name: "one course", path: "/v1/results/summary?course_code=MA201",
			wantData: marchallObj(t, result.Summary{
				Total:   1,
				Grades:  []result.GradeCount{{Grade: "A", Count: 1}},
				Courses: []result.CourseSummary{{CourseCode: "MA201", Results: 1, GPA: 3.7}},
			}),
		},
		{
			name: "unknown course", path: "/v1/results/summary?course_code=XX999",
			wantData: marchallObj(t, result.Summary{Total: 0}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.token = token
		tt.wantCode = http.StatusOK

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			ta.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
