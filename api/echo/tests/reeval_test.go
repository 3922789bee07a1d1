package tests

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/spaceacademy/backoffice/core"
	"github.com/spaceacademy/backoffice/core/reeval"
)

func Test_reevalApi_create(t *testing.T) {
	ta := newTestServer(t)
	token := getToken(t, ta)

	t.Run("valid", func(t *testing.T) {
		body := marchallObj(t, reeval.NewRequest{
			StudentName: "Alice Johnson",
			StudentID:   "S-001",
			Course:      "CS101",
			Reason:      "The second question was graded against the wrong answer key.",
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/reevaluations", token, body)
		ta.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
		}
		var created reeval.Request
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if created.ID == 0 || created.Status != reeval.StatusPending {
			t.Errorf("request = %+v; want a fresh pending request", created)
		}

		var submitted bool
		for _, n := range ta.notifier.Sent {
			if n.Title == "Request Submitted!" && n.Severity == core.SeverityInfo {
				submitted = true
			}
		}
		if !submitted {
			t.Error("no 'Request Submitted!' notification")
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		body := marchallObj(t, reeval.NewRequest{StudentName: "Alice Johnson"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/reevaluations", token, body)
		ta.app.ServeHTTP(rec, req)
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"student_id": "this field is required",
				"course":     "this field is required",
				"reason":     "this field is required",
			}),
		}
		checkCodeAndData(t, tt, rec)
	})
}

func Test_reevalApi_review(t *testing.T) {
	ta := newTestServer(t)
	token := getToken(t, ta)

	req1, err := ta.reqSvc.Create(reeval.NewRequest{
		StudentName: "Alice Johnson", StudentID: "S-001", Course: "CS101", Reason: "Grading error on question 2.",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	req2, err := ta.reqSvc.Create(reeval.NewRequest{
		StudentName: "Bob Smith", StudentID: "S-002", Course: "MA201", Reason: "Missing marks for the bonus section.",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	path := "/v1/reevaluations/" + strconv.Itoa(req1.ID)

	t.Run("approve", func(t *testing.T) {
		body := marchallObj(t, reeval.UpdateRequest{
			StudentName: req1.StudentName, Course: req1.Course, Reason: req1.Reason, Status: reeval.StatusApproved,
		})
		req, rec := newAuthRequest(http.MethodPut, path, token, body)
		ta.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
		}
		var updated reeval.Request
		if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if updated.Status != reeval.StatusApproved {
			t.Errorf("Status = %s; want approved", updated.Status)
		}
		if updated.StudentID != req1.StudentID {
			t.Errorf("StudentID = %s; want unchanged %s", updated.StudentID, req1.StudentID)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		body := marchallObj(t, reeval.UpdateRequest{
			StudentName: req1.StudentName, Course: req1.Course, Reason: req1.Reason, Status: "maybe",
		})
		req, rec := newAuthRequest(http.MethodPut, path, token, body)
		ta.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %d; want 400", rec.Code)
		}
	})

	t.Run("filter by status", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/reevaluations?status=pending", token)
		ta.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
		}
		var pending []reeval.Request
		if err := json.Unmarshal(rec.Body.Bytes(), &pending); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if len(pending) != 1 || pending[0].ID != req2.ID {
			t.Errorf("pending = %+v; want only the second request", pending)
		}
	})

	t.Run("destroy", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, path, token)
		ta.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %d; want 204", rec.Code)
		}

		req, rec = newAuthRequest(http.MethodGet, path, token)
		ta.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}
		checkCodeAndData(t, tt, rec)
	})
}
