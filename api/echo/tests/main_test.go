package tests

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"reflect"
	"testing"
	"time"

	echoapi "github.com/spaceacademy/backoffice/api/echo"
	"github.com/spaceacademy/backoffice/core"
	"github.com/spaceacademy/backoffice/core/auth"
	"github.com/spaceacademy/backoffice/core/course"
	"github.com/spaceacademy/backoffice/core/exam"
	"github.com/spaceacademy/backoffice/core/reeval"
	"github.com/spaceacademy/backoffice/core/result"
	"github.com/spaceacademy/backoffice/core/student"
	emailsvc "github.com/spaceacademy/backoffice/services/email"
	logsvc "github.com/spaceacademy/backoffice/services/logger"
	notifsvc "github.com/spaceacademy/backoffice/services/notification"
	"github.com/spaceacademy/backoffice/storage/inmem"
)

const (
	adminEmail    = "admin@spaceacademy.com"
	adminPassword = "passw0rd!"
)

var errNotAuthenticated = httpErr{Error: "user not authenticated"}

type testApp struct {
	app      echoapi.Server
	conf     *core.Config
	notifier *notifsvc.NotifierMock

	crsSvc *course.Service
	stdSvc *student.Service
	resSvc *result.Service
	exmSvc *exam.Service
	reqSvc *reeval.Service
}

func newTestServer(t *testing.T) *testApp {
	conf := &core.Config{
		TestMode:         true,
		Env:              "TEST",
		AppName:          "Space Academy",
		SecretKey:        "q2b$8sh)e1u7#yt^$ce0m&ac!pdx5(h2(h!x)#*gm4em3",
		DefaultFromEmail: mail.Address{Name: "Space Academy", Address: "noreply@spaceacademy.com"},
		Admin: core.AdminConfig{
			Email:    adminEmail,
			Password: adminPassword,
		},
		Server: core.ServerConfig{
			Port:               "8000",
			JWTExpirationDelta: time.Hour,
			SessionCookieName:  "spaceacademy_session",
			SessionHashKey:     "ju7at#0d-hx2(hq5w8e6r)enb$+57=dz&uo3h9(h4x)#*c6",
		},
	}

	validate, translator := core.NewValidator()
	result.RegisterValidators(validate, translator)

	db, err := inmem.Open()
	if err != nil {
		t.Fatalf("newTestServer() failed: %v", err)
	}

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	notifier := notifsvc.NewNotifierMock()
	logger := logsvc.NewConsoleLogger(log.New(ioutil.Discard, "", 0))

	crsSvc := course.NewService(inmem.NewCourseRepository(db))
	stdSvc := student.NewService(inmem.NewStudentRepository(db), mailSvc)
	resSvc := result.NewService(inmem.NewResultRepository(db), stdSvc, crsSvc)
	exmSvc := exam.NewService(inmem.NewExamRepository(db))
	reqSvc := reeval.NewService(inmem.NewReevalRepository(db))

	authenticator, err := auth.NewAllowListAuthenticator(conf.Admin)
	if err != nil {
		t.Fatalf("newTestServer() failed: %v", err)
	}

	app := echoapi.NewServer(
		"",  /* addr */
		nil, /* shutdown */
		&echoapi.Deps{
			Conf:          conf,
			Logger:        logger,
			Notifier:      notifier,
			Validate:      validate,
			Translator:    translator,
			Authenticator: authenticator,
			CourseSvc:     crsSvc,
			StudentSvc:    stdSvc,
			ResultSvc:     resSvc,
			ExamSvc:       exmSvc,
			ReevalSvc:     reqSvc,
		},
	)

	return &testApp{
		app:      app,
		conf:     conf,
		notifier: notifier,
		crsSvc:   crsSvc,
		stdSvc:   stdSvc,
		resSvc:   resSvc,
		exmSvc:   exmSvc,
		reqSvc:   reqSvc,
	}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, ta *testApp) string {
	claims := echoapi.GetSessionClaims(ta.conf, auth.NewSession(adminEmail))
	token, err := echoapi.GenerateToken(ta.conf, claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

// login runs the real login flow and returns the session cookie it set.
func login(t *testing.T, ta *testApp) *http.Cookie {
	body := marchallObj(t, echoapi.LoginRequest{Email: adminEmail, Password: adminPassword})
	req, rec := newRequest(http.MethodPost, "/v1/auth/login", body)
	ta.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login() code = %d; body %s", rec.Code, rec.Body.String())
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == ta.conf.Server.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("login() set no session cookie")
	return nil
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return false, nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
