package echoapi

import (
	"context"
	"net/http"
	"os"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/spaceacademy/backoffice/core"
	"github.com/spaceacademy/backoffice/core/auth"
	"github.com/spaceacademy/backoffice/core/course"
	"github.com/spaceacademy/backoffice/core/exam"
	"github.com/spaceacademy/backoffice/core/reeval"
	"github.com/spaceacademy/backoffice/core/result"
	"github.com/spaceacademy/backoffice/core/student"
)

type (
	Deps struct {
		Conf          *core.Config
		Logger        core.Logger
		Notifier      core.Notifier
		Validate      *validator.Validate
		Translator    ut.Translator
		Authenticator auth.Authenticator
		CourseSvc     *course.Service
		StudentSvc    *student.Service
		ResultSvc     *result.Service
		ExamSvc       *exam.Service
		ReevalSvc     *reeval.Service
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		addr     string
		app      *echo.Echo
		deps     *Deps
		codec    *securecookie.SecureCookie
		shutdown chan<- os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(addr string, shutdown chan<- os.Signal, deps *Deps) Server {
	var blockKey []byte
	if k := deps.Conf.Server.SessionBlockKey; k != "" {
		blockKey = []byte(k)
	}
	s := &server{
		addr:     addr,
		app:      echo.New(),
		deps:     deps,
		codec:    securecookie.New([]byte(deps.Conf.Server.SessionHashKey), blockKey),
		shutdown: shutdown,
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.deps.Notifier, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.registerPages()

	v1 := s.app.Group("/v1")
	registerAuthAPI(v1, s)

	ag := v1.Group("", s.authRequired)
	registerCourseAPI(ag, s.deps)
	registerStudentAPI(ag, s.deps)
	registerResultAPI(ag, s.deps)
	registerExamAPI(ag, s.deps)
	registerReevalAPI(ag, s.deps)
}

func (s *server) Start() error {
	return s.app.Start(s.addr)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

// signalShutdown asks main to shut the process down gracefully.
func (s *server) signalShutdown() {
	if s.shutdown != nil {
		s.shutdown <- syscall.SIGTERM
	}
}

type SuccessResponse struct {
	Success string `json:"success"`
}

func notifySuccess(notifier core.Notifier, description string) {
	notifier.Notify(core.Notification{
		Title:       "Success",
		Description: description,
		Severity:    core.SeverityInfo,
	})
}
