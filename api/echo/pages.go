package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// The SPA's page surface. Every path serves the same shell; the frontend
// router takes it from there. All but /login sit behind the page guard.
var pagePaths = []string{
	"/",
	"/courses",
	"/courses/:courseId",
	"/students",
	"/students/:studentId",
	"/results",
	"/exams",
	"/about",
}

const appShell = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Space Academy</title></head>
<body><div id="root"></div></body>
</html>
`

func (s *server) registerPages() {
	for _, path := range pagePaths {
		s.app.GET(path, s.page, s.pageGuard)
	}
	s.app.GET("/login", s.loginPage)
}

func (s *server) page(ctx echo.Context) error {
	return ctx.HTML(http.StatusOK, appShell)
}

// loginPage sends already-authenticated visitors home.
func (s *server) loginPage(ctx echo.Context) error {
	if sess := s.currentSession(ctx); sess.Authenticated {
		return ctx.Redirect(http.StatusFound, "/")
	}
	return ctx.HTML(http.StatusOK, appShell)
}
