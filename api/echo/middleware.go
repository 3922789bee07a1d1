package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// authRequired protects the API surface: requests without a valid session
// record or bearer token get 401.
func (s *server) authRequired(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if sess := s.currentSession(ctx); sess.Authenticated {
			return next(ctx)
		}
		return errUnauthorized
	}
}

// pageGuard protects the page surface: unauthenticated navigation anywhere
// but /login redirects to /login.
func (s *server) pageGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		sess := s.currentSession(ctx)
		if !sess.Allow(ctx.Path()) {
			return ctx.Redirect(http.StatusFound, "/login")
		}
		return next(ctx)
	}
}
