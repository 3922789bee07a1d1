package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/spaceacademy/backoffice/core"
	"github.com/spaceacademy/backoffice/core/auth"
)

type authApi struct {
	s *server
}

func registerAuthAPI(g *echo.Group, s *server) {
	api := authApi{s: s}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/logout", api.logout)
	ag.GET("/session", api.session)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email_tld"`
	Password string `json:"password" validate:"required"`
}

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}

type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Handlers

func (api *authApi) login(ctx echo.Context) error {
	deps := api.s.deps

	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(deps.Validate); err != nil {
		return err
	}

	if err := deps.Authenticator.Authenticate(data.Email, data.Password); err != nil {
		if errors.Cause(err) == auth.ErrInvalidCredentials {
			return core.NewValidationError(errors.New("Invalid email or password. Please try again."))
		}
		return errors.Wrap(err, "authenticating")
	}

	sess := auth.NewSession(data.Email)
	if err := saveSessionCookie(ctx, api.s.codec, deps.Conf.Server.SessionCookieName, sess); err != nil {
		return errors.Wrap(err, "saving session cookie")
	}
	token, err := GenerateToken(deps.Conf, GetSessionClaims(deps.Conf, sess))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	notifySuccess(deps.Notifier, "Logged in successfully")
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Email: sess.Email})
}

func (api *authApi) logout(ctx echo.Context) error {
	clearSessionCookie(ctx, api.s.deps.Conf.Server.SessionCookieName)
	ctx.Set(contextSessionKey, auth.Anonymous)
	notifySuccess(api.s.deps.Notifier, "Logged out successfully")
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Logged out."})
}

// session reports the current authentication state; useful for the frontend
// to rehydrate on boot.
func (api *authApi) session(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.s.currentSession(ctx))
}
