package echoapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"

	"github.com/spaceacademy/backoffice/core"
	"github.com/spaceacademy/backoffice/core/auth"
)

var contextSessionKey = "session"

// Claims represents the authorization claims transmitted via a JWT; API
// clients that cannot hold a cookie authenticate with a bearer token instead.
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
}

// GetSessionClaims builds the JWT claims equivalent to an authenticated session.
func GetSessionClaims(conf *core.Config, sess auth.Session) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   sess.Email,
			Audience:  "Back Office",
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email: sess.Email,
	}
}

// GenerateToken generates a signed JWT token string representing the session Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(conf.SecretKey))
}

func parseToken(conf *core.Config, tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnauthorized
		}
		return []byte(conf.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, errUnauthorized
	}
	return claims, nil
}

// currentSession rehydrates the session from the request: the securecookie
// session record first, then a JWT bearer token. Absence or tampering yields
// the anonymous session.
func (s *server) currentSession(ctx echo.Context) auth.Session {
	if sess, ok := ctx.Get(contextSessionKey).(auth.Session); ok {
		return sess
	}

	sess := auth.Anonymous
	if cookie, err := ctx.Cookie(s.deps.Conf.Server.SessionCookieName); err == nil {
		record := make(map[string]string)
		if err := s.codec.Decode(s.deps.Conf.Server.SessionCookieName, cookie.Value, &record); err == nil {
			sess = auth.SessionFromRecord(record)
		}
	}
	if !sess.Authenticated {
		if header := ctx.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
			if claims, err := parseToken(s.deps.Conf, strings.TrimPrefix(header, "Bearer ")); err == nil {
				sess = auth.NewSession(claims.Email)
			}
		}
	}

	ctx.Set(contextSessionKey, sess)
	return sess
}

// saveSessionCookie persists the session record in a long-lived cookie; it
// stays valid until explicit logout.
func saveSessionCookie(ctx echo.Context, codec *securecookie.SecureCookie, name string, sess auth.Session) error {
	encoded, err := codec.Encode(name, sess.Record())
	if err != nil {
		return err
	}
	ctx.SetCookie(&http.Cookie{
		Name:     name,
		Value:    encoded,
		Path:     "/",
		MaxAge:   10 * 365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func clearSessionCookie(ctx echo.Context, name string) {
	ctx.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
