package session

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CookieName is the name of the session cookie.
const CookieName = "TM_session"

// LoginPath is where unauthenticated page requests are sent.
const LoginPath = "/login"

// ErrUnauthenticated matches any *UnauthenticatedError.
var ErrUnauthenticated = errors.New("unauthenticated")

// UnauthenticatedError is returned by Gate.RequireUserID. The route layer decides
// whether it becomes a redirect to LoginURL or a 401.
type UnauthenticatedError struct {
	RedirectTo string
}

func (e *UnauthenticatedError) Error() string {
	return fmt.Sprintf("unauthenticated: login required for %s", e.RedirectTo)
}

func (e *UnauthenticatedError) Is(target error) bool { return target == ErrUnauthenticated }

// LoginURL is the login page carrying the return path.
func (e *UnauthenticatedError) LoginURL() string { return LoginURL(e.RedirectTo) }

// LoginURL builds /login?redirectTo=<path>. Slashes are left readable; they are legal in a query.
func LoginURL(redirectTo string) string {
	if redirectTo == "" {
		return LoginPath
	}
	return LoginPath + "?redirectTo=" + strings.ReplaceAll(url.QueryEscape(redirectTo), "%2F", "/")
}

// CookieConfig holds the attributes of the session cookie.
type CookieConfig struct {
	Name     string
	Path     string
	MaxAge   time.Duration
	Secure   bool
	SameSite http.SameSite
}

// DefaultCookieConfig is TM_session, path /, 30 days, HttpOnly, SameSite=Lax.
// secure should be true in production only: browsers drop Secure cookies on plain http://localhost.
func DefaultCookieConfig(secure bool) CookieConfig {
	return CookieConfig{
		Name:     CookieName,
		Path:     "/",
		MaxAge:   DefaultTTL,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Gate reads and writes the session cookie.
type Gate struct {
	codec  Codec
	cookie CookieConfig
	now    func() time.Time
}

func NewGate(codec Codec, cookie CookieConfig) *Gate {
	if cookie.Name == "" {
		cookie.Name = CookieName
	}
	if cookie.Path == "" {
		cookie.Path = "/"
	}
	if cookie.MaxAge <= 0 {
		cookie.MaxAge = DefaultTTL
	}
	return &Gate{codec: codec, cookie: cookie, now: time.Now}
}

// CurrentUserID returns the user id carried by the request's session, if any.
func (g *Gate) CurrentUserID(r *http.Request) (string, bool) {
	c, err := r.Cookie(g.cookie.Name)
	if err != nil {
		return "", false
	}
	p := g.codec.Parse(c.Value)
	if p.Empty() {
		return "", false
	}
	return p.UserID, true
}

// RequireUserID is CurrentUserID that fails with *UnauthenticatedError.
// An empty redirectTo defaults to the request path.
func (g *Gate) RequireUserID(r *http.Request, redirectTo string) (string, error) {
	if userID, ok := g.CurrentUserID(r); ok {
		return userID, nil
	}
	if redirectTo == "" {
		redirectTo = r.URL.Path
	}
	return "", &UnauthenticatedError{RedirectTo: redirectTo}
}

// Commit issues a session for userID and returns the cookie to set.
func (g *Gate) Commit(userID string) (*http.Cookie, error) {
	token, err := g.codec.Issue(Payload{UserID: userID})
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     g.cookie.Name,
		Value:    token,
		Path:     g.cookie.Path,
		MaxAge:   int(g.cookie.MaxAge.Seconds()),
		Expires:  g.now().Add(g.cookie.MaxAge).UTC(),
		HttpOnly: true,
		Secure:   g.cookie.Secure,
		SameSite: g.cookie.SameSite,
	}, nil
}

// End returns the directive that clears the session cookie.
func (g *Gate) End() *http.Cookie {
	return &http.Cookie{
		Name:     g.cookie.Name,
		Value:    "",
		Path:     g.cookie.Path,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		HttpOnly: true,
		Secure:   g.cookie.Secure,
		SameSite: g.cookie.SameSite,
	}
}
