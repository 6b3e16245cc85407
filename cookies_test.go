package authgate

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCookie(t *testing.T, fn func(w http.ResponseWriter)) *http.Cookie {
	t.Helper()
	rr := httptest.NewRecorder()
	fn(rr)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestAttach(t *testing.T) {
	c := &SessionCookies{Secure: true}
	cookie := setCookie(t, func(w http.ResponseWriter) {
		c.Attach(w, "the-token", 3600)
	})

	assert.Equal(t, AuthCookieName, cookie.Name)
	assert.Equal(t, "the-token", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.WithinDuration(t, time.Now().Add(time.Hour), cookie.Expires, 5*time.Second)
}

func TestClear(t *testing.T) {
	c := &SessionCookies{}
	cookie := setCookie(t, func(w http.ResponseWriter) {
		c.Clear(w)
	})

	assert.Equal(t, AuthCookieName, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
	assert.True(t, cookie.Expires.Before(time.Now()))
}

func TestCookieOverrides(t *testing.T) {
	c := &SessionCookies{Name: "session", SameSite: http.SameSiteStrictMode}
	cookie := setCookie(t, func(w http.ResponseWriter) {
		c.Attach(w, "tok", 60)
	})

	assert.Equal(t, "session", cookie.Name)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}
