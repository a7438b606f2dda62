package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sashkashishka/balakanyna-sub000"
	"github.com/sashkashishka/balakanyna-sub000/handlers/auth"
	"github.com/sashkashishka/balakanyna-sub000/middlewares"
	"github.com/sashkashishka/balakanyna-sub000/pkg/config"
	"github.com/sashkashishka/balakanyna-sub000/repository"
)

type fakeAdmins struct {
	admins map[string]repository.Admin
	err    error
}

func (f *fakeAdmins) AdminByName(_ context.Context, name string) (repository.Admin, error) {
	if f.err != nil {
		return repository.Admin{}, f.err
	}
	a, ok := f.admins[name]
	if !ok {
		return repository.Admin{}, repository.ErrNotFound
	}
	return a, nil
}

func newAdmins(t *testing.T) *fakeAdmins {
	t.Helper()

	hash, err := repository.HashPassword("s3cret")
	require.NoError(t, err)
	return &fakeAdmins{admins: map[string]repository.Admin{
		"root": {ID: 7, Name: "root", PasswordHash: hash},
	}}
}

func newRouter(t *testing.T, admins auth.AdminStore) *balakanyna.Router {
	t.Helper()

	cfg := config.Defaults()
	cfg.JWT.Key = "auth-test-key"
	cfg.JWT.ExpirationTime = time.Hour

	r, err := balakanyna.NewRouter(balakanyna.Deps{Config: &cfg})
	require.NoError(t, err)
	r.Mount(auth.New(admins))
	r.Use(middlewares.NotFound())
	r.HandleError(middlewares.ErrorHandler())
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return w
}

func tokenCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == middlewares.TokenCookie {
			return c
		}
	}
	t.Fatal("token cookie not set")
	return nil
}

func TestLogin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		store  *fakeAdmins
		body   string
		status int
		code   string
	}{
		{"wrong password", nil, `{"name":"root","password":"nope"}`, http.StatusUnauthorized, auth.CodeInvalidCredentials},
		{"unknown admin", nil, `{"name":"ghost","password":"s3cret"}`, http.StatusUnauthorized, auth.CodeInvalidCredentials},
		{"missing fields", nil, `{"name":"root"}`, http.StatusBadRequest, balakanyna.CodeInvalidBody},
		{"malformed body", nil, `{`, http.StatusBadRequest, balakanyna.CodeInvalidBody},
		{"store failure", &fakeAdmins{err: errors.New("db down")}, `{"name":"root","password":"s3cret"}`, http.StatusInternalServerError, balakanyna.CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := tt.store
			if store == nil {
				store = newAdmins(t)
			}
			w := post(newRouter(t, store), "/api/admin/auth/login", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error":"`+tt.code+`"`)
			assert.Empty(t, w.Header().Values("Set-Cookie"))
		})
	}
}

func TestLoginAndMe(t *testing.T) {
	t.Parallel()

	r := newRouter(t, newAdmins(t))

	w := post(r, "/api/admin/auth/login", `{"name":"root","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	c := tokenCookie(t, w)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, 3600, c.MaxAge)
	assert.NotEmpty(t, c.Value)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	me := httptest.NewRecorder()
	r.ServeHTTP(me, req)
	assert.Equal(t, http.StatusOK, me.Code)
	assert.JSONEq(t, `{"id":7,"name":"root"}`, me.Body.String())
}

func TestMe_Unauthorized(t *testing.T) {
	t.Parallel()

	r := newRouter(t, newAdmins(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"UNAUTHORIZED","message":"unauthorized"}`, w.Body.String())
}

func TestLogout(t *testing.T) {
	t.Parallel()

	w := post(newRouter(t, newAdmins(t)), "/api/admin/auth/logout", "")
	assert.Equal(t, http.StatusOK, w.Code)

	c := tokenCookie(t, w)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
}
