package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/http/middleware"
	"github.com/xy-planning-network/meadowlark/http/resp"
	"github.com/xy-planning-network/meadowlark/http/session"
)

func newUserStorer(users ...meadowlark.User) middleware.UserStorer {
	return func(_ context.Context, id uint) (meadowlark.User, error) {
		for _, u := range users {
			if u.ID == id {
				return u, nil
			}
		}

		return meadowlark.User{}, meadowlark.ErrNotExist
	}
}

func failedUserStorer(context.Context, uint) (meadowlark.User, error) {
	return meadowlark.User{}, errors.New("db down")
}

func TestCurrentUserNoop(t *testing.T) {
	// Arrange + Act
	actual := middleware.CurrentUser(nil, nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange + Act
	actual = middleware.CurrentUser(resp.NewResponder(), nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))
}

func TestCurrentUser(t *testing.T) {
	ada := meadowlark.User{Model: meadowlark.Model{ID: 1}, Name: "Ada", Role: meadowlark.RoleCustomer}

	tcs := []struct {
		name     string
		store    session.SessionStorer
		storer   middleware.UserStorer
		code     int
		expected *meadowlark.User
		cleared  bool
	}{
		{"No-Session", nil, newUserStorer(ada), http.StatusTeapot, nil, false},
		{"No-User", session.NewStub(0), newUserStorer(ada), http.StatusTeapot, nil, false},
		{"Unknown-User", session.NewStub(99), newUserStorer(ada), http.StatusTeapot, nil, true},
		{"Failed-Storer", session.NewStub(1), failedUserStorer, http.StatusInternalServerError, nil, false},
		{"Found", session.NewStub(1), newUserStorer(ada), http.StatusTeapot, &ada, false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var (
				actual meadowlark.User
				found  bool
			)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			if tc.store != nil {
				r = withSession(t, r, tc.store)
			}

			h := http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
				actual, found = rx.Context().Value(meadowlark.CurrentUserKey).(meadowlark.User)
				wx.WriteHeader(http.StatusTeapot)
			})

			// Act
			middleware.CurrentUser(resp.NewResponder(), tc.storer)(h).ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			if tc.expected == nil {
				require.False(t, found)
				return
			}

			require.True(t, found)
			require.Equal(t, *tc.expected, actual)
			require.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			require.Equal(t, "no-cache", w.Header().Get("Pragma"))
		})
	}
}

func TestCurrentUserDeregisters(t *testing.T) {
	// Arrange
	store := session.NewStub(99)
	w := httptest.NewRecorder()
	r := withSession(t, httptest.NewRequest(http.MethodGet, "https://example.com", nil), store)

	// Act
	middleware.CurrentUser(resp.NewResponder(), newUserStorer())(teapotHandler()).ServeHTTP(w, r)

	// Assert
	s, err := store.GetSession(r)
	require.Nil(t, err)

	_, err = s.UserID()
	require.ErrorIs(t, err, session.ErrNoUser)
}

func TestCurrentUserResetsExpiry(t *testing.T) {
	// Arrange
	ada := meadowlark.User{Model: meadowlark.Model{ID: 1}, Name: "Ada", Role: meadowlark.RoleCustomer}
	svc, err := session.NewStoreService(session.Config{
		Env:        meadowlark.Development,
		AuthKey:    strings.Repeat("ab", 32),
		EncryptKey: strings.Repeat("cd", 32),
	})
	require.Nil(t, err)

	signIn := httptest.NewRecorder()
	first := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	s, err := svc.GetSession(first)
	require.Nil(t, err)
	require.Nil(t, s.RegisterUser(signIn, first, ada.ID))

	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	for _, c := range signIn.Result().Cookies() {
		r.AddCookie(c)
	}
	r = withSession(t, r, svc)
	w := httptest.NewRecorder()

	// Act
	middleware.CurrentUser(resp.NewResponder(), newUserStorer(ada))(teapotHandler()).ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
	require.Len(t, w.Result().Cookies(), 1)
	require.Equal(t, session.DefaultSessionName, w.Result().Cookies()[0].Name)
}
