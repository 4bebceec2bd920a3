package session_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/http/session"
)

var (
	authKey    = strings.Repeat("ab", 32)
	encryptKey = strings.Repeat("cd", 32)
)

func newTestService(t *testing.T) session.Service {
	t.Helper()
	svc, err := session.NewStoreService(session.Config{
		Env:        meadowlark.Development,
		AuthKey:    authKey,
		EncryptKey: encryptKey,
	})
	require.Nil(t, err)
	return svc
}

func TestNewStoreService(t *testing.T) {
	notHex := "😅"
	for _, tc := range []struct {
		name string
		cfg  session.Config
	}{
		{"bad-env", session.Config{Env: "STAGING", AuthKey: authKey, EncryptKey: encryptKey}},
		{"no-auth-key", session.Config{Env: meadowlark.Development, EncryptKey: encryptKey}},
		{"auth-not-hex", session.Config{Env: meadowlark.Development, AuthKey: notHex, EncryptKey: encryptKey}},
		{"encrypt-not-hex", session.Config{Env: meadowlark.Development, AuthKey: authKey, EncryptKey: notHex}},
		{"encrypt-short", session.Config{Env: meadowlark.Development, AuthKey: authKey, EncryptKey: "ABCD"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			svc, err := session.NewStoreService(tc.cfg)

			// Assert
			require.NotNil(t, err)
			require.Zero(t, svc)
		})
	}

	// Act
	svc, err := session.NewStoreService(session.Config{Env: meadowlark.Production, AuthKey: authKey, EncryptKey: encryptKey})

	// Assert
	require.Nil(t, err)
	require.NotZero(t, svc)
}

func TestNewStoreServiceOptErr(t *testing.T) {
	// Arrange
	boom := func(*session.Service) error { return errors.New("boom") }

	// Act
	_, err := session.NewStoreService(session.Config{Env: meadowlark.Development, AuthKey: authKey, EncryptKey: encryptKey}, boom)

	// Assert
	require.ErrorIs(t, err, meadowlark.ErrBadConfig)
}

func TestWithRedisNoOptions(t *testing.T) {
	// Act
	_, err := session.NewStoreService(session.Config{Env: meadowlark.Development, AuthKey: authKey, EncryptKey: encryptKey}, session.WithRedis(nil))

	// Assert
	require.ErrorIs(t, err, meadowlark.ErrBadConfig)
}

func TestFlashLifecycle(t *testing.T) {
	// Arrange
	svc := newTestService(t)
	expected := session.Success("Thanks for signing up!")

	// Act: request N sets the flash
	r1 := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	w1 := httptest.NewRecorder()
	s1, err := svc.GetSession(r1)
	require.Nil(t, err)
	require.Nil(t, s1.SetFlash(w1, r1, expected))

	// Act: request N+1 sees it
	r2 := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	for _, c := range w1.Result().Cookies() {
		r2.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	s2, err := svc.GetSession(r2)
	require.Nil(t, err)

	// Assert
	require.Equal(t, []session.Flash{expected}, s2.Flashes(w2, r2))

	// Act: request N+2 does not
	r3 := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	for _, c := range w2.Result().Cookies() {
		r3.AddCookie(c)
	}
	s3, err := svc.GetSession(r3)
	require.Nil(t, err)

	// Assert
	require.Empty(t, s3.Flashes(httptest.NewRecorder(), r3))
}

func TestRegisterUser(t *testing.T) {
	// Arrange
	svc := newTestService(t)
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	w := httptest.NewRecorder()
	s, err := svc.GetSession(r)
	require.Nil(t, err)

	// Act
	_, err = s.UserID()

	// Assert
	require.ErrorIs(t, err, session.ErrNoUser)

	// Act
	require.Nil(t, s.RegisterUser(w, r, 7))
	id, err := s.UserID()

	// Assert
	require.Nil(t, err)
	require.Equal(t, uint(7), id)

	// Act
	require.Nil(t, s.DeregisterUser(w, r))
	_, err = s.UserID()

	// Assert
	require.ErrorIs(t, err, session.ErrNoUser)

	// Act
	require.Nil(t, s.Set(w, r, "meadowlark-user", "not-a-uint"))
	_, err = s.UserID()

	// Assert
	require.ErrorIs(t, err, session.ErrNotValid)
}

func TestStubStore(t *testing.T) {
	// Arrange
	stub := session.NewStub(3)
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	s, err := stub.GetSession(r)
	require.Nil(t, err)
	id, err := s.UserID()

	// Assert
	require.Nil(t, err)
	require.Equal(t, uint(3), id)

	// Act
	s, _ = session.NewStub(0).GetSession(r)
	_, err = s.UserID()

	// Assert
	require.ErrorIs(t, err, session.ErrNoUser)
}
