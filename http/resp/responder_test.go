package resp_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/http/resp"
	"github.com/xy-planning-network/meadowlark/http/session"
	tt "github.com/xy-planning-network/meadowlark/http/template/templatetest"
	"github.com/xy-planning-network/meadowlark/logger"
)

type testFn func(*testing.T, *httptest.ResponseRecorder, error)

func newResponder(files fstest.MapFS, b *bytes.Buffer) *resp.Responder {
	return resp.NewResponder(
		resp.WithLogger(logger.New(logger.WithWriter(b))),
		resp.WithParser(tt.NewParser(files)),
		resp.WithLayoutTemplate(tt.Layout),
		resp.WithErrTemplate("500.tmpl"),
		resp.WithNotFoundTemplate("404.tmpl"),
	)
}

func withSession(r *http.Request) (*http.Request, session.Session) {
	s, _ := session.NewStub(0).GetSession(r)
	return r.WithContext(context.WithValue(r.Context(), meadowlark.SessionKey, s)), s
}

func TestResponderDo(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	ctx, cancel := context.WithCancel(r.Context())
	r = r.WithContext(ctx)
	w := httptest.NewRecorder()
	cancel()

	d := resp.NewResponder()

	// Act
	err := d.Json(w, r, resp.Code(http.StatusTeapot))

	// Assert
	require.ErrorIs(t, err, resp.ErrDone)
	require.Zero(t, w.Body.Len())
}

func TestResponderCurrentUser(t *testing.T) {
	u := meadowlark.User{Name: "Ada", Role: meadowlark.RoleCustomer}
	tcs := []struct {
		name        string
		ctx         context.Context
		expectedVal meadowlark.User
		expectedErr error
	}{
		{"Not-Set", context.Background(), meadowlark.User{}, resp.ErrNotFound},
		{"Wrong-Type", context.WithValue(context.Background(), meadowlark.CurrentUserKey, "ada"), meadowlark.User{}, resp.ErrNotFound},
		{"Set", context.WithValue(context.Background(), meadowlark.CurrentUserKey, u), u, nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, err := resp.NewResponder().CurrentUser(tc.ctx)

			// Assert
			require.ErrorIs(t, err, tc.expectedErr)
			require.Equal(t, tc.expectedVal, actual)
		})
	}
}

func TestResponderErr(t *testing.T) {
	tcs := []struct {
		name string
		err  error
	}{
		{"Nil", nil},
		{"Custom", errors.New("my favorite error")},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			w := httptest.NewRecorder()
			b := new(bytes.Buffer)
			d := newResponder(tt.Views(), b)

			// Act
			d.Err(w, r, tc.err)

			// Assert
			require.Equal(t, http.StatusInternalServerError, w.Code)
			require.Equal(t, "Internal Server Error\n", w.Body.String())
			if tc.err != nil {
				require.Contains(t, b.String(), tc.err.Error())
			}
		})
	}
}

func TestResponderHtml(t *testing.T) {
	files := tt.Views("home", "404", "500")
	files["locals.tmpl"] = &fstest.MapFile{
		Data: []byte(`{{ define "content" }}{{ .LogoImage }}|{{ with .CurrentUser }}{{ .Name }}{{ end }}|{{ .Data }}{{ end }}`),
	}
	files["flashes.tmpl"] = &fstest.MapFile{
		Data: []byte(`{{ define "content" }}{{ range .Flashes }}{{ .Class }}:{{ .Msg }};{{ end }}{{ end }}`),
	}

	tcs := []struct {
		name   string
		ctx    func(context.Context) context.Context
		fns    []resp.Fn
		assert testFn
	}{
		{
			name: "No-Tmpls",
			fns:  nil,
			assert: func(t *testing.T, w *httptest.ResponseRecorder, err error) {
				require.ErrorIs(t, err, resp.ErrMissingData)
				require.Equal(t, http.StatusInternalServerError, w.Code)
				require.Equal(t, "500", w.Body.String())
			},
		},
		{
			name: "Missing-File",
			fns:  []resp.Fn{resp.Tmpls("nope.tmpl")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, err error) {
				require.NotNil(t, err)
				require.Equal(t, http.StatusInternalServerError, w.Code)
				require.Equal(t, "500", w.Body.String())
			},
		},
		{
			name: "Home",
			fns:  []resp.Fn{resp.Tmpls("home.tmpl")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusOK, w.Code)
				require.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
				require.Equal(t, "home", w.Body.String())
			},
		},
		{
			name: "Code",
			fns:  []resp.Fn{resp.Code(http.StatusForbidden), resp.Tmpls("home.tmpl")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusForbidden, w.Code)
			},
		},
		{
			name: "Locals-User-Data",
			ctx: func(ctx context.Context) context.Context {
				ctx, l := resp.NewLocalsContext(ctx)
				l.LogoImage = "/img/logo.png"
				return context.WithValue(ctx, meadowlark.CurrentUserKey, meadowlark.User{Name: "Ada"})
			},
			fns: []resp.Fn{resp.Tmpls("locals.tmpl"), resp.Data("hi")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, err error) {
				require.Nil(t, err)
				require.Equal(t, "/img/logo.png|Ada|hi", w.Body.String())
			},
		},
		{
			name: "Flashes",
			ctx: func(ctx context.Context) context.Context {
				ctx, l := resp.NewLocalsContext(ctx)
				l.Flashes = []session.Flash{session.Info("from last time")}
				return ctx
			},
			fns: []resp.Fn{resp.Tmpls("flashes.tmpl"), resp.Success("saved")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, err error) {
				require.Nil(t, err)
				require.Equal(t, "info:from last time;success:saved;", w.Body.String())
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			if tc.ctx != nil {
				r = r.WithContext(tc.ctx(r.Context()))
			}
			r, _ = withSession(r)
			w := httptest.NewRecorder()
			d := newResponder(files, new(bytes.Buffer))

			// Act
			err := d.Html(w, r, tc.fns...)

			// Assert
			tc.assert(t, w, err)
		})
	}
}

func TestResponderHtmlFallback(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	w := httptest.NewRecorder()
	d := newResponder(tt.Views("home"), new(bytes.Buffer))

	// Act
	err := d.Html(w, r, resp.Tmpls("nope.tmpl"))

	// Assert
	require.NotNil(t, err)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Server error.\n", w.Body.String())
}

func TestResponderJson(t *testing.T) {
	tcs := []struct {
		name   string
		fns    []resp.Fn
		assert testFn
	}{
		{
			name: "Zero-Value",
			assert: func(t *testing.T, w *httptest.ResponseRecorder, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusOK, w.Code)
				require.Equal(t, "null\n", w.Body.String())
			},
		},
		{
			name: "Data",
			fns:  []resp.Fn{resp.Data(map[string]uint{"id": 1})},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, err error) {
				require.Nil(t, err)
				require.Equal(t, "application/json; charset=UTF-8", w.Header().Get("Content-Type"))
				require.JSONEq(t, `{"id":1}`, w.Body.String())
			},
		},
		{
			name: "Error",
			fns:  []resp.Fn{resp.Code(http.StatusBadRequest), resp.Data(map[string]string{"error": "Unable to add attraction."})},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusBadRequest, w.Code)
				require.JSONEq(t, `{"error":"Unable to add attraction."}`, w.Body.String())
			},
		},
		{
			name: "Not-Encodable",
			fns:  []resp.Fn{resp.Data(func() {})},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, err error) {
				require.NotNil(t, err)
				require.Equal(t, http.StatusInternalServerError, w.Code)
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			w := httptest.NewRecorder()
			d := newResponder(tt.Views(), new(bytes.Buffer))

			// Act
			err := d.Json(w, r, tc.fns...)

			// Assert
			tc.assert(t, w, err)
		})
	}
}

func TestResponderNotFound(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com/nope", nil)
	w := httptest.NewRecorder()
	d := newResponder(tt.Views("404", "500"), new(bytes.Buffer))

	// Act
	err := d.NotFound(w, r)

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "404", w.Body.String())

	// Arrange
	w = httptest.NewRecorder()

	// Act
	err = resp.NewResponder().NotFound(w, r)

	// Assert
	require.ErrorIs(t, err, resp.ErrBadConfig)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestResponderRedirect(t *testing.T) {
	tcs := []struct {
		name     string
		fns      []resp.Fn
		code     int
		location string
	}{
		{"To-Root", nil, http.StatusFound, "/"},
		{"See-Other", []resp.Fn{resp.Url("/unauthorized"), resp.Code(http.StatusSeeOther)}, http.StatusSeeOther, "/unauthorized"},
		{"Client-Err", []resp.Fn{resp.Url("/unauthorized"), resp.Code(http.StatusForbidden)}, http.StatusSeeOther, "/unauthorized"},
		{"Server-Err", []resp.Fn{resp.Code(http.StatusInternalServerError)}, http.StatusTemporaryRedirect, "/"},
		{"Param", []resp.Fn{resp.Url("/vacations"), resp.Param("test", "1")}, http.StatusFound, "/vacations?test=1"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			w := httptest.NewRecorder()

			// Act
			err := resp.NewResponder().Redirect(w, r, tc.fns...)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.location, w.Header().Get("Location"))
		})
	}

	t.Run("Bad-Url", func(t *testing.T) {
		// Arrange
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
		w := httptest.NewRecorder()

		// Act
		err := resp.NewResponder().Redirect(w, r, resp.Url("not a url"))

		// Assert
		require.ErrorIs(t, err, resp.ErrInvalid)
	})
}

func TestResponderServerError(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	w := httptest.NewRecorder()
	b := new(bytes.Buffer)
	d := newResponder(tt.Views("500"), b)

	// Act
	err := d.ServerError(w, r, errors.New("boom"))

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "500", w.Body.String())
	require.Contains(t, b.String(), "boom")

	// Arrange
	w = httptest.NewRecorder()
	d = newResponder(tt.Views(), b)

	// Act
	err = d.ServerError(w, r, nil)

	// Assert
	require.NotNil(t, err)
	require.False(t, w.Flushed)
	require.Zero(t, w.Body.Len())
	require.Empty(t, w.Header())
}
