package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/http/middleware"
	"github.com/xy-planning-network/meadowlark/http/resp"
	"github.com/xy-planning-network/meadowlark/http/template"
)

// serveLocals runs r through adapters after InitLocals, returning the Locals the handler saw.
func serveLocals(r *http.Request, adapters ...middleware.Adapter) resp.Locals {
	var l resp.Locals
	h := http.HandlerFunc(func(w http.ResponseWriter, rx *http.Request) {
		l = *resp.LocalsFromContext(rx.Context())
	})

	middleware.Chain(h, append([]middleware.Adapter{middleware.InitLocals()}, adapters...)...).
		ServeHTTP(httptest.NewRecorder(), r)

	return l
}

func TestInitLocals(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	w := httptest.NewRecorder()

	var l *resp.Locals
	h := middleware.Chain(
		http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) { l = resp.LocalsFromContext(rx.Context()) }),
		middleware.RequestID(),
		middleware.InitLocals(),
	)

	// Act
	h.ServeHTTP(w, r)

	// Assert
	require.NotNil(t, l)
	require.Equal(t, w.Header().Get(middleware.RequestIDHeader), l.RequestID)
}

func TestShowTests(t *testing.T) {
	tcs := []struct {
		name     string
		env      meadowlark.Environment
		target   string
		expected bool
	}{
		{"Development", meadowlark.Development, "https://example.com/?test=1", true},
		{"Development-No-Param", meadowlark.Development, "https://example.com/", false},
		{"Development-Other-Value", meadowlark.Development, "https://example.com/?test=true", false},
		{"Production", meadowlark.Production, "https://example.com/?test=1", false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, tc.target, nil)

			// Act
			l := serveLocals(r, middleware.ShowTests(tc.env))

			// Assert
			require.Equal(t, tc.expected, l.ShowTests)
		})
	}
}

func TestWeather(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)

	// Act
	l := serveLocals(r, middleware.Weather(meadowlark.CurrentWeather))

	// Assert
	require.Equal(t, meadowlark.CurrentWeather(), l.Weather)

	// Act
	l = serveLocals(r, middleware.Weather(nil))

	// Assert
	require.Empty(t, l.Weather.Locations)
}

func TestSignIn(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)

	// Act
	l := serveLocals(r, middleware.SignIn([]string{"google"}))

	// Assert
	require.Equal(t, []string{"google"}, l.Providers)
}

func TestLogo(t *testing.T) {
	cdn := template.StaticMapper{BaseURL: "https://cdn.example.com"}

	tcs := []struct {
		name     string
		static   func(string) string
		now      time.Time
		expected string
	}{
		{"Ordinary-Day", nil, time.Date(2024, time.March, 25, 12, 0, 0, 0, time.UTC), "/img/logo.png"},
		{"Bud-Clark-Day", nil, time.Date(2024, time.March, 26, 23, 59, 0, 0, time.UTC), "/img/logo_bud_clark.png"},
		{"Other-26th", nil, time.Date(2024, time.April, 26, 0, 0, 0, 0, time.UTC), "/img/logo.png"},
		{"Mapped", cdn.Map, time.Date(2024, time.March, 26, 0, 0, 0, 0, time.UTC), "https://cdn.example.com/img/logo_bud_clark.png"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
			clock := func() time.Time { return tc.now }

			// Act
			l := serveLocals(r, middleware.Logo(tc.static, clock))

			// Assert
			require.Equal(t, tc.expected, l.LogoImage)
		})
	}
}
