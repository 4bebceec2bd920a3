package template_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/meadowlark/http/template"
)

func TestStaticMapper(t *testing.T) {
	tcs := []struct {
		name     string
		base     string
		input    string
		expected string
	}{
		{"zero", "", "/img/logo.png", "/img/logo.png"},
		{"no-leading-slash", "", "img/logo.png", "/img/logo.png"},
		{"cdn", "https://cdn.example.com", "/img/logo.png", "https://cdn.example.com/img/logo.png"},
		{"cdn-trailing-slash", "https://cdn.example.com/", "img/logo_bud_clark.png", "https://cdn.example.com/img/logo_bud_clark.png"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual := template.StaticMapper{BaseURL: tc.base}.Map(tc.input)

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}
