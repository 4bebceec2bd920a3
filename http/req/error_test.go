package req_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/http/req"
)

var attractionErrs = req.ValidationErrors{
	{Field: "name", Rule: "required; string"},
	{Field: "email", Got: "not-an-email", Rule: "email; string"},
}

func TestValidationErrorsError(t *testing.T) {
	tcs := []struct {
		name     string
		errs     req.ValidationErrors
		expected string
	}{
		{"None", nil, ""},
		{
			"Many",
			attractionErrs,
			"field=\"name\" rule=\"required; string\" got=\"<nil>\"\n" +
				"field=\"email\" rule=\"email; string\" got=\"not-an-email\"",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.errs.Error())
		})
	}
}

func TestValidationErrorsMarshalJSON(t *testing.T) {
	tcs := []struct {
		name     string
		errs     req.ValidationErrors
		expected string
	}{
		{"None", nil, `{}`},
		{
			"Many",
			attractionErrs,
			`{"validationErrors":[{"field":"name","got":null,"rule":"required; string"},{"field":"email","got":"not-an-email","rule":"email; string"}]}`,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, err := json.Marshal(tc.errs)

			// Assert
			require.Nil(t, err)
			require.JSONEq(t, tc.expected, string(actual))
		})
	}
}

func TestValidationErrorsFields(t *testing.T) {
	require.Equal(t, []string{"name", "email"}, attractionErrs.Fields())
	require.Empty(t, req.ValidationErrors{}.Fields())
}

func TestValidationErrorsUnwrap(t *testing.T) {
	require.ErrorIs(t, attractionErrs, meadowlark.ErrNotValid)
}
