package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/curanet/careadm/pkg/errors"
)

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestValidatePasses(t *testing.T) {
	err := Validate(loginForm{Email: "admin@curanet.example", Password: "hunter2hunter2"})
	assert.NoError(t, err)
}

func TestValidateReportsFieldsByJSONName(t *testing.T) {
	err := Validate(loginForm{Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at least 8", details["password"])
}
