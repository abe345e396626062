package helpers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "classic-tee-limited", GenerateSlug("  Classic Tee (Limited)! "))
	assert.Equal(t, "", GenerateSlug("!!!"))
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, PasswordCompare(hash, []byte("s3cret")))
	assert.False(t, PasswordCompare(hash, []byte("wrong")))
}

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken(16)
	require.NoError(t, err)
	b, err := GenerateToken(16)
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestValidationFields(t *testing.T) {
	type login struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=6"`
	}
	err := validator.New().Struct(login{Email: "nope", Password: "abc"})
	fields := ValidationFields(err)
	require.Len(t, fields, 2)
	assert.Equal(t, "Email must be a valid email address.", fields["email"])
	assert.Equal(t, "Password must be at least 6.", fields["password"])

	assert.Nil(t, ValidationFields(assert.AnError))
}

func TestDecodeJSONBody(t *testing.T) {
	type body struct {
		Code string `json:"code"`
	}

	var b body
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"code":"SAVE10"}`))
	require.NoError(t, DecodeJSONBody(httptest.NewRecorder(), req, &b))
	assert.Equal(t, "SAVE10", b.Code)

	for _, raw := range []string{``, `{"code":1}`, `{"other":"x"}`, `{"code":"a"}{"code":"b"}`} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(raw))
		assert.Error(t, DecodeJSONBody(httptest.NewRecorder(), req, &body{}), raw)
	}
}
