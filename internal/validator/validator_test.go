package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Content string `json:"content" validate:"required,max=10"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{Email: "a@b.com", Content: "hello"})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{Email: "not-an-email", Content: ""})
	assert.Error(t, err)

	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "content")
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "This field is required", vErr.Errors["content"])
}

func TestValidate_MaxMessage(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{Email: "a@b.com", Content: "this is far too long"})
	assert.Error(t, err)

	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	assert.Equal(t, "Must be at most 10", vErr.Errors["content"])
}
