package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/ward-api/pkg/errors"
)

type noteBody struct {
	Content string `json:"content" binding:"required,max=10"`
	Kind    string `json:"kind" binding:"omitempty,oneof=a b"`
}

func TestValidateUsesJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(&noteBody{})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "content is required")

	err = v.Validate(&noteBody{Content: "this is far too long"})
	assert.Contains(t, err.Error(), "content must not exceed 10 characters")

	err = v.Validate(&noteBody{Content: "ok", Kind: "c"})
	assert.Contains(t, err.Error(), "kind must be one of [a b]")

	assert.NoError(t, v.Validate(&noteBody{Content: "ok", Kind: "a"}))
}

func TestDescribeWrapsOtherErrors(t *testing.T) {
	assert.NoError(t, Describe(nil))

	err := Describe(errors.New("unexpected EOF"))
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "unexpected EOF")
}
