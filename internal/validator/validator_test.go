package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Capability string `json:"capability" validate:"required,capability"`
	Role       string `json:"role" validate:"omitempty,user_role"`
}

func TestValidateCustomRules(t *testing.T) {
	t.Parallel()
	v := New()

	require.NoError(t, v.Validate(sampleRequest{
		Email:      "a@example.com",
		Capability: "post_job",
		Role:       "worker",
	}))

	err := v.Validate(sampleRequest{
		Email:      "not-an-email",
		Capability: "teleport",
		Role:       "wizard",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	// Field names come from the json tags.
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "capability")
	assert.Contains(t, vErr.Errors, "role")
}
