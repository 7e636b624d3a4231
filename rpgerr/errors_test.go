package rpgerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/forgeburn/tagengine/rpgerr"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := rpgerr.New(rpgerr.CodeCooldownActive, "fireball on cooldown",
		rpgerr.WithMeta("skill_id", "fireball"))

	assert.Equal(t, "fireball on cooldown", err.Error())
	assert.Equal(t, rpgerr.CodeCooldownActive, rpgerr.CodeOf(err))
	assert.Equal(t, "fireball", err.Meta["skill_id"])
}

func TestNewf(t *testing.T) {
	err := rpgerr.Newf(rpgerr.CodeResourceExhausted, "need %d mana, have %d", 30, 10)
	assert.Equal(t, "need 30 mana, have 10", err.Error())
}

func TestWithCause(t *testing.T) {
	cause := errors.New("boom")
	err := rpgerr.New(rpgerr.CodeInternal, "wrapped", rpgerr.WithCause(cause))

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "wrapped: boom", err.Error())
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, rpgerr.CodeInternal, rpgerr.CodeOf(errors.New("not an rpgerr")))
}

func TestCodeOf_WrappedThroughStdlib(t *testing.T) {
	err := rpgerr.New(rpgerr.CodeNotFound, "missing tag")
	wrapped := fmt.Errorf("parse failed: %w", err)
	assert.Equal(t, rpgerr.CodeNotFound, rpgerr.CodeOf(wrapped))
}

func TestNilError(t *testing.T) {
	var err *rpgerr.Error
	assert.Equal(t, "rpgerr: nil error", err.Error())
	assert.Nil(t, err.Unwrap())
}
