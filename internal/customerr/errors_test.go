package customerr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_ValidationError_ShouldSurviveWrapping(t *testing.T) {
	err := errors.Wrap(NewValidation("amount", "amount must be positive"), "register")

	assert.True(t, IsValidation(err))
	assert.False(t, IsPersistence(err))
	assert.Equal(t, "register: amount: amount must be positive", err.Error())
}

func Test_PersistenceError_ShouldExposeCause(t *testing.T) {
	err := errors.Wrap(NewPersistence("append transaction", ErrConflict), "register")

	assert.True(t, IsPersistence(err))
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Nil(t, NewPersistence("noop", nil))
}
