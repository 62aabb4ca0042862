package errorx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCauseAndCode(t *testing.T) {
	cause := errors.New("lock wait timeout")
	err := fmt.Errorf("outer: %w", Wrap(cause, CodeContention, "资源繁忙"))

	assert.Equal(t, CodeContention, GetCode(err))
	assert.True(t, HasCode(err, CodeContention))
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrContention)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestWithDataCopies(t *testing.T) {
	base := New(CodeIllegalTransition, "状态不允许流转")
	withData := base.WithData(map[string]string{"current_status": "pending"})

	assert.Nil(t, base.Data)
	assert.NotNil(t, withData.Data)
	assert.Equal(t, base.Code, withData.Code)
}

func TestGetCodeDefaultsToServerBusy(t *testing.T) {
	assert.Equal(t, CodeServerBusy, GetCode(errors.New("boom")))
	assert.False(t, IsNotFound(nil))
	assert.True(t, IsNotFound(ErrNotFound))
}
