package application

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat_adoption_server/pkg/enum/application/application_status_enum"
	"cat_adoption_server/pkg/errorx"
)

func TestApplyClosureOverAllPairs(t *testing.T) {
	allowed := map[[2]status]bool{
		{application_status_enum.PENDING, application_status_enum.REVIEWING}:   true,
		{application_status_enum.PENDING, application_status_enum.CANCELLED}:   true,
		{application_status_enum.REVIEWING, application_status_enum.TRIAL}:     true,
		{application_status_enum.REVIEWING, application_status_enum.REJECTED}:  true,
		{application_status_enum.REVIEWING, application_status_enum.CANCELLED}: true,
		{application_status_enum.TRIAL, application_status_enum.ACCEPTED}:      true,
		{application_status_enum.TRIAL, application_status_enum.REJECTED}:      true,
		{application_status_enum.TRIAL, application_status_enum.CANCELLED}:     true,
	}

	for _, from := range application_status_enum.All {
		for _, to := range application_status_enum.All {
			next, changed, err := Apply(from, StatusRequested{Status: to})
			switch {
			case from == to:
				require.NoError(t, err, "%s -> %s", from, to)
				assert.False(t, changed)
				assert.Equal(t, from, next)
			case allowed[[2]status{from, to}]:
				require.NoError(t, err, "%s -> %s", from, to)
				assert.True(t, changed)
				assert.Equal(t, to, next)
			default:
				require.Error(t, err, "%s -> %s", from, to)
				assert.True(t, errorx.HasCode(err, errorx.CodeIllegalTransition))
				assert.Equal(t, from, next)

				var codeErr *errorx.CodeError
				require.True(t, errors.As(err, &codeErr))
				data, ok := codeErr.Data.(IllegalTransition)
				require.True(t, ok)
				assert.Equal(t, from.String(), data.CurrentStatus)
				assert.Equal(t, to.String(), data.RequestedStatus)
				assert.Equal(t, AllowedActions(from), data.AllowedStatuses)
			}
		}
	}
}

func TestTerminalStatesAreImmutable(t *testing.T) {
	for _, s := range application_status_enum.All {
		if !s.IsTerminal() {
			continue
		}
		assert.Empty(t, AllowedNext(s))
		for _, to := range application_status_enum.All {
			if to == s {
				continue
			}
			_, _, err := Apply(s, StatusRequested{Status: to})
			assert.True(t, errorx.HasCode(err, errorx.CodeIllegalTransition))
		}
	}
}

func TestViewedByShelter(t *testing.T) {
	next, changed, err := Apply(application_status_enum.PENDING, ViewedByShelter{})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, application_status_enum.REVIEWING, next)

	for _, s := range application_status_enum.All {
		if s == application_status_enum.PENDING {
			continue
		}
		next, changed, err := Apply(s, ViewedByShelter{})
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, s, next)
	}
}

func TestApplyRejectsUnknownStatus(t *testing.T) {
	_, _, err := Apply(application_status_enum.PENDING, StatusRequested{Status: "adopted"})
	assert.True(t, errorx.HasCode(err, errorx.CodeInvalidParam))
}

func TestAllowedNextReturnsCopy(t *testing.T) {
	next := AllowedNext(application_status_enum.PENDING)
	next[0] = application_status_enum.ACCEPTED
	assert.Equal(t, application_status_enum.REVIEWING, AllowedNext(application_status_enum.PENDING)[0])
}
