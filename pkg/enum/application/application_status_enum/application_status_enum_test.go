package application_status_enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalAndActivePartitionAllStatuses(t *testing.T) {
	active := Active()
	for _, s := range All {
		assert.True(t, s.IsValid())
		assert.NotEqual(t, s.IsTerminal(), contains(active, s), s)
	}
	assert.False(t, Status("archived").IsValid())
}

func contains(list []Status, s Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
