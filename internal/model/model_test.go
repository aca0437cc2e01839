package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActiveStatusMapping(t *testing.T) {
	assert.True(t, StatusDone.Done())
	assert.False(t, StatusNotDone.Done())

	// is_active is inverted on the wire: 1 = open, 0 = done.
	assert.Equal(t, ActiveStatus(0), StatusDone)
	assert.Equal(t, ActiveStatus(1), StatusNotDone)

	assert.Equal(t, StatusDone, StatusNotDone.Toggle())
	assert.Equal(t, StatusNotDone, StatusDone.Toggle())
}

func TestPriorityValid(t *testing.T) {
	for _, p := range Priorities() {
		assert.True(t, p.Valid(), "%s", p)
	}
	assert.False(t, Priority("").Valid())
	assert.False(t, Priority("urgent").Valid())
}
