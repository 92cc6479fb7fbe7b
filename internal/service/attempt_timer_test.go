package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonitorCountsDownAndExpires(t *testing.T) {
	var expired []string
	m := newAttemptMonitor("a1", 3, nil, func(id string) {
		expired = append(expired, id)
	})

	assert.False(t, m.step())
	assert.Equal(t, 2, m.remaining)
	assert.False(t, m.step())
	assert.Equal(t, 1, m.remaining)
	assert.True(t, m.step())
	assert.Equal(t, 0, m.remaining)

	assert.Equal(t, []string{"a1"}, expired)
}

func TestMonitorWarnsOnceAtTenPercent(t *testing.T) {
	var warnings []int
	m := newAttemptMonitor("a1", 60, func(id string, remaining int) {
		warnings = append(warnings, remaining)
	}, nil)

	for i := 0; i < 59; i++ {
		assert.False(t, m.step())
	}

	// warnAt is 6 for a 60 second budget; the warning fires exactly once.
	assert.Equal(t, []int{6}, warnings)
}

func TestMonitorExpireFiresOnce(t *testing.T) {
	count := 0
	m := newAttemptMonitor("a1", 1, nil, func(string) { count++ })

	assert.True(t, m.step())
	assert.Equal(t, 1, count)
}

func TestMonitorZeroBudgetExpiresImmediately(t *testing.T) {
	expired := false
	m := newAttemptMonitor("a1", 0, nil, func(string) { expired = true })

	assert.True(t, m.step())
	assert.True(t, expired)
}

func TestMonitorCancelIsIdempotent(t *testing.T) {
	m := newAttemptMonitor("a1", 10, nil, nil)

	m.cancel()
	assert.NotPanics(t, func() { m.cancel() })
}
