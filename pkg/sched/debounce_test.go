package sched

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_TrailingEdgeOnly(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	var fired atomic.Int32

	for i := 0; i < 10; i++ {
		d.trigger(func() { fired.Add(1) })
	}
	assert.True(t, d.pending())

	require.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, 5*time.Millisecond)
	assert.False(t, d.pending())

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load(), "only the last trigger fires")
}

func TestDebouncer_StopCancelsArmedTrigger(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	var fired atomic.Int32

	d.trigger(func() { fired.Add(1) })
	d.stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
	assert.False(t, d.pending())
}

func TestDebouncer_TriggerAfterStopIgnored(t *testing.T) {
	d := newDebouncer(time.Millisecond)
	d.stop()

	var fired atomic.Int32
	d.trigger(func() { fired.Add(1) })

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
	assert.False(t, d.pending())
}
