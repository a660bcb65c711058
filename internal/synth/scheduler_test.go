package synth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerFiresInTimeOrder(t *testing.T) {
	s := NewScheduler()
	var order []int
	s.At(300*time.Millisecond, func(time.Duration) { order = append(order, 3) })
	s.At(100*time.Millisecond, func(time.Duration) { order = append(order, 1) })
	s.At(200*time.Millisecond, func(time.Duration) { order = append(order, 2) })

	s.RunUntil(time.Second)
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, time.Second, s.Now())
	assert.Equal(t, 0, s.Pending())
}

func TestSchedulerInsertionOrderBreaksTies(t *testing.T) {
	s := NewScheduler()
	var order []int
	s.At(100*time.Millisecond, func(time.Duration) { order = append(order, 1) })
	s.At(100*time.Millisecond, func(time.Duration) { order = append(order, 2) })
	s.RunUntil(time.Second)
	assert.Equal(t, []int{1, 2}, order)
}

func TestSchedulerCallbacksQueueMoreEvents(t *testing.T) {
	s := NewScheduler()
	var fired []time.Duration
	var loop func(now time.Duration)
	loop = func(now time.Duration) {
		fired = append(fired, now)
		if now < 500*time.Millisecond {
			s.At(now+100*time.Millisecond, loop)
		}
	}
	s.At(100*time.Millisecond, loop)

	s.RunUntil(time.Second)
	require.Len(t, fired, 5)
	assert.Equal(t, 100*time.Millisecond, fired[0])
	assert.Equal(t, 500*time.Millisecond, fired[4])
}

func TestSchedulerHorizonHoldsBackFutureEvents(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.At(100*time.Millisecond, func(time.Duration) { fired++ })
	s.At(900*time.Millisecond, func(time.Duration) { fired++ })

	s.RunUntil(500 * time.Millisecond)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, s.Pending())

	s.RunUntil(time.Second)
	assert.Equal(t, 2, fired)
}

func TestSchedulerCancelClearsPendingAndBlocksRequeue(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.At(100*time.Millisecond, func(time.Duration) { fired++ })
	s.At(200*time.Millisecond, func(time.Duration) { fired++ })

	s.Cancel()
	assert.True(t, s.Canceled())
	assert.Equal(t, 0, s.Pending())

	s.At(300*time.Millisecond, func(time.Duration) { fired++ })
	assert.Equal(t, 0, s.Pending())

	s.RunUntil(time.Second)
	assert.Equal(t, 0, fired)
}

func TestSchedulerAfterIsRelative(t *testing.T) {
	s := NewScheduler()
	s.RunUntil(200 * time.Millisecond)

	var at time.Duration
	s.After(100*time.Millisecond, func(now time.Duration) { at = now })
	s.RunUntil(time.Second)
	assert.Equal(t, 300*time.Millisecond, at)
}
