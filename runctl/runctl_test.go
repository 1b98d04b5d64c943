package runctl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlagSetIsSet(t *testing.T) {
	var f Flag
	assert.False(t, f.IsSet())
	f.Set()
	assert.True(t, f.IsSet())
}

func TestWatchdogFiresAfterTimeout(t *testing.T) {
	var f Flag
	w := NewWatchdog(&f, 20*time.Millisecond)
	defer w.Stop()

	assert.Eventually(t, f.IsSet, time.Second, time.Millisecond)
}

func TestWatchdogResetPushesDeadlineOut(t *testing.T) {
	var f Flag
	w := NewWatchdog(&f, 40*time.Millisecond)
	defer w.Stop()

	time.Sleep(20 * time.Millisecond)
	w.Reset()
	time.Sleep(30 * time.Millisecond)
	assert.False(t, f.IsSet(), "reset should have pushed the deadline past this point")

	assert.Eventually(t, f.IsSet, time.Second, time.Millisecond)
}

func TestWatchdogStopPreventsFlag(t *testing.T) {
	var f Flag
	w := NewWatchdog(&f, 20*time.Millisecond)
	w.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.False(t, f.IsSet())
}
