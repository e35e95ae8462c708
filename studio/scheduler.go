package studio

import (
	"sort"
	"sync"
	"time"
)

// Task is a handle to a scheduled callback.
type Task interface {
	// Cancel stops the task, reporting whether it was still pending.
	Cancel() bool
}

// Scheduler schedules a callback to run after a delay. The production
// implementation wraps wall-clock timers; tests substitute a virtual clock so
// debounce behavior can be driven deterministically.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

// timerScheduler runs callbacks on real timers.
type timerScheduler struct{}

// NewTimerScheduler returns a Scheduler backed by time.AfterFunc.
func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) Task {
	return timerTask{time.AfterFunc(d, fn)}
}

type timerTask struct {
	t *time.Timer
}

func (t timerTask) Cancel() bool {
	return t.t.Stop()
}

// VirtualClock is a Scheduler driven manually by Advance. Callbacks run
// synchronously on the advancing goroutine, in due-time order.
type VirtualClock struct {
	mu    sync.Mutex
	now   time.Time
	tasks []*virtualTask
}

// NewVirtualClock creates a virtual clock starting at the zero time.
func NewVirtualClock() *VirtualClock {
	return &VirtualClock{}
}

type virtualTask struct {
	clock    *VirtualClock
	due      time.Time
	fn       func()
	canceled bool
	fired    bool
}

func (t *virtualTask) Cancel() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.canceled {
		return false
	}
	t.canceled = true
	return true
}

// AfterFunc schedules fn to run once the clock has advanced by d.
func (c *VirtualClock) AfterFunc(d time.Duration, fn func()) Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &virtualTask{clock: c, due: c.now.Add(d), fn: fn}
	c.tasks = append(c.tasks, t)
	return t
}

// Advance moves the clock forward, firing due callbacks in order.
func (c *VirtualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now

	var due []*virtualTask
	remaining := c.tasks[:0]
	for _, t := range c.tasks {
		if !t.canceled && !t.due.After(now) {
			due = append(due, t)
			continue
		}
		if !t.canceled {
			remaining = append(remaining, t)
		}
	}
	c.tasks = remaining
	sort.SliceStable(due, func(i, j int) bool { return due[i].due.Before(due[j].due) })
	for _, t := range due {
		t.fired = true
	}
	c.mu.Unlock()

	// Run callbacks outside the lock so they may schedule or cancel.
	for _, t := range due {
		t.fn()
	}
}
