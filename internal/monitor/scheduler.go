package monitor

import (
	"sync"
	"time"
)

// Timer is a pending one-shot or periodic task
type Timer interface {
	Stop() bool
}

// Scheduler runs callbacks later. Callbacks run on their own goroutine and
// must hand work to the monitor with Do.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Every(d time.Duration, f func()) Timer
}

// RealScheduler schedules with the runtime's timers
type RealScheduler struct{}

// AfterFunc calls f once after d
func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Every calls f every d until stopped
func (RealScheduler) Every(d time.Duration, f func()) Timer {
	t := &ticker{t: time.NewTicker(d), stop: make(chan struct{})}
	go func() {
		for {
			select {
			case <-t.stop:
				return
			case <-t.t.C:
				f()
			}
		}
	}()
	return t
}

type ticker struct {
	t    *time.Ticker
	stop chan struct{}
	once sync.Once
}

func (t *ticker) Stop() bool {
	stopped := false
	t.once.Do(func() {
		t.t.Stop()
		close(t.stop)
		stopped = true
	})
	return stopped
}
