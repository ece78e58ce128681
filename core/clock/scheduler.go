package clock

import "time"

// Scheduler fires a callback once immediately on Start and then at a fixed
// interval until Stop is called. The callback runs on a single goroutine, so
// a slow run delays the next tick rather than overlapping it.
type Scheduler struct {
	interval time.Duration
	fn       func()
	stop     chan struct{}
	done     chan struct{}
}

// NewScheduler creates a scheduler for the given interval and callback.
func NewScheduler(interval time.Duration, fn func()) *Scheduler {
	return &Scheduler{
		interval: interval,
		fn:       fn,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the callback once synchronously, then arms the periodic timer.
func (s *Scheduler) Start() {
	s.fn()
	go s.loop()
}

func (s *Scheduler) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.fn()
		case <-s.stop:
			return
		}
	}
}

// Stop cancels the periodic timer and waits for any in-flight run to finish.
// Stop must only be called after Start, and only once.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}
