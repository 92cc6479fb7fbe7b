package service

import (
	"sync"
	"time"
)

// attemptMonitor counts an attempt's time budget down one second per tick.
// It fires the warning callback exactly once when remaining time drops to
// 10% of the budget or less, and the expire callback exactly once when the
// countdown reaches zero. cancel stops further ticks; it is safe to call
// from any goroutine and more than once.
type attemptMonitor struct {
	attemptID string
	remaining int
	warnAt    int
	warned    bool

	onWarning func(attemptID string, remaining int)
	onExpire  func(attemptID string)

	stop     chan struct{}
	stopOnce sync.Once
}

func newAttemptMonitor(attemptID string, budgetSeconds int, onWarning func(string, int), onExpire func(string)) *attemptMonitor {
	return &attemptMonitor{
		attemptID: attemptID,
		remaining: budgetSeconds,
		warnAt:    budgetSeconds / 10,
		onWarning: onWarning,
		onExpire:  onExpire,
		stop:      make(chan struct{}),
	}
}

// run drives the countdown until expiry or cancellation. Only run's
// goroutine touches the counters, so step needs no locking.
func (m *attemptMonitor) run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			if m.step() {
				return
			}
		}
	}
}

// step advances the countdown by one tick and reports whether it finished.
func (m *attemptMonitor) step() bool {
	if m.remaining > 0 {
		m.remaining--
	}

	if m.remaining <= 0 {
		m.cancel()
		if m.onExpire != nil {
			m.onExpire(m.attemptID)
		}
		return true
	}

	if !m.warned && m.remaining <= m.warnAt {
		m.warned = true
		if m.onWarning != nil {
			m.onWarning(m.attemptID, m.remaining)
		}
	}
	return false
}

func (m *attemptMonitor) cancel() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
}
