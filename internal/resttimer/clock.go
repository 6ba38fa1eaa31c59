package resttimer

import (
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/lowaak/smart-trainer/rest-timer-app/internal/go_func_utils"
)

// ErrClockUnavailable is returned when a tick subscription cannot be created
var ErrClockUnavailable = errors.New("clock unavailable")

// Clock delivers a periodic tick to a subscriber until the returned cancel
// function is called. Cancel must be idempotent.
type Clock interface {
	Subscribe(onTick func()) (cancel func(), err error)
}

// TickerClock is the production Clock backed by time.Ticker
type TickerClock struct {
	interval time.Duration
	logger   *log.Logger
}

// NewTickerClock creates a clock ticking every interval (one second when interval <= 0)
func NewTickerClock(interval time.Duration, logger *log.Logger) *TickerClock {
	if logger == nil {
		panic("TickerClock: logger cannot be nil")
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &TickerClock{interval: interval, logger: logger}
}

// Subscribe starts a ticker goroutine calling onTick on every tick
func (c *TickerClock) Subscribe(onTick func()) (func(), error) {
	if onTick == nil {
		return nil, errors.New("TickerClock: onTick cannot be nil")
	}

	ticker := time.NewTicker(c.interval)
	doneChan := make(chan struct{})
	var stopOnce sync.Once

	go_func_utils.SafeGo(c.logger, "TickerClock", func() {
		defer ticker.Stop()
		for {
			select {
			case <-doneChan:
				return
			case <-ticker.C:
				// A cancel racing with a tick must win
				select {
				case <-doneChan:
					return
				default:
				}
				onTick()
			}
		}
	})

	return func() {
		stopOnce.Do(func() { close(doneChan) })
	}, nil
}

// ManualClock is a Clock whose ticks are delivered by calling Tick.
// It is used by tests and by anything that drives time itself.
type ManualClock struct {
	mu          sync.Mutex
	subscribers map[uint64]func()
	nextID      uint64
	err         error
}

func NewManualClock() *ManualClock {
	return &ManualClock{subscribers: make(map[uint64]func())}
}

// FailWith makes subsequent Subscribe calls fail with err (nil restores normal behavior)
func (m *ManualClock) FailWith(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

func (m *ManualClock) Subscribe(onTick func()) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	id := m.nextID
	m.nextID++
	m.subscribers[id] = onTick
	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}, nil
}

// Tick delivers one tick to every live subscriber in subscription order
func (m *ManualClock) Tick() {
	m.mu.Lock()
	ids := make([]uint64, 0, len(m.subscribers))
	for id := range m.subscribers {
		ids = append(ids, id)
	}
	m.mu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		m.mu.Lock()
		fn, ok := m.subscribers[id]
		m.mu.Unlock()
		if ok {
			fn()
		}
	}
}

// Advance delivers n ticks
func (m *ManualClock) Advance(n int) {
	for i := 0; i < n; i++ {
		m.Tick()
	}
}

// Subscriptions returns the number of live subscriptions
func (m *ManualClock) Subscriptions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subscribers)
}
