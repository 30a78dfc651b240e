// Package resilience guards calls to remote dependencies.
package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = 5
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = 15 * time.Second
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = 2
	}
	return c
}

// CircuitBreaker opens after FailureThreshold consecutive failures, rejects
// calls for OpenTimeout, then lets HalfOpenMaxReq probes through. A disabled
// breaker allows everything.
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig
	now func() time.Time

	state     CircuitState
	failures  int
	openedAt  time.Time
	probing   int
	succeeded int
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   cfg.withDefaults(),
		now:   time.Now,
		state: CircuitStateClosed,
	}
}

func (b *CircuitBreaker) Enabled() bool {
	return b != nil && b.cfg.Enabled
}

// Allow reserves a slot for one call. Every nil return must be paired with
// Record.
func (b *CircuitBreaker) Allow() error {
	if !b.Enabled() {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrCircuitOpen
		}
		b.reset(CircuitStateHalfOpen)
	}
	if b.state == CircuitStateHalfOpen {
		if b.probing >= b.cfg.HalfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.probing++
	}
	return nil
}

// Record reports the outcome of a call admitted by Allow.
func (b *CircuitBreaker) Record(failed bool) {
	if !b.Enabled() {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		if !failed {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
	case CircuitStateHalfOpen:
		if b.probing > 0 {
			b.probing--
		}
		if failed {
			b.trip()
			return
		}
		b.succeeded++
		if b.succeeded >= b.cfg.HalfOpenMaxReq && b.probing == 0 {
			b.reset(CircuitStateClosed)
		}
	case CircuitStateOpen:
		if failed {
			b.openedAt = b.now()
		}
	}
}

func (b *CircuitBreaker) State() CircuitState {
	if !b.Enabled() {
		return CircuitStateClosed
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) trip() {
	b.reset(CircuitStateOpen)
	b.openedAt = b.now()
}

func (b *CircuitBreaker) reset(state CircuitState) {
	b.state = state
	b.failures = 0
	b.probing = 0
	b.succeeded = 0
	b.openedAt = time.Time{}
}
