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

// CircuitBreakerConfig describes the breaker in front of one upstream.
type CircuitBreakerConfig struct {
	Enabled bool

	// FailureThreshold is the run of consecutive failures that opens the
	// circuit.
	FailureThreshold int
	OpenTimeout      time.Duration

	// HalfOpenMaxReq probes must all succeed before the circuit closes.
	HalfOpenMaxReq int
}

// DefaultCircuitBreakerConfig matches the FPL_CIRCUIT_* defaults.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	d := DefaultCircuitBreakerConfig()
	if c.FailureThreshold < 1 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = d.OpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = d.HalfOpenMaxReq
	}
	return c
}

// CircuitBreaker fails fast after a run of upstream failures, then admits
// a bounded number of probes once OpenTimeout has passed. A disabled
// breaker admits everything and never changes state.
type CircuitBreaker struct {
	cfg CircuitBreakerConfig
	now func() time.Time

	mu       sync.Mutex
	state    CircuitState
	failures int
	openedAt time.Time
	probes   int // admitted while half open
	passed   int // probes that succeeded
	listener func(CircuitState)
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   cfg.withDefaults(),
		now:   time.Now,
		state: CircuitStateClosed,
	}
}

// Config returns the effective settings after defaults.
func (b *CircuitBreaker) Config() CircuitBreakerConfig {
	return b.cfg
}

// OnStateChange registers fn for transitions. fn runs after the breaker
// lock is released.
func (b *CircuitBreaker) OnStateChange(fn func(CircuitState)) {
	b.mu.Lock()
	b.listener = fn
	b.mu.Unlock()
}

// Allow admits a call or returns ErrCircuitOpen. Every admitted call must
// be followed by exactly one Report.
func (b *CircuitBreaker) Allow() error {
	if !b.cfg.Enabled {
		return nil
	}

	b.mu.Lock()
	var changed []CircuitState
	if b.state == CircuitStateOpen && b.cooledDown() {
		changed = b.moveTo(changed, CircuitStateHalfOpen)
	}

	var err error
	switch {
	case b.state == CircuitStateOpen:
		err = ErrCircuitOpen
	case b.state == CircuitStateHalfOpen && b.probes >= b.cfg.HalfOpenMaxReq:
		err = ErrCircuitOpen
	case b.state == CircuitStateHalfOpen:
		b.probes++
	}
	listener := b.listener
	b.mu.Unlock()

	notify(listener, changed)
	return err
}

// Report records the outcome of a call admitted by Allow.
func (b *CircuitBreaker) Report(success bool) {
	if !b.cfg.Enabled {
		return
	}

	b.mu.Lock()
	var changed []CircuitState
	switch b.state {
	case CircuitStateClosed:
		if success {
			b.failures = 0
			break
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			changed = b.moveTo(changed, CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		if !success {
			changed = b.moveTo(changed, CircuitStateOpen)
			break
		}
		b.passed++
		if b.passed >= b.cfg.HalfOpenMaxReq {
			changed = b.moveTo(changed, CircuitStateClosed)
		}
	case CircuitStateOpen:
		// A call admitted before the circuit opened; failures keep it open longer.
		if !success {
			b.openedAt = b.now()
		}
	}
	listener := b.listener
	b.mu.Unlock()

	notify(listener, changed)
}

// State reports the current state. An open circuit whose timeout has
// elapsed reads as half open even before the next Allow.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.cooledDown() {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) cooledDown() bool {
	return b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout
}

// moveTo resets per-state counters and appends the new state to changed.
func (b *CircuitBreaker) moveTo(changed []CircuitState, next CircuitState) []CircuitState {
	if b.state == next {
		return changed
	}
	b.state = next
	b.failures, b.probes, b.passed = 0, 0, 0
	if next == CircuitStateOpen {
		b.openedAt = b.now()
	}
	return append(changed, next)
}

func notify(listener func(CircuitState), changed []CircuitState) {
	if listener == nil {
		return
	}
	for _, state := range changed {
		listener(state)
	}
}
