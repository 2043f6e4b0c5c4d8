package resilience

import (
	"context"
	"fmt"
	"sync"
	"time"

	errs "github.com/payflow-labs/payflow/internal/domain/error"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
)

// State is the circuit breaker state
type State int

const (
	// StateClosed allows calls through and counts failures
	StateClosed State = iota
	// StateOpen rejects calls immediately without attempting the network
	StateOpen
	// StateHalfOpen lets probe calls through after the reset timeout
	StateHalfOpen
)

// String returns the lowercase state name used in snapshots and logs
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// Settings parameterizes one breaker
type Settings struct {
	FailureThreshold  int
	ResetTimeout      time.Duration
	HalfOpenSuccesses int
	CallTimeout       time.Duration
}

// DefaultSettings returns the breaker defaults used when a service has no
// explicit configuration
func DefaultSettings() Settings {
	return Settings{
		FailureThreshold:  5,
		ResetTimeout:      30 * time.Second,
		HalfOpenSuccesses: 2,
		CallTimeout:       5 * time.Second,
	}
}

// Observer is notified of breaker state transitions. Observers are pure
// listeners (metrics, logging) and never drive transitions.
type Observer interface {
	StateChanged(service string, from, to State)
}

// Snapshot is a read-only view of one breaker for operational dashboards
type Snapshot struct {
	Service             string `json:"service"`
	State               string `json:"state"`
	ConsecutiveFailures int    `json:"consecutiveFailures"`
	TimeUntilHalfOpenMs int64  `json:"timeUntilHalfOpenMs"`
}

// Breaker is an explicit closed/open/half-open state machine guarding calls
// to one named external service. State is per-process and rebuilt on start;
// instances do not coordinate across processes.
type Breaker struct {
	service  string
	settings Settings
	clock    coreport.TimeProvider

	mu                  sync.Mutex
	state               State
	consecutiveFailures int
	halfOpenSuccesses   int
	openedAt            time.Time
	transitionedAt      time.Time

	observers []Observer
}

// NewBreaker creates a breaker in the closed state
func NewBreaker(service string, settings Settings, clock coreport.TimeProvider, observers ...Observer) *Breaker {
	return &Breaker{
		service:        service,
		settings:       settings,
		clock:          clock,
		state:          StateClosed,
		transitionedAt: clock.Now(),
		observers:      observers,
	}
}

// Service returns the external service name this breaker guards
func (b *Breaker) Service() string {
	return b.service
}

// CurrentState returns the breaker state, moving OPEN to HALF_OPEN once the
// reset timeout has elapsed
func (b *Breaker) CurrentState() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentStateLocked()
}

// TransitionedAt returns when the breaker last changed state
func (b *Breaker) TransitionedAt() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.transitionedAt
}

// RecordSuccess registers a successful call against the breaker
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.currentStateLocked() {
	case StateClosed:
		b.consecutiveFailures = 0
	case StateHalfOpen:
		b.halfOpenSuccesses++
		if b.halfOpenSuccesses >= b.settings.HalfOpenSuccesses {
			b.transitionLocked(StateClosed)
			b.consecutiveFailures = 0
		}
	}
}

// RecordFailure registers a failed or timed-out call against the breaker
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.currentStateLocked() {
	case StateClosed:
		b.consecutiveFailures++
		if b.consecutiveFailures >= b.settings.FailureThreshold {
			b.openLocked()
		}
	case StateHalfOpen:
		// A single probe failure reopens the breaker and restarts the timer
		b.openLocked()
	}
}

// Allow reports whether a call may proceed. While open it fails fast with
// ErrCircuitOpen.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.currentStateLocked() == StateOpen {
		return fmt.Errorf("%w: %s", errs.ErrCircuitOpen, b.service)
	}
	return nil
}

// Execute runs fn under the breaker's call timeout, recording the outcome.
// When the breaker is open, fn is never invoked.
func (b *Breaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := b.Allow(); err != nil {
		return err
	}

	callCtx := ctx
	if b.settings.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = b.clock.WithTimeout(ctx, b.settings.CallTimeout)
		defer cancel()
	}

	if err := fn(callCtx); err != nil {
		b.RecordFailure()
		return err
	}

	b.RecordSuccess()
	return nil
}

// Snapshot returns the breaker's current read-only view
func (b *Breaker) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := b.currentStateLocked()
	var untilHalfOpen int64
	if state == StateOpen {
		remaining := b.settings.ResetTimeout - b.clock.Since(b.openedAt)
		if remaining > 0 {
			untilHalfOpen = remaining.Milliseconds()
		}
	}

	return Snapshot{
		Service:             b.service,
		State:               state.String(),
		ConsecutiveFailures: b.consecutiveFailures,
		TimeUntilHalfOpenMs: untilHalfOpen,
	}
}

// currentStateLocked applies the open -> half-open timer transition.
// Callers must hold b.mu.
func (b *Breaker) currentStateLocked() State {
	if b.state == StateOpen && b.clock.Since(b.openedAt) >= b.settings.ResetTimeout {
		b.transitionLocked(StateHalfOpen)
	}
	return b.state
}

func (b *Breaker) openLocked() {
	b.openedAt = b.clock.Now()
	b.transitionLocked(StateOpen)
}

func (b *Breaker) transitionLocked(to State) {
	from := b.state
	if from == to {
		return
	}

	b.state = to
	b.transitionedAt = b.clock.Now()
	b.halfOpenSuccesses = 0

	for _, o := range b.observers {
		o.StateChanged(b.service, from, to)
	}
}
