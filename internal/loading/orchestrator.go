// Package loading aggregates startup work into a single weighted progress
// value. Work is split into phases; each phase either reports real progress
// or runs indeterminate, where progress is synthesized from elapsed time up
// to a cap so the bar keeps moving without ever claiming completion.
package loading

import (
	"context"
	"math"
	"sync"
	"time"
)

// Phase names one tracked startup stage.
type Phase string

const (
	PhaseBoot   Phase = "boot"
	PhaseApp    Phase = "app"
	PhaseEngine Phase = "engine"
	PhaseAssets Phase = "assets"
)

// Phases lists all phases in weight order.
var Phases = []Phase{PhaseBoot, PhaseApp, PhaseEngine, PhaseAssets}

var phaseWeights = map[Phase]float64{
	PhaseBoot:   10,
	PhaseApp:    10,
	PhaseEngine: 30,
	PhaseAssets: 50,
}

// Indeterminate phases creep toward a cap below 1 so only CompletePhase can
// finish them.
var indeterminateCap = map[Phase]float64{
	PhaseBoot:   0.85,
	PhaseApp:    0.9,
	PhaseEngine: 0.92,
	PhaseAssets: 0.9,
}

var indeterminateDuration = map[Phase]time.Duration{
	PhaseBoot:   650 * time.Millisecond,
	PhaseApp:    1100 * time.Millisecond,
	PhaseEngine: 1800 * time.Millisecond,
	PhaseAssets: 2200 * time.Millisecond,
}

// Timings for the handoff out of the loading screen.
const (
	BootSettleDelay = 220 * time.Millisecond
	ExitBlackout    = 140 * time.Millisecond
	ExitReveal      = 180 * time.Millisecond
)

type phaseStatus int

const (
	statusIdle phaseStatus = iota
	statusLoading
	statusDone
)

type phaseState struct {
	enabled       bool
	status        phaseStatus
	progress      float64
	indeterminate bool
	startedAt     time.Time
}

// Orchestrator tracks phase state and exposes the aggregate. The zero value
// is not usable; construct with New.
type Orchestrator struct {
	mu     sync.Mutex
	now    func() time.Time
	phases map[Phase]*phaseState

	// Aggregate progress only moves forward within a cycle. Enabling or
	// resetting phases starts a new cycle so the bar may legitimately drop.
	cycle     int
	lastCycle int
	max       float64
}

// New builds an orchestrator with boot and app enabled, engine and assets off
// until a game is chosen.
func New() *Orchestrator {
	return NewWithClock(time.Now)
}

// NewWithClock injects the time source, for tests.
func NewWithClock(now func() time.Time) *Orchestrator {
	return &Orchestrator{
		now: now,
		phases: map[Phase]*phaseState{
			PhaseBoot:   {enabled: true},
			PhaseApp:    {enabled: true},
			PhaseEngine: {},
			PhaseAssets: {},
		},
	}
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// phaseProgressLocked computes one phase's effective progress.
func (o *Orchestrator) phaseProgressLocked(phase Phase) float64 {
	s := o.phases[phase]
	if !s.enabled {
		return 0
	}
	switch s.status {
	case statusDone:
		return 1
	case statusIdle:
		return 0
	}
	if s.indeterminate {
		if s.startedAt.IsZero() {
			return s.progress
		}
		elapsed := o.now().Sub(s.startedAt)
		if elapsed < 0 {
			elapsed = 0
		}
		duration := indeterminateDuration[phase]
		limit := indeterminateCap[phase]
		auto := 0.0
		if duration > 0 {
			auto = math.Min(limit, float64(elapsed)/float64(duration)*limit)
		}
		return math.Max(s.progress, auto)
	}
	return s.progress
}

func (o *Orchestrator) targetLocked() float64 {
	totalWeight := 0.0
	weighted := 0.0
	for _, phase := range Phases {
		if !o.phases[phase].enabled {
			continue
		}
		w := phaseWeights[phase]
		totalWeight += w
		weighted += o.phaseProgressLocked(phase) * w
	}
	if totalWeight <= 0 {
		return 1
	}
	return clamp01(weighted / totalWeight)
}

func (o *Orchestrator) progressLocked() float64 {
	target := o.targetLocked()
	if o.lastCycle != o.cycle {
		o.lastCycle = o.cycle
		o.max = target
	} else if target > o.max {
		o.max = target
	}
	return o.max
}

// Progress returns the aggregate in [0,1], monotonic within a cycle.
func (o *Orchestrator) Progress() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.progressLocked()
}

// Percent returns the aggregate as a percentage with one decimal.
func (o *Orchestrator) Percent() float64 {
	return math.Round(clamp01(o.Progress())*1000) / 10
}

// Active reports whether the loading screen should still be up.
func (o *Orchestrator) Active() bool {
	return o.Progress() < 0.999
}

// PhaseProgress returns one phase's effective progress in [0,1].
func (o *Orchestrator) PhaseProgress(phase Phase) float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phaseProgressLocked(phase)
}

// SetPhaseEnabled includes or excludes a phase from the aggregate. Changing
// the enabled set starts a new cycle.
func (o *Orchestrator) SetPhaseEnabled(phase Phase, enabled bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := o.phases[phase]
	if s.enabled == enabled {
		return
	}
	s.enabled = enabled
	o.cycle++
}

// StartPhase begins a phase in indeterminate mode.
func (o *Orchestrator) StartPhase(phase Phase) {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := o.phases[phase]
	s.enabled = true
	s.status = statusLoading
	s.indeterminate = true
	s.progress = 0
	s.startedAt = o.now()
}

// SetPhaseProgress switches a phase to determinate and reports real progress.
func (o *Orchestrator) SetPhaseProgress(phase Phase, progress float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := o.phases[phase]
	s.enabled = true
	s.status = statusLoading
	s.indeterminate = false
	s.progress = clamp01(progress)
	if s.startedAt.IsZero() {
		s.startedAt = o.now()
	}
}

// CompletePhase marks a phase finished.
func (o *Orchestrator) CompletePhase(phase Phase) {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := o.phases[phase]
	s.enabled = true
	s.status = statusDone
	s.indeterminate = false
	s.progress = 1
}

// ResetPhase returns a phase to idle and starts a new cycle.
func (o *Orchestrator) ResetPhase(phase Phase) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resetLocked(phase)
	o.cycle++
}

// ResetAll returns every phase to idle and starts a new cycle.
func (o *Orchestrator) ResetAll() {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, phase := range Phases {
		o.resetLocked(phase)
	}
	o.cycle++
}

func (o *Orchestrator) resetLocked(phase Phase) {
	s := o.phases[phase]
	s.status = statusIdle
	s.indeterminate = false
	s.progress = 0
	s.startedAt = time.Time{}
}

// TrackPhase runs fn bracketed by StartPhase and CompletePhase. The phase
// completes even when fn fails so the bar never wedges; the error still
// propagates.
func (o *Orchestrator) TrackPhase(ctx context.Context, phase Phase, fn func(context.Context) error) error {
	o.StartPhase(phase)
	err := fn(ctx)
	o.CompletePhase(phase)
	return err
}
