package cardfsm

import "math"

// Motion tuning. Lift is in pixels, tilt in degrees.
const (
	HoverLift  = -14.0
	TiltMax    = 9.0
	GlareShift = 28.0

	SpringK = 190.0
	SpringC = 34.0

	targetTau = 0.09
	tiltTau   = 0.08

	// integration step ceiling; long frames are clamped, not caught up
	MaxStepSeconds = 0.02
)

// Motion integrates the card's lift spring and tilt smoothing. One instance
// per card, stepped once per frame.
type Motion struct {
	Y       float64 // current lift
	V       float64 // lift velocity
	TargetY float64 // smoothed target the spring chases
	WantedY float64 // raw target set by the machine

	TiltX       float64
	TiltY       float64
	TiltXTarget float64
	TiltYTarget float64
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// SetLifted points the spring at the hover height or back to rest.
func (m *Motion) SetLifted(lifted bool) {
	if lifted {
		m.WantedY = HoverLift
	} else {
		m.WantedY = 0
	}
}

// SetPointer updates the tilt targets from the pointer position normalized to
// [-1,1] on both card axes. The response curve flattens near the center.
func (m *Motion) SetPointer(nx, ny float64) {
	sx := math.Copysign(math.Pow(math.Abs(nx), 0.85), nx)
	sy := math.Copysign(math.Pow(math.Abs(ny), 0.85), ny)
	m.TiltXTarget = clamp(-sy*TiltMax, -TiltMax, TiltMax)
	m.TiltYTarget = clamp(sx*TiltMax, -TiltMax, TiltMax)
}

// ClearPointer levels the card out.
func (m *Motion) ClearPointer() {
	m.TiltXTarget = 0
	m.TiltYTarget = 0
}

// Step advances the integrator by dt seconds, clamped to MaxStepSeconds.
func (m *Motion) Step(dt float64) {
	dt = clamp(dt, 0, MaxStepSeconds)

	alphaTarget := 1 - math.Exp(-dt/targetTau)
	m.TargetY = lerp(m.TargetY, m.WantedY, alphaTarget)

	a := -SpringK*(m.Y-m.TargetY) - SpringC*m.V
	m.V += a * dt
	m.Y += m.V * dt

	alphaTilt := 1 - math.Exp(-dt/tiltTau)
	m.TiltX = lerp(m.TiltX, m.TiltXTarget, alphaTilt)
	m.TiltY = lerp(m.TiltY, m.TiltYTarget, alphaTilt)
}

// Settled reports whether the motion is close enough to rest to stop stepping.
func (m *Motion) Settled() bool {
	still := math.Abs(m.Y) < 0.05 && math.Abs(m.V) < 0.25
	level := math.Abs(m.TiltX) < 0.05 && math.Abs(m.TiltY) < 0.05
	return still && level
}

// Reset snaps the motion to rest.
func (m *Motion) Reset() {
	*m = Motion{}
}

// Glare derives the sheen intensity and offset from the current tilt.
func (m *Motion) Glare() (amount, shiftX, shiftY float64) {
	tx := clamp(m.TiltX/TiltMax, 0, 1)
	ty := clamp(-m.TiltY/TiltMax, 0, 1)
	amount = math.Pow(tx*ty, 0.85)
	shiftX = m.TiltY / TiltMax * GlareShift
	shiftY = -m.TiltX / TiltMax * GlareShift
	return amount, shiftX, shiftY
}
