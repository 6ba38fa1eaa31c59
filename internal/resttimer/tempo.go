package resttimer

import "fmt"

// TempoPhase identifies the part of a repetition's cadence
type TempoPhase int

const (
	PhaseNone       TempoPhase = iota // No tempo information (countdown idle)
	PhaseEccentric                    // Lowering
	PhasePause                        // Hold at the bottom
	PhaseConcentric                   // Lifting
)

func (p TempoPhase) String() string {
	switch p {
	case PhaseEccentric:
		return "eccentric"
	case PhasePause:
		return "pause"
	case PhaseConcentric:
		return "concentric"
	default:
		return "none"
	}
}

// Default tempo used when an exercise has none or it cannot be parsed
const (
	DefaultEccentricSeconds  = 3
	DefaultPauseSeconds      = 1
	DefaultConcentricSeconds = 2
)

// TempoDescriptor is the eccentric/pause/concentric cadence of one repetition, in seconds
type TempoDescriptor struct {
	EccentricSeconds  int
	PauseSeconds      int
	ConcentricSeconds int
}

// DefaultTempo returns the 3-1-2 cadence
func DefaultTempo() TempoDescriptor {
	return TempoDescriptor{
		EccentricSeconds:  DefaultEccentricSeconds,
		PauseSeconds:      DefaultPauseSeconds,
		ConcentricSeconds: DefaultConcentricSeconds,
	}
}

// Valid reports whether every phase lasts at least one second
func (t TempoDescriptor) Valid() bool {
	return t.EccentricSeconds > 0 && t.PauseSeconds > 0 && t.ConcentricSeconds > 0
}

// normalized replaces non-positive phases with 1 so PhaseAt never divides by zero
func (t TempoDescriptor) normalized() TempoDescriptor {
	if t.EccentricSeconds <= 0 {
		t.EccentricSeconds = 1
	}
	if t.PauseSeconds <= 0 {
		t.PauseSeconds = 1
	}
	if t.ConcentricSeconds <= 0 {
		t.ConcentricSeconds = 1
	}
	return t
}

// CycleLength is the duration of one full repetition
func (t TempoDescriptor) CycleLength() int {
	n := t.normalized()
	return n.EccentricSeconds + n.PauseSeconds + n.ConcentricSeconds
}

func (t TempoDescriptor) String() string {
	return fmt.Sprintf("%d-%d-%d", t.EccentricSeconds, t.PauseSeconds, t.ConcentricSeconds)
}

// PhaseAt returns the active phase and the fraction of it already spent
// after elapsedSeconds of continuous repetitions. Negative elapsed time is treated as 0.
func PhaseAt(tempo TempoDescriptor, elapsedSeconds int) (TempoPhase, float64) {
	t := tempo.normalized()
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	position := elapsedSeconds % t.CycleLength()

	if position < t.EccentricSeconds {
		return PhaseEccentric, float64(position) / float64(t.EccentricSeconds)
	}
	position -= t.EccentricSeconds
	if position < t.PauseSeconds {
		return PhasePause, float64(position) / float64(t.PauseSeconds)
	}
	position -= t.PauseSeconds
	return PhaseConcentric, float64(position) / float64(t.ConcentricSeconds)
}
