package sim

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"viper-physics/internal/physics"
)

var (
	// ErrInvalidFrame is returned for a negative or non-finite frame delta.
	ErrInvalidFrame = errors.New("invalid frame delta")
	ErrNilWorld     = errors.New("nil world")
)

// FrameResult reports what one host frame did.
type FrameResult struct {
	Frame      int
	FixedSteps int
	Contacts   []physics.Contact
}

// Runner drives a world the way a real-time host does: each frame accumulates elapsed time,
// runs as many fixed physics steps as fit, then one collision pass before the frame is drawn.
type Runner struct {
	World         *physics.World
	FixedDelta    float32
	MaxFixedSteps int

	accumulator float32
	frame       int
	log         *zap.Logger
}

// NewRunner returns a runner stepping w at fixedDelta, at most maxFixedSteps per frame.
func NewRunner(w *physics.World, fixedDelta float32, maxFixedSteps int, log *zap.Logger) (*Runner, error) {
	if w == nil {
		return nil, ErrNilWorld
	}
	if fixedDelta <= 0 || math32.IsNaN(fixedDelta) || math32.IsInf(fixedDelta, 0) {
		return nil, fmt.Errorf("fixed delta %v: %w", fixedDelta, physics.ErrInvalidStep)
	}
	if maxFixedSteps <= 0 {
		maxFixedSteps = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{World: w, FixedDelta: fixedDelta, MaxFixedSteps: maxFixedSteps, log: log}, nil
}

// Frame advances the simulation by frameDelta seconds of host time.
// Time beyond MaxFixedSteps fixed steps is dropped rather than carried into later frames.
func (r *Runner) Frame(frameDelta float32) (FrameResult, error) {
	if frameDelta < 0 || math32.IsNaN(frameDelta) || math32.IsInf(frameDelta, 0) {
		return FrameResult{}, fmt.Errorf("frame delta %v: %w", frameDelta, ErrInvalidFrame)
	}
	r.frame++
	res := FrameResult{Frame: r.frame}

	r.accumulator += frameDelta
	for r.accumulator >= r.FixedDelta {
		if res.FixedSteps == r.MaxFixedSteps {
			r.log.Warn("dropping simulation time",
				zap.Int("frame", r.frame),
				zap.Float32("dropped", r.accumulator),
			)
			r.accumulator = 0
			break
		}
		if err := r.World.StepFixed(r.FixedDelta); err != nil {
			return res, err
		}
		r.accumulator -= r.FixedDelta
		res.FixedSteps++
	}

	res.Contacts = r.World.StepVariable()
	return res, nil
}

// Run calls Frame frames times with a constant frameDelta. onFrame, if set, runs after each frame;
// returning an error from it stops the run.
func (r *Runner) Run(frames int, frameDelta float32, onFrame func(FrameResult) error) error {
	for i := 0; i < frames; i++ {
		res, err := r.Frame(frameDelta)
		if err != nil {
			return err
		}
		if onFrame == nil {
			continue
		}
		if err := onFrame(res); err != nil {
			return err
		}
	}
	return nil
}

// Frames returns the number of frames run so far.
func (r *Runner) Frames() int {
	return r.frame
}
