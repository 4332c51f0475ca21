package debug

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Stats samples process memory and simulation throughput for periodic log lines.
// Heap numbers are only re-read every UpdateInterval calls to Tick to limit
// stop-the-world pauses from runtime.ReadMemStats.
type Stats struct {
	UpdateInterval int

	started    time.Time
	frames     int
	steps      int
	lastSample runtime.MemStats
	sampled    bool
}

// DefaultUpdateInterval is how many frames pass between heap samples.
const DefaultUpdateInterval = 30

// New returns a Stats probe that starts timing now.
func New() *Stats {
	return &Stats{UpdateInterval: DefaultUpdateInterval, started: time.Now()}
}

// Tick records one host frame that ran fixedSteps simulation steps.
func (s *Stats) Tick(fixedSteps int) {
	s.frames++
	s.steps += fixedSteps
	interval := s.UpdateInterval
	if interval <= 0 {
		interval = DefaultUpdateInterval
	}
	if !s.sampled || s.frames%interval == 0 {
		s.sample()
	}
}

func (s *Stats) sample() {
	runtime.ReadMemStats(&s.lastSample)
	s.sampled = true
}

// Frames returns the number of recorded frames.
func (s *Stats) Frames() int { return s.frames }

// Steps returns the number of recorded fixed steps.
func (s *Stats) Steps() int { return s.steps }

// HeapMiB is the heap allocation at the last sample.
func (s *Stats) HeapMiB() float64 {
	if !s.sampled {
		s.sample()
	}
	return float64(s.lastSample.Alloc) / (1024 * 1024)
}

// StepsPerSecond is the wall-clock fixed step rate since New.
func (s *Stats) StepsPerSecond() float64 {
	elapsed := time.Since(s.started).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.steps) / elapsed
}

// Fields returns the current stats as zap fields.
func (s *Stats) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("frames", s.frames),
		zap.Int("fixed_steps", s.steps),
		zap.Float64("heap_mib", s.HeapMiB()),
		zap.Float64("steps_per_sec", s.StepsPerSecond()),
		zap.Int("goroutines", runtime.NumGoroutine()),
	}
}
