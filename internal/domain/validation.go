package domain

// ValidationEngine converts a measurement window into a stability-aware
// verdict. The engine is stateless between calls; all policy lives in the
// session configuration captured at construction.
//
// Central tendency policy: the reported deviation is the arithmetic mean
// of how far violating samples sit outside the acceptable range. Whether
// a metric is out of range at all is decided by the violating-sample
// fraction, never by a single frame, so transient pose-extraction noise
// cannot flip the verdict.
type ValidationEngine struct {
	cfg SessionConfig
}

func NewValidationEngine(cfg SessionConfig) *ValidationEngine {
	return &ValidationEngine{cfg: cfg}
}

// Evaluate classifies the window. Windows shorter than the configured
// minimum sample count (including empty windows) are Uncertain: the
// engine never commits to Valid or Invalid on insufficient data.
//
// A metric is out of range only when at least NoiseTolerance of the
// in-window samples violate its range. A sample that does not carry the
// metric at all counts as a violation: an unobservable joint cannot
// confirm a correct posture. Ties between simultaneously out-of-range
// metrics go to the first metric in the configured priority order.
func (e *ValidationEngine) Evaluate(window []Measurement) Verdict {
	if len(window) < e.cfg.MinSamples {
		return Uncertain()
	}

	for _, name := range e.cfg.OrderedMetrics() {
		r := e.cfg.Metrics[name]

		violations := 0
		deviationSum := 0.0
		for _, m := range window {
			value, ok := m.Signal(name)
			if !ok {
				violations++
				continue
			}
			if !r.Contains(value) {
				violations++
				deviationSum += r.Distance(value)
			}
		}

		fraction := float64(violations) / float64(len(window))
		if fraction < e.cfg.NoiseTolerance {
			continue
		}

		deviation := 0.0
		if violations > 0 {
			deviation = deviationSum / float64(violations)
		}
		return Invalid(name, deviation)
	}

	return Valid()
}
