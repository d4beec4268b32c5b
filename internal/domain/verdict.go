package domain

// VerdictStatus is the closed set of posture classifications.
type VerdictStatus string

const (
	VerdictUncertain VerdictStatus = "uncertain"
	VerdictValid     VerdictStatus = "valid"
	VerdictInvalid   VerdictStatus = "invalid"
)

// Verdict is the stability-aware posture classification for one evaluated
// window. Metric and Deviation are populated only for Invalid verdicts and
// name the worst-offending metric per the configured priority order.
type Verdict struct {
	Status    VerdictStatus
	Metric    string
	Deviation float64
}

func Uncertain() Verdict {
	return Verdict{Status: VerdictUncertain}
}

func Valid() Verdict {
	return Verdict{Status: VerdictValid}
}

func Invalid(metric string, deviation float64) Verdict {
	return Verdict{Status: VerdictInvalid, Metric: metric, Deviation: deviation}
}

// SameState reports whether two verdicts represent the same posture state
// for run-length purposes. Only the status matters: an Invalid run that
// shifts its worst metric is still one continuous deviation.
func (v Verdict) SameState(other Verdict) bool {
	return v.Status == other.Status
}
