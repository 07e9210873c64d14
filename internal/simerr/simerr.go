// Package simerr defines the typed failures a lap simulation can report.
//
// Configuration and degeneracy errors abort a run before any speed is
// computed; numeric degeneracy aborts it at the offending row. RangeWarning is
// the only non-fatal condition and is returned alongside a successful result.
package simerr

import "fmt"

// ConfigurationError reports a missing or invalid input field.
type ConfigurationError struct {
	Field  string // offending key or field, e.g. "mass" or "track.sections[2].length"
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// Configf builds a ConfigurationError for field with a formatted reason.
func Configf(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DegenerateTrackError reports a track that cannot seed both speed sweeps.
type DegenerateTrackError struct {
	Reason string
}

func (e *DegenerateTrackError) Error() string {
	return "degenerate track: " + e.Reason
}

// NumericDegeneracyError reports a value that makes a derived column undefined,
// such as a zero final speed at a row with a non-zero step.
type NumericDegeneracyError struct {
	Row   int
	Field string
	Value float64
}

func (e *NumericDegeneracyError) Error() string {
	return fmt.Sprintf("numeric degeneracy at row %d: %s = %g", e.Row, e.Field, e.Value)
}

// RangeWarning records a torque lookup whose RPM fell outside the sampled
// curve and was clamped to the nearest endpoint.
type RangeWarning struct {
	Row int     `json:"row"`
	RPM float64 `json:"rpm"`
	Min float64 `json:"min_rpm"`
	Max float64 `json:"max_rpm"`
}

func (w RangeWarning) String() string {
	return fmt.Sprintf("row %d: rpm %.1f outside torque curve [%.1f, %.1f], clamped", w.Row, w.RPM, w.Min, w.Max)
}
