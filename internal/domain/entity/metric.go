package entity

import "strconv"

// Metric is a unitless ratio that may be undefined (upstream did not provide
// it) or infinite (e.g. health factor with zero debt). It exists so that the
// presentation layer can render "N/A" or "∞" instead of a fabricated number.
type Metric struct {
	Defined  bool
	Infinite bool
	Value    float64
}

// UndefinedMetric is the zero Metric, rendered as "N/A".
func UndefinedMetric() Metric {
	return Metric{}
}

// FiniteMetric returns a defined, finite Metric.
func FiniteMetric(v float64) Metric {
	return Metric{Defined: true, Value: v}
}

// InfiniteMetric returns a defined, infinite Metric.
func InfiniteMetric() Metric {
	return Metric{Defined: true, Infinite: true}
}

// IsSafe reports whether the metric, read as a health factor, is safe:
// defined, finite and at least 1.0. An infinite health factor (no debt) is
// bucketed separately via HealthBucket.
func (m Metric) IsSafe() bool {
	return m.Defined && !m.Infinite && m.Value >= 1.0
}

// String renders the metric for human display.
func (m Metric) String() string {
	if !m.Defined {
		return "N/A"
	}
	if m.Infinite {
		return "∞"
	}
	return strconv.FormatFloat(m.Value, 'f', 2, 64)
}

// MarshalJSON renders undefined as null, infinite as "∞" and finite values as
// plain numbers.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Defined {
		return []byte("null"), nil
	}
	if m.Infinite {
		return []byte(`"∞"`), nil
	}
	return []byte(strconv.FormatFloat(m.Value, 'f', -1, 64)), nil
}

// HealthBucket classifies a health factor for display and alerting.
type HealthBucket string

const (
	// HealthUnknown means upstream provided no health factor.
	HealthUnknown HealthBucket = "unknown"
	// HealthNoDebt means the account has no debt (infinite health factor).
	HealthNoDebt HealthBucket = "no_debt"
	// HealthLiquidation means the position is eligible for liquidation.
	HealthLiquidation HealthBucket = "liquidation"
	// HealthAtRisk means the health factor is below 1.2.
	HealthAtRisk HealthBucket = "at_risk"
	// HealthCaution means the health factor is below 1.5.
	HealthCaution HealthBucket = "caution"
	// HealthHealthy means the health factor is 1.5 or above.
	HealthHealthy HealthBucket = "healthy"
)

// Bucket maps a health-factor metric onto its display bucket. Thresholds
// match the dashboard warnings (1.0 liquidation, 1.2 low, 1.5 comfortable).
func (m Metric) Bucket() HealthBucket {
	switch {
	case !m.Defined:
		return HealthUnknown
	case m.Infinite:
		return HealthNoDebt
	case m.Value < 1.0:
		return HealthLiquidation
	case m.Value < 1.2:
		return HealthAtRisk
	case m.Value < 1.5:
		return HealthCaution
	default:
		return HealthHealthy
	}
}
