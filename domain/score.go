package domain

import "math"

type ThreatLevel string

const (
	VeryLow  ThreatLevel = "Very Low"
	Low      ThreatLevel = "Low"
	Medium   ThreatLevel = "Medium"
	High     ThreatLevel = "High"
	Critical ThreatLevel = "Critical"
	Unknown  ThreatLevel = "Unknown"
)

// MaliciousThreshold is the threat percentage a sample must strictly exceed to be flagged.
const MaliciousThreshold = 50.0

// ScoreResult is the outcome of one scoring request. It is never persisted.
type ScoreResult struct {
	SecurityScore float64     `json:"security_score"`
	ThreatLevel   ThreatLevel `json:"threat_level"`
	IsMalicious   bool        `json:"is_malicious"`
	Error         string      `json:"error,omitempty"`
}

// ThreatLevelFor buckets a threat percentage into half-open ranges, lower bound inclusive.
func ThreatLevelFor(threat float64) ThreatLevel {
	switch {
	case threat < 20:
		return VeryLow
	case threat < 40:
		return Low
	case threat < 60:
		return Medium
	case threat < 80:
		return High
	default:
		return Critical
	}
}

// NewScoreResult converts the probability of the malicious class into a ScoreResult.
func NewScoreResult(probability float64) ScoreResult {
	threat := probability * 100
	return ScoreResult{
		SecurityScore: roundTo(100-threat, 2),
		ThreatLevel:   ThreatLevelFor(threat),
		IsMalicious:   threat > MaliciousThreshold,
	}
}

// ErrorResult is the structured payload returned instead of failing the caller.
func ErrorResult(err error) ScoreResult {
	return ScoreResult{
		SecurityScore: 0,
		ThreatLevel:   Unknown,
		IsMalicious:   false,
		Error:         err.Error(),
	}
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
