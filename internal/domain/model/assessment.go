package model

import "github.com/okian/hacor/internal/domain/risk"

// Breakdown shows how a primary score was assembled.
type Breakdown struct {
	Base       int     // sum of the five HACOR selections
	SOFA       float64 // sub-score after clamping
	SOFAPoints float64 // 0.5 * SOFA

	Pneumonia                 float64
	CardiogenicPulmonaryEdema float64
	ARDS                      float64
	Immunosuppression         float64
	SepticShock               float64

	Raw   float64 // unrounded adjusted sum
	Score float64 // Raw rounded to one decimal
}

// ConditionPoints returns the summed contribution of the condition flags.
func (b Breakdown) ConditionPoints() float64 {
	return b.Pneumonia + b.CardiogenicPulmonaryEdema + b.ARDS + b.Immunosuppression + b.SepticShock
}

// Assessment is the outcome of one calculation request.
type Assessment struct {
	ID        string // correlation id, not persisted
	Breakdown Breakdown
	Score     float64
	Tier      risk.Tier
}
