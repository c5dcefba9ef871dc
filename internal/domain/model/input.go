package model

// Conditions are the baseline condition flags of the Updated HACOR score.
type Conditions struct {
	Pneumonia                 bool
	CardiogenicPulmonaryEdema bool // CPE; lowers the score
	ARDS                      bool
	Immunosuppression         bool
	SepticShock               bool
}

// HACORInput is everything the primary score consumes.
// The five selections are mandatory; SOFA defaults to 0.
type HACORInput struct {
	HeartRate       Selection
	PH              Selection
	Glasgow         Selection
	PaO2FiO2        Selection
	RespiratoryRate Selection

	// SOFA is the sub-score, entered directly or produced from a SOFAInput.
	SOFA float64

	Conditions Conditions
}

// SOFAInput holds the six organ-system selections of the SOFA sub-score.
// Unselected components count as their lowest value.
type SOFAInput struct {
	Respiration    Selection
	Coagulation    Selection
	Liver          Selection
	Cardiovascular Selection
	CNS            Selection
	Renal          Selection
}

// Values returns the six selections in canonical order.
func (in SOFAInput) Values() [6]Selection {
	return [6]Selection{in.Respiration, in.Coagulation, in.Liver, in.Cardiovascular, in.CNS, in.Renal}
}

// Any reports whether at least one component was selected.
func (in SOFAInput) Any() bool {
	for _, v := range in.Values() {
		if v.IsSet() {
			return true
		}
	}
	return false
}
