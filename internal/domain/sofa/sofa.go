// Package sofa computes the Sequential Organ Failure Assessment sub-score
// that feeds the Updated HACOR score.
package sofa

import "github.com/okian/hacor/internal/domain/model"

// MaxScore is the highest attainable sub-score (six components, four points each).
const MaxScore = 24

// Component keys in canonical order.
const (
	KeyRespiration    = "respiration"
	KeyCoagulation    = "coagulation"
	KeyLiver          = "liver"
	KeyCardiovascular = "cardiovascular"
	KeyCNS            = "cns"
	KeyRenal          = "renal"
)

var components = []model.Component{
	{
		Key: KeyRespiration, Label: "Respiration (PaO₂/FiO₂)", Unit: "mmHg",
		Options: []model.Option{
			{Label: "≥400", Points: 0},
			{Label: "<400", Points: 1},
			{Label: "<300", Points: 2},
			{Label: "<200 with respiratory support", Points: 3},
			{Label: "<100 with respiratory support", Points: 4},
		},
	},
	{
		Key: KeyCoagulation, Label: "Coagulation (platelets)", Unit: "×10³/µL",
		Options: []model.Option{
			{Label: "≥150", Points: 0},
			{Label: "<150", Points: 1},
			{Label: "<100", Points: 2},
			{Label: "<50", Points: 3},
			{Label: "<20", Points: 4},
		},
	},
	{
		Key: KeyLiver, Label: "Liver (bilirubin)", Unit: "mg/dL",
		Options: []model.Option{
			{Label: "<1.2", Points: 0},
			{Label: "1.2–1.9", Points: 1},
			{Label: "2.0–5.9", Points: 2},
			{Label: "6.0–11.9", Points: 3},
			{Label: "≥12.0", Points: 4},
		},
	},
	{
		Key: KeyCardiovascular, Label: "Cardiovascular", Unit: "",
		Options: []model.Option{
			{Label: "MAP ≥70 mmHg", Points: 0},
			{Label: "MAP <70 mmHg", Points: 1},
			{Label: "Dopamine ≤5 or dobutamine (any dose)", Points: 2},
			{Label: "Dopamine >5, epinephrine ≤0.1 or norepinephrine ≤0.1", Points: 3},
			{Label: "Dopamine >15, epinephrine >0.1 or norepinephrine >0.1", Points: 4},
		},
	},
	{
		Key: KeyCNS, Label: "Central nervous system (GCS)", Unit: "",
		Options: []model.Option{
			{Label: "15", Points: 0},
			{Label: "13–14", Points: 1},
			{Label: "10–12", Points: 2},
			{Label: "6–9", Points: 3},
			{Label: "<6", Points: 4},
		},
	},
	{
		Key: KeyRenal, Label: "Renal (creatinine or urine output)", Unit: "mg/dL",
		Options: []model.Option{
			{Label: "<1.2", Points: 0},
			{Label: "1.2–1.9", Points: 1},
			{Label: "2.0–3.4", Points: 2},
			{Label: "3.5–4.9 or urine output <500 mL/day", Points: 3},
			{Label: "≥5.0 or urine output <200 mL/day", Points: 4},
		},
	},
}

// Components returns the six SOFA components in canonical order.
func Components() []model.Component {
	out := make([]model.Component, len(components))
	copy(out, components)
	return out
}

// Lookup returns the component with key.
func Lookup(key string) (model.Component, bool) {
	for _, c := range components {
		if c.Key == key {
			return c, true
		}
	}
	return model.Component{}, false
}

// ComputeSubScore sums the six components. An unselected component counts
// as its lowest enumerated value.
func ComputeSubScore(in model.SOFAInput) int {
	total := 0
	for i, v := range in.Values() {
		total += v.Or(components[i].Min())
	}
	return total
}
