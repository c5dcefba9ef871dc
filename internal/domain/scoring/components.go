package scoring

import "github.com/okian/hacor/internal/domain/model"

// Component keys of the original HACOR scale, in canonical order.
const (
	KeyHeartRate       = "heart_rate"
	KeyPH              = "ph"
	KeyGlasgow         = "glasgow"
	KeyPaO2FiO2        = "pao2_fio2"
	KeyRespiratoryRate = "respiratory_rate"
)

var components = []model.Component{
	{
		Key: KeyHeartRate, Label: "Heart Rate", Unit: "beats/min",
		Options: []model.Option{
			{Label: "≤120", Points: 0},
			{Label: "≥121", Points: 1},
		},
	},
	{
		Key: KeyPH, Label: "pH", Unit: "",
		Options: []model.Option{
			{Label: "≥7.35", Points: 0},
			{Label: "7.30–7.34", Points: 2},
			{Label: "7.25–7.29", Points: 3},
			{Label: "<7.25", Points: 4},
		},
	},
	{
		Key: KeyGlasgow, Label: "Glasgow", Unit: "GCS",
		Options: []model.Option{
			{Label: "15", Points: 0},
			{Label: "13–14", Points: 2},
			{Label: "11–12", Points: 5},
			{Label: "≤10", Points: 10},
		},
	},
	{
		Key: KeyPaO2FiO2, Label: "PaO₂/FiO₂", Unit: "mmHg",
		Options: []model.Option{
			{Label: "≥201", Points: 0},
			{Label: "176–200", Points: 2},
			{Label: "151–175", Points: 3},
			{Label: "126–150", Points: 4},
			{Label: "101–125", Points: 5},
			{Label: "≤100", Points: 6},
		},
	},
	{
		Key: KeyRespiratoryRate, Label: "Respiratory Rate", Unit: "breaths/min",
		Options: []model.Option{
			{Label: "≤30", Points: 0},
			{Label: "31–35", Points: 1},
			{Label: "36–40", Points: 2},
			{Label: "41–45", Points: 3},
			{Label: "≥46", Points: 4},
		},
	},
}

// Components returns the five HACOR components in canonical order.
func Components() []model.Component {
	out := make([]model.Component, len(components))
	copy(out, components)
	return out
}

// Lookup returns the HACOR component registered under key.
func Lookup(key string) (model.Component, bool) {
	for _, c := range components {
		if c.Key == key {
			return c, true
		}
	}
	return model.Component{}, false
}

// Selections pairs each component with its value in in, in canonical order.
func Selections(in model.HACORInput) [5]model.Selection {
	return [5]model.Selection{in.HeartRate, in.PH, in.Glasgow, in.PaO2FiO2, in.RespiratoryRate}
}
