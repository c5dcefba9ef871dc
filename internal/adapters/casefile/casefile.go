// Package casefile reads and writes batches of HACOR cases as YAML.
// JSON documents decode too, being valid YAML.
package casefile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/okian/hacor/internal/app"
	"github.com/okian/hacor/internal/domain/model"
	"github.com/okian/hacor/internal/domain/scoring"
)

// Document is the top-level file layout.
type Document struct {
	Cases []Case `yaml:"cases" json:"cases"`
}

// Case is one patient snapshot. Omitted HACOR components stay unselected.
type Case struct {
	ID string `yaml:"id,omitempty" json:"id,omitempty"`

	HeartRate       *int `yaml:"heart_rate,omitempty" json:"heart_rate,omitempty"`
	PH              *int `yaml:"ph,omitempty" json:"ph,omitempty"`
	Glasgow         *int `yaml:"glasgow,omitempty" json:"glasgow,omitempty"`
	PaO2FiO2        *int `yaml:"pao2_fio2,omitempty" json:"pao2_fio2,omitempty"`
	RespiratoryRate *int `yaml:"respiratory_rate,omitempty" json:"respiratory_rate,omitempty"`

	SOFA           SubScore        `yaml:"sofa,omitempty" json:"sofa,omitempty"`
	SOFAComponents *SOFAComponents `yaml:"sofa_components,omitempty" json:"sofa_components,omitempty"`

	Pneumonia         bool `yaml:"pneumonia,omitempty" json:"pneumonia,omitempty"`
	CPE               bool `yaml:"cpe,omitempty" json:"cpe,omitempty"`
	ARDS              bool `yaml:"ards,omitempty" json:"ards,omitempty"`
	Immunosuppression bool `yaml:"immunosuppression,omitempty" json:"immunosuppression,omitempty"`
	SepticShock       bool `yaml:"septic_shock,omitempty" json:"septic_shock,omitempty"`
}

// SOFAComponents are the six organ selections; omitted ones count as 0.
type SOFAComponents struct {
	Respiration    *int `yaml:"respiration,omitempty" json:"respiration,omitempty"`
	Coagulation    *int `yaml:"coagulation,omitempty" json:"coagulation,omitempty"`
	Liver          *int `yaml:"liver,omitempty" json:"liver,omitempty"`
	Cardiovascular *int `yaml:"cardiovascular,omitempty" json:"cardiovascular,omitempty"`
	CNS            *int `yaml:"cns,omitempty" json:"cns,omitempty"`
	Renal          *int `yaml:"renal,omitempty" json:"renal,omitempty"`
}

// SubScore is the free-text SOFA entry. Any scalar is kept verbatim and
// parsed the way the input field is: junk reads as 0, values clamp to [0,24].
type SubScore string

// UnmarshalYAML accepts numbers and strings alike.
func (s *SubScore) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: sofa must be a scalar", n.Line)
	}
	*s = SubScore(n.Value)
	return nil
}

// Value returns the parsed, clamped sub-score.
func (s SubScore) Value() float64 {
	return scoring.ParseSubScore(string(s))
}

// Request converts the case into a service request.
func (c Case) Request() app.Request {
	req := app.Request{
		Input: model.HACORInput{
			HeartRate:       model.FromPtr(c.HeartRate),
			PH:              model.FromPtr(c.PH),
			Glasgow:         model.FromPtr(c.Glasgow),
			PaO2FiO2:        model.FromPtr(c.PaO2FiO2),
			RespiratoryRate: model.FromPtr(c.RespiratoryRate),
			SOFA:            c.SOFA.Value(),
			Conditions: model.Conditions{
				Pneumonia:                 c.Pneumonia,
				CardiogenicPulmonaryEdema: c.CPE,
				ARDS:                      c.ARDS,
				Immunosuppression:         c.Immunosuppression,
				SepticShock:               c.SepticShock,
			},
		},
	}
	if sc := c.SOFAComponents; sc != nil {
		req.SOFA = &model.SOFAInput{
			Respiration:    model.FromPtr(sc.Respiration),
			Coagulation:    model.FromPtr(sc.Coagulation),
			Liver:          model.FromPtr(sc.Liver),
			Cardiovascular: model.FromPtr(sc.Cardiovascular),
			CNS:            model.FromPtr(sc.CNS),
			Renal:          model.FromPtr(sc.Renal),
		}
	}
	return req
}

// FromRequest is the inverse of Case.Request.
func FromRequest(id string, req app.Request) Case {
	in := req.Input
	c := Case{
		ID:                id,
		HeartRate:         in.HeartRate.Ptr(),
		PH:                in.PH.Ptr(),
		Glasgow:           in.Glasgow.Ptr(),
		PaO2FiO2:          in.PaO2FiO2.Ptr(),
		RespiratoryRate:   in.RespiratoryRate.Ptr(),
		Pneumonia:         in.Conditions.Pneumonia,
		CPE:               in.Conditions.CardiogenicPulmonaryEdema,
		ARDS:              in.Conditions.ARDS,
		Immunosuppression: in.Conditions.Immunosuppression,
		SepticShock:       in.Conditions.SepticShock,
	}
	if in.SOFA != 0 {
		c.SOFA = SubScore(strconv.FormatFloat(in.SOFA, 'f', -1, 64))
	}
	if s := req.SOFA; s != nil {
		c.SOFAComponents = &SOFAComponents{
			Respiration:    s.Respiration.Ptr(),
			Coagulation:    s.Coagulation.Ptr(),
			Liver:          s.Liver.Ptr(),
			Cardiovascular: s.Cardiovascular.Ptr(),
			CNS:            s.CNS.Ptr(),
			Renal:          s.Renal.Ptr(),
		}
	}
	return c
}

// Requests converts the document into service cases.
func (d Document) Requests() []app.Case {
	out := make([]app.Case, len(d.Cases))
	for i, c := range d.Cases {
		out[i] = app.Case{ID: c.ID, Request: c.Request()}
	}
	return out
}

// Decode reads a document. Cases without an id get a random one; duplicate
// ids and unknown keys are rejected. An empty stream is an empty document.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	seen := make(map[string]int, len(doc.Cases))
	for i := range doc.Cases {
		c := &doc.Cases[i]
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if first, dup := seen[c.ID]; dup {
			return Document{}, fmt.Errorf("%w: %q at cases %d and %d", ErrDuplicateCase, c.ID, first, i)
		}
		seen[c.ID] = i
	}
	return doc, nil
}

// Load decodes the file at path.
func Load(ctx context.Context, path string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open case file: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := Decode(f)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Encode writes doc as YAML with two-space indentation.
func Encode(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode case file: %w", err)
	}
	return enc.Close()
}
