// Package render prints calculator results as aligned text or JSON.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okian/hacor/internal/app"
	"github.com/okian/hacor/internal/domain/model"
	"github.com/okian/hacor/internal/domain/risk"
)

// Formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned by New.
var ErrUnknownFormat = errors.New("unknown output format")

// Renderer writes one kind of result per call.
type Renderer interface {
	Assessment(w io.Writer, a model.Assessment) error
	SubScore(w io.Writer, sofa int) error
	Classification(w io.Writer, score float64, t risk.Tier) error
	Tiers(w io.Writer, tiers []risk.Tier) error
	Components(w io.Writer, hacor, sofa []model.Component) error
	Batch(w io.Writer, results []app.CaseResult) error
}

// New returns the renderer for format.
func New(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return Text{}, nil
	case FormatJSON:
		return JSON{Indent: "  "}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
