// Package style holds the parameters that control a schematization run. A
// Style is a plain value: every pipeline stage receives it explicitly.
package style

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Orientations describes the set of allowed edge orientations. A regular set
// has Count orientations spaced π/Count apart, rotated by Phase radians. An
// irregular set lists its direction angles explicitly, in radians.
type Orientations struct {
	Count  int       `yaml:"count,omitempty"`
	Phase  float64   `yaml:"phase,omitempty"`
	Angles []float64 `yaml:"angles,omitempty"`
}

// IsRegular reports whether the set is given by count and phase.
func (o Orientations) IsRegular() bool {
	return len(o.Angles) == 0
}

type Style struct {
	// Edges longer than Lambda times the subdivision's diameter are split
	// before classification.
	Lambda float64 `yaml:"lambda"`
	// K bounds the number of edge-move iterations.
	K int          `yaml:"k"`
	C Orientations `yaml:"c"`
	// StaircaseEpsilon is the fraction of an aligned deviating edge kept
	// straight at its far end.
	StaircaseEpsilon float64 `yaml:"staircaseEpsilon"`
}

// Default is the style used by the command line tool when no file is given:
// rectilinear output.
func Default() Style {
	return Style{
		Lambda:           0.1,
		K:                100,
		C:                Orientations{Count: 2},
		StaircaseEpsilon: 0.05,
	}
}

// Load decodes a YAML style. Fields missing from the document keep the
// values of base.
func Load(r io.Reader, base Style) (Style, error) {
	st := base
	if err := yaml.NewDecoder(r).Decode(&st); err != nil && err != io.EOF {
		return Style{}, errors.Wrap(err, "failed to decode style")
	}
	if err := st.Validate(); err != nil {
		return Style{}, err
	}
	return st, nil
}

func (s Style) Validate() error {
	if s.Lambda <= 0 {
		return errors.Errorf("lambda must be positive, got %v", s.Lambda)
	}
	if s.K < 0 {
		return errors.Errorf("k must not be negative, got %d", s.K)
	}
	if s.C.IsRegular() && s.C.Count < 2 {
		return errors.Errorf("a regular orientation set needs at least 2 orientations, got %d", s.C.Count)
	}
	if !s.C.IsRegular() && len(s.C.Angles) < 4 {
		return errors.Errorf("an irregular orientation set needs at least 4 directions, got %d", len(s.C.Angles))
	}
	if s.StaircaseEpsilon < 0 || s.StaircaseEpsilon >= 0.5 {
		return errors.Errorf("staircaseEpsilon must lie in [0, 0.5), got %v", s.StaircaseEpsilon)
	}
	return nil
}
