// Package orientation models the set of allowed edge orientations and
// classifies the vertices and half-edges of a subdivision against it.
package orientation

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/jakoblistabarth/schemapify-sub001/geometry"
	"github.com/jakoblistabarth/schemapify-sub001/internal"
	"github.com/jakoblistabarth/schemapify-sub001/style"
)

// C is an ordered set of allowed directions. Consecutive directions bound a
// sector; the last sector wraps around to the first direction.
type C struct {
	directions []float64
	sectors    []Sector
}

// New builds the orientation set described by a style.
func New(o style.Orientations) (*C, error) {
	if o.IsRegular() {
		if o.Count < 2 {
			return nil, errors.Errorf("a regular orientation set needs at least 2 orientations, got %d", o.Count)
		}
		return NewRegular(o.Count, o.Phase), nil
	}
	return NewIrregular(o.Angles)
}

// NewRegular gives count orientations, that is 2·count directions spaced
// π/count apart, rotated by phase. count must be at least 2; smaller counts
// panic with an internal.SchematizeError, which the pipeline recovers.
func NewRegular(count int, phase float64) *C {
	angles := make([]float64, 0, 2*count)
	for i := 0; i < 2*count; i++ {
		angles = append(angles, phase+float64(i)*math.Pi/float64(count))
	}
	c, err := NewIrregular(angles)
	internal.Fatal(err, "invalid regular orientation set")
	return c
}

// NewIrregular uses the given direction angles, in radians.
func NewIrregular(angles []float64) (*C, error) {
	directions := make([]float64, 0, len(angles))
	for _, a := range angles {
		directions = append(directions, geometry.NormalizeAngle(a))
	}
	sort.Float64s(directions)
	unique := directions[:0]
	for i, d := range directions {
		if i > 0 && geometry.AngleEqual(d, unique[len(unique)-1]) {
			continue
		}
		unique = append(unique, d)
	}
	if len(unique) > 1 && geometry.AngleEqual(unique[0], unique[len(unique)-1]) {
		unique = unique[:len(unique)-1]
	}
	if len(unique) < 4 {
		return nil, errors.Errorf("an orientation set needs at least 4 distinct directions, got %d", len(unique))
	}

	c := &C{directions: unique}
	for i, lower := range unique {
		upper := unique[geometry.CircularIndex(i+1, len(unique))]
		if upper <= lower {
			upper += 2 * math.Pi
		}
		c.sectors = append(c.sectors, Sector{Index: i, Lower: lower, Upper: upper, n: len(unique)})
	}
	return c, nil
}

func (c *C) Len() int {
	return len(c.directions)
}

// Direction returns the angle of direction i. Indices wrap around.
func (c *C) Direction(i int) float64 {
	return c.directions[geometry.CircularIndex(i, len(c.directions))]
}

func (c *C) Directions() []float64 {
	return append([]float64(nil), c.directions...)
}

func (c *C) Sectors() []Sector {
	return append([]Sector(nil), c.sectors...)
}

func (c *C) Sector(i int) Sector {
	return c.sectors[geometry.CircularIndex(i, len(c.sectors))]
}

// AlignedDirection finds the direction an angle is aligned to.
func (c *C) AlignedDirection(angle float64) (int, bool) {
	for i, d := range c.directions {
		if geometry.AngleEqual(angle, d) {
			return i, true
		}
	}
	return -1, false
}

// EnclosingSectors lists the sectors enclosing an angle: one for unaligned
// angles, two for angles on a sector boundary.
func (c *C) EnclosingSectors(angle float64) []Sector {
	var sectors []Sector
	for _, s := range c.sectors {
		if s.Encloses(angle) {
			sectors = append(sectors, s)
		}
	}
	return sectors
}

// SectorOf returns the sector strictly containing an unaligned angle.
func (c *C) SectorOf(angle float64) (Sector, bool) {
	if _, aligned := c.AlignedDirection(angle); aligned {
		return Sector{}, false
	}
	sectors := c.EnclosingSectors(angle)
	if len(sectors) != 1 {
		return Sector{}, false
	}
	return sectors[0], true
}
