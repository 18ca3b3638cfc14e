package staircase

import (
	"io"
	"log"
	"math"

	"github.com/pkg/errors"

	"github.com/jakoblistabarth/schemapify-sub001/dcel"
	"github.com/jakoblistabarth/schemapify-sub001/geometry"
	"github.com/jakoblistabarth/schemapify-sub001/internal/edgeindex"
	"github.com/jakoblistabarth/schemapify-sub001/orientation"
)

// DefaultMaxSteps caps the step count of a single staircase.
const DefaultMaxSteps = 64

// Generator plans and splices staircases for a classified subdivision.
type Generator struct {
	C *orientation.C
	// Epsilon is the share of an aligned deviating edge kept straight at its
	// far end.
	Epsilon  float64
	MaxSteps int
	Logger   *log.Logger
}

func (g Generator) logger() *log.Logger {
	if g.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return g.Logger
}

func (g Generator) maxSteps() int {
	if g.MaxSteps <= 0 {
		return DefaultMaxSteps
	}
	return g.MaxSteps
}

// Run plans all staircases and splices them into s.
func (g Generator) Run(s *dcel.Subdivision) error {
	stairs, err := g.Plan(s)
	if err != nil {
		return err
	}
	return g.Apply(s, stairs)
}

// Plan computes a staircase for every classified edge that is not aligned
// basic. Deviating edges are planned first against the original edges; the
// others are then planned against the finished deviating paths. The returned
// staircases are in that order.
func (g Generator) Plan(s *dcel.Subdivision) ([]*Staircase, error) {
	if g.C == nil {
		return nil, errors.New("staircase generator needs an orientation set")
	}
	var deviating, basic []*Staircase
	for _, e := range s.SimpleEdges() {
		h := orientation.SignificantHalfEdge(s, e)
		class := s.Class(h)
		if class == dcel.NoClass || class == dcel.AlignedBasic {
			continue
		}
		st := &Staircase{
			Edge:       h,
			Class:      class,
			Segment:    s.Segment(h),
			Assigned:   s.AssignedDirection(h),
			Associated: dcel.NoDirection,
			Clearance:  math.Inf(1),
		}
		if class.IsDeviating() {
			deviating = append(deviating, st)
		} else {
			basic = append(basic, st)
		}
	}

	idx := edgeindex.FromSubdivision(s)
	var planned []*Staircase
	for _, st := range deviating {
		if g.plan(s, idx, st) {
			planned = append(planned, st)
		}
	}
	for _, st := range planned {
		idx.RemoveEdge(edgeindex.Key(s, st.Edge))
		for _, segment := range st.Path() {
			idx.InsertSegment(segment)
		}
	}
	for _, st := range basic {
		if g.plan(s, idx, st) {
			planned = append(planned, st)
		}
	}
	return planned, nil
}

func (g Generator) layout(st *Staircase) (layout, bool) {
	l := layout{class: st.Class, a: st.Segment.A, b: st.Segment.B}
	if st.Assigned == dcel.NoDirection {
		return l, false
	}
	angle := st.Segment.Angle()
	assigned := geometry.VectorFromAngle(g.C.Direction(st.Assigned))

	switch st.Class {
	case dcel.AlignedDeviating:
		aligned, ok := g.C.AlignedDirection(angle)
		if !ok {
			return l, false
		}
		l.d1 = geometry.VectorFromAngle(g.C.Direction(aligned))
		l.ds = assigned
		st.Associated = aligned
		return l, math.Abs(l.d1.Cross(l.ds)) > geometry.Tolerance

	case dcel.Evading, dcel.UnalignedDeviating:
		sector, ok := g.C.SectorOf(angle)
		if !ok {
			return l, false
		}
		lower, upper := sector.Bounds()
		// The zigzag starts along the bound nearer to the detour.
		first, second := lower, upper
		if geometry.AngleDistance(g.C.Direction(upper), g.C.Direction(st.Assigned)) <
			geometry.AngleDistance(g.C.Direction(lower), g.C.Direction(st.Assigned)) {
			first, second = upper, lower
		}
		l.d1 = geometry.VectorFromAngle(g.C.Direction(first))
		l.d2 = geometry.VectorFromAngle(g.C.Direction(second))
		l.ds = assigned
		st.Associated = second
		return l, true

	default:
		sector, ok := g.C.SectorOf(angle)
		if !ok || !sector.HasBound(st.Assigned) {
			return l, false
		}
		lower, upper := sector.Bounds()
		other := upper
		if st.Assigned == upper {
			other = lower
		}
		l.d1 = assigned
		l.d2 = geometry.VectorFromAngle(g.C.Direction(other))
		st.Associated = other
		return l, true
	}
}

// plan fills in the geometry of st. It reports false when no staircase can
// be built for the edge.
func (g Generator) plan(s *dcel.Subdivision, idx *edgeindex.Index, st *Staircase) bool {
	l, ok := g.layout(st)
	if !ok {
		g.logger().Printf("no staircase for edge %d (%s): degenerate directions", st.Edge, st.Class)
		return false
	}

	detour := 0.0
	if st.Class.IsDeviating() {
		detour = maxOffsetShare * l.length()
	}

	// The widest region decides which edges interfere; the clearance they
	// leave then shrinks the detour and the steps.
	self := edgeindex.Key(s, st.Edge)
	st.Interferences = st.Interferences[:0]
	for _, entry := range idx.IntersectingRing(l.region(detour, g.Epsilon)) {
		if entry.Edge == self {
			continue
		}
		if entry.Edge != dcel.NoEdge {
			st.Interferences = append(st.Interferences, entry.Edge)
		}
		st.Clearance = math.Min(st.Clearance, separation(st.Segment, entry.Segment))
	}

	limit := st.Clearance / 2
	switch st.Class {
	case dcel.AlignedDeviating:
		detour = math.Min(detour, limit)
	case dcel.Evading, dcel.UnalignedDeviating:
		_, _, detour = l.legs(math.Min(detour, limit/2))
		limit -= detour
	}

	st.Offset = detour
	st.Steps = stepsFor(l.offset(detour), limit, l.minSteps(), g.maxSteps())
	if st.Steps == g.maxSteps() && st.Class != dcel.AlignedDeviating {
		g.logger().Printf("staircase for edge %d capped at %d steps", st.Edge, st.Steps)
	}
	st.Points = l.path(detour, g.Epsilon, st.Steps)
	st.Region = l.region(detour, g.Epsilon)
	return true
}

// Apply splices the planned staircases into s. Every new edge is aligned
// basic afterwards.
func (g Generator) Apply(s *dcel.Subdivision, stairs []*Staircase) error {
	for _, st := range stairs {
		current := st.Edge
		for _, p := range st.Interior() {
			next, err := s.Subdivide(current, p)
			if err != nil {
				return errors.Wrapf(err, "splicing staircase of edge %d", st.Edge)
			}
			s.SetSignificance(s.Tail(next), dcel.Insignificant)
			g.align(s, current)
			current = next
		}
		g.align(s, current)
	}
	return nil
}

func (g Generator) align(s *dcel.Subdivision, e dcel.EdgeIndex) {
	s.SetClass(e, dcel.AlignedBasic)
	for _, h := range []dcel.EdgeIndex{e, s.Twin(e)} {
		if direction, ok := g.C.AlignedDirection(s.Angle(h)); ok {
			s.SetAssignedDirection(h, direction)
		}
	}
}
