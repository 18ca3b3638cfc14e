// Package simplify reduces the number of vertices of an aligned subdivision
// by moving edges parallel to themselves. Every move that changes a face's
// area is paired with a second move on the same boundary that gives the area
// back.
package simplify

import (
	"io"
	"log"
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/jakoblistabarth/schemapify-sub001/dcel"
	"github.com/jakoblistabarth/schemapify-sub001/geometry"
	"github.com/jakoblistabarth/schemapify-sub001/internal/edgeindex"
)

// Engine runs edge moves until none is left or MaxMoves is reached.
type Engine struct {
	MaxMoves int
	Logger   *log.Logger
}

type Result struct {
	RemovedVertices int
	Moves           int
}

func (en Engine) logger() *log.Logger {
	if en.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return en.Logger
}

// RemoveSuperfluousVertices removes degree-2 vertices between two collinear
// edges. Vertices whose removal would leave a face with fewer than three
// edges stay.
func RemoveSuperfluousVertices(s *dcel.Subdivision) (int, error) {
	removed := 0
	for _, v := range s.Vertices() {
		if s.Degree(v) != 2 {
			continue
		}
		edges := s.OutgoingEdges(v)
		if math.Abs(geometry.AngleDistance(s.Angle(edges[0]), s.Angle(edges[1]))-math.Pi) >= geometry.AngleTolerance {
			continue
		}
		if _, err := s.RemoveVertex(v); err != nil {
			var topologyErr dcel.TopologyError
			if errors.As(err, &topologyErr) {
				continue
			}
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// Run removes superfluous vertices and then moves edges until no move is
// left or MaxMoves moves were made.
func (en Engine) Run(s *dcel.Subdivision) (Result, error) {
	var result Result
	removed, err := RemoveSuperfluousVertices(s)
	if err != nil {
		return result, err
	}
	result.RemovedVertices += removed

	for result.Moves < en.MaxMoves {
		if !en.step(s) {
			break
		}
		result.Moves++
		removed, err := RemoveSuperfluousVertices(s)
		if err != nil {
			return result, err
		}
		result.RemovedVertices += removed
	}
	en.logger().Printf("simplify: %d edge moves, %d vertices removed", result.Moves, result.RemovedVertices)
	return result, nil
}

// step carries out the first pair that applies cleanly. A pair that fails,
// or that changes a face's area, is rolled back and the next one is tried.
func (en Engine) step(s *dcel.Subdivision) bool {
	moved := false
	en.eachPair(s, func(pair ConfigurationPair) bool {
		backup := s.Clone()
		if err := en.applyChecked(s, pair); err != nil {
			en.logger().Printf("simplify: skipping move of edge %d: %v", pair.Contraction.Configuration.Inner, err)
			*s = *backup
			return true
		}
		moved = true
		return false
	})
	return moved
}

func (en Engine) applyChecked(s *dcel.Subdivision, pair ConfigurationPair) error {
	faces := pair.Contraction.Configuration.Boundary
	lower, upper := s.FaceArea(faces.Lower), s.FaceArea(faces.Upper)
	if err := en.Apply(s, pair); err != nil {
		return err
	}
	if err := s.Verify(); err != nil {
		return err
	}
	for _, change := range []float64{s.FaceArea(faces.Lower) - lower, s.FaceArea(faces.Upper) - upper} {
		if math.Abs(change) > areaDrift {
			return errors.Errorf("face area changed by %g", change)
		}
	}
	return nil
}

// areaDrift is the largest change of a face's area accepted for one move.
const areaDrift = 1e-6

// Contractions collects the feasible contractions of every configuration,
// grouped by boundary.
func Contractions(s *dcel.Subdivision) map[FacePair][]Contraction {
	idx := edgeindex.FromSubdivision(s)
	contractions := make(map[FacePair][]Contraction)
	for _, b := range NewBoundaryList(s).Boundaries() {
		for _, e := range b.Edges {
			configuration, ok := NewConfiguration(s, e)
			if !ok {
				continue
			}
			for _, c := range configuration.Contractions(s, idx) {
				if c.Feasible() {
					contractions[b.Faces] = append(contractions[b.Faces], c)
				}
			}
		}
	}
	return contractions
}

// NextPair finds the contraction with the smallest swept area that can be
// compensated, or that sweeps no area at all.
func (en Engine) NextPair(s *dcel.Subdivision) (ConfigurationPair, bool) {
	var next ConfigurationPair
	found := false
	en.eachPair(s, func(pair ConfigurationPair) bool {
		next, found = pair, true
		return false
	})
	return next, found
}

// eachPair calls fn for every applicable pair, smallest swept area first,
// until fn returns false. Compensations are searched lazily, so fn must leave
// s as it found it whenever it returns true.
func (en Engine) eachPair(s *dcel.Subdivision, fn func(ConfigurationPair) bool) {
	byBoundary := Contractions(s)
	pairs := make([]FacePair, 0, len(byBoundary))
	for pair := range byBoundary {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Lower != pairs[j].Lower {
			return pairs[i].Lower < pairs[j].Lower
		}
		return pairs[i].Upper < pairs[j].Upper
	})
	var all []Contraction
	for _, pair := range pairs {
		all = append(all, byBoundary[pair]...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return math.Abs(all[i].Area) < math.Abs(all[j].Area)-geometry.Tolerance
	})

	for _, c := range all {
		pair := ConfigurationPair{Contraction: c}
		if !geometry.Equal(c.Area, 0) {
			compensation, shift, ok := FindCompensation(s, c, byBoundary[c.Configuration.Boundary])
			if !ok {
				continue
			}
			pair.Compensation, pair.Shift = compensation, shift
		}
		if !fn(pair) {
			return
		}
	}
}

// Apply performs the contraction and then its compensation. The
// compensation is recomputed from the moved geometry so that it gives back
// exactly the area the contraction swept.
func (en Engine) Apply(s *dcel.Subdivision, pair ConfigurationPair) error {
	c := pair.Contraction
	var compensationTail, compensationHead geometry.Point
	if pair.Compensation != nil {
		inner := pair.Compensation.Configuration.Inner
		compensationTail, compensationHead = s.Point(s.Tail(inner)), s.Point(s.Head(inner))
	}

	if _, err := s.MoveEdge(c.Configuration.Inner, c.Tail, c.Head); err != nil {
		return errors.Wrap(err, "contracting edge")
	}
	if pair.Compensation == nil {
		return nil
	}

	e, ok := edgeAt(s, compensationTail, compensationHead)
	if !ok {
		return errors.Errorf("compensating edge %s-%s vanished", compensationTail.Key(), compensationHead.Key())
	}
	configuration, ok := NewConfiguration(s, e)
	if !ok {
		return errors.Errorf("compensating edge %d lost its configuration", e)
	}
	compensation, ok := configuration.Contraction(s, nil, pair.Compensation.Direction)
	if !ok {
		return errors.Errorf("compensating edge %d can no longer move", e)
	}
	shift, ok := compensation.ShiftFor(c.Area)
	if !ok {
		return errors.Errorf("no shift of edge %d gives back an area of %g", e, c.Area)
	}
	tail, head := compensation.EndpointsAt(shift)
	if geometry.Equal(shift, compensation.Distance) {
		tail, head = compensation.Tail, compensation.Head
	}
	if _, err := s.MoveEdge(e, tail, head); err != nil {
		return errors.Wrap(err, "compensating edge move")
	}
	return nil
}

func edgeAt(s *dcel.Subdivision, tail, head geometry.Point) (dcel.EdgeIndex, bool) {
	a, ok := s.FindVertex(tail)
	if !ok {
		return dcel.NoEdge, false
	}
	b, ok := s.FindVertex(head)
	if !ok {
		return dcel.NoEdge, false
	}
	return s.EdgeBetween(a, b)
}
