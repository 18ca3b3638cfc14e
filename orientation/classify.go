package orientation

import (
	"github.com/jakoblistabarth/schemapify-sub001/dcel"
)

// Classifier assigns significance, directions and orientation classes to a
// subdivision.
type Classifier struct {
	C *C
}

// Run classifies the subdivision in place. Edges between two significant
// vertices are split at their midpoint first so that every edge has at most
// one significant endpoint.
func (cl Classifier) Run(s *dcel.Subdivision) error {
	cl.ClassifyVertices(s)
	if _, err := cl.SplitSignificantEdges(s); err != nil {
		return err
	}
	cl.AssignDirections(s)
	cl.ClassifyEdges(s)
	return nil
}

func edgeAngles(s *dcel.Subdivision, edges []dcel.EdgeIndex) []float64 {
	angles := make([]float64, len(edges))
	for i, e := range edges {
		angles[i] = s.Angle(e)
	}
	return angles
}

func (cl Classifier) ClassifyVertices(s *dcel.Subdivision) {
	for _, v := range s.Vertices() {
		significance := dcel.Insignificant
		if cl.C.IsSignificant(edgeAngles(s, s.OutgoingEdges(v))) {
			significance = dcel.Significant
		}
		s.SetSignificance(v, significance)
	}
}

// SplitSignificantEdges returns the number of edges split.
func (cl Classifier) SplitSignificantEdges(s *dcel.Subdivision) (int, error) {
	split := 0
	for _, e := range s.SimpleEdges() {
		if !s.IsSignificant(s.Tail(e)) || !s.IsSignificant(s.Head(e)) {
			continue
		}
		mid, err := s.Subdivide(e, s.Midpoint(e))
		if err != nil {
			return split, err
		}
		s.SetSignificance(s.Tail(mid), dcel.Insignificant)
		split++
	}
	return split, nil
}

func (cl Classifier) AssignDirections(s *dcel.Subdivision) {
	for _, v := range s.Vertices() {
		edges := s.OutgoingEdges(v)
		for i, direction := range cl.C.AssignDirections(edgeAngles(s, edges)) {
			s.SetAssignedDirection(edges[i], direction)
		}
	}
}

func (cl Classifier) ClassifyEdges(s *dcel.Subdivision) {
	for _, e := range s.SimpleEdges() {
		s.SetClass(e, cl.Class(s, SignificantHalfEdge(s, e)))
	}
}

// SignificantHalfEdge returns the half-edge of e's pair that starts at a
// significant vertex, or e itself if neither does.
func SignificantHalfEdge(s *dcel.Subdivision, e dcel.EdgeIndex) dcel.EdgeIndex {
	if !s.IsSignificant(s.Tail(e)) && s.IsSignificant(s.Head(e)) {
		return s.Twin(e)
	}
	return e
}

// IsDeviating reports whether the direction assigned to h at its tail is not
// one of the bounds of h's sector.
func (cl Classifier) IsDeviating(s *dcel.Subdivision, h dcel.EdgeIndex) bool {
	angle := s.Angle(h)
	assigned := s.AssignedDirection(h)
	if aligned, ok := cl.C.AlignedDirection(angle); ok {
		return assigned != aligned
	}
	sector, ok := cl.C.SectorOf(angle)
	return !ok || !sector.HasBound(assigned)
}

// Class determines the orientation class of h, judged at h's tail.
func (cl Classifier) Class(s *dcel.Subdivision, h dcel.EdgeIndex) dcel.Class {
	angle := s.Angle(h)
	deviating := cl.IsDeviating(s, h)
	if _, aligned := cl.C.AlignedDirection(angle); aligned {
		if deviating {
			return dcel.AlignedDeviating
		}
		return dcel.AlignedBasic
	}
	if !deviating {
		return dcel.UnalignedBasic
	}

	// A deviating edge evades when it shares its sector with exactly one
	// other unaligned edge.
	sector, _ := cl.C.SectorOf(angle)
	unaligned := 0
	for _, sibling := range s.OutgoingEdges(s.Tail(h)) {
		siblingAngle := s.Angle(sibling)
		if _, aligned := cl.C.AlignedDirection(siblingAngle); !aligned && sector.Encloses(siblingAngle) {
			unaligned++
		}
	}
	if unaligned == 2 {
		return dcel.Evading
	}
	return dcel.UnalignedDeviating
}
