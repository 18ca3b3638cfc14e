package dbg

import (
	"fmt"
	"io"

	"github.com/kr/pretty"
	"github.com/logrusorgru/aurora"

	"github.com/jakoblistabarth/schemapify-sub001/dcel"
)

// ClassName returns the class abbreviation, colored by how much work the
// edge still needs.
func ClassName(c dcel.Class) string {
	switch c {
	case dcel.AlignedBasic:
		return aurora.Green(c.String()).String()
	case dcel.UnalignedBasic:
		return aurora.Cyan(c.String()).String()
	case dcel.AlignedDeviating:
		return aurora.Yellow(c.String()).String()
	case dcel.Evading, dcel.UnalignedDeviating:
		return aurora.Red(c.String()).String()
	}
	return aurora.Blue(c.String()).String()
}

// Dump writes every vertex and edge of the subdivision in a readable form.
func Dump(s *dcel.Subdivision, w io.Writer) {
	fmt.Fprintf(w, "%d vertices, %d edges, %d faces\n", s.VertexCount(), s.EdgeCount(), s.FaceCount())
	for _, v := range s.Vertices() {
		name := Name("v", int(v))
		if s.IsSignificant(v) {
			name = aurora.Bold(name).String()
		}
		fmt.Fprintf(w, "vertex %s (%d) %v degree %d\n", name, v, s.Point(v), s.Degree(v))
	}
	for _, e := range s.SimpleEdges() {
		seg := s.Segment(e)
		fmt.Fprintf(w, "edge %s (%d) %v -> %v %s direction %d\n",
			Name("e", int(e)), e, seg.A, seg.B, ClassName(s.Class(e)), s.AssignedDirection(e))
	}
}

// Pretty formats any value with its field names, for one-off inspection.
func Pretty(v interface{}) string {
	return pretty.Sprint(v)
}
