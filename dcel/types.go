package dcel

import (
	"fmt"

	"github.com/jakoblistabarth/schemapify-sub001/geometry"
)

// All references between vertices, half-edges and faces are indices into the
// subdivision's arenas. Retired entries keep their slot and are never reused.
type VertexIndex int
type EdgeIndex int
type FaceIndex int

const (
	NoVertex VertexIndex = -1
	NoEdge   EdgeIndex   = -1
	NoFace   FaceIndex   = -1
)

// NoDirection marks a half-edge without an assigned direction.
const NoDirection = -1

type Significance int8

const (
	Unclassified Significance = iota
	Insignificant
	Significant
)

// Class is the orientation class of a half-edge relative to the allowed
// orientations.
type Class int8

const (
	NoClass Class = iota
	AlignedBasic
	AlignedDeviating
	UnalignedBasic
	Evading
	UnalignedDeviating
)

var classNames = map[Class]string{
	NoClass:            "unclassified",
	AlignedBasic:       "AB",
	AlignedDeviating:   "AD",
	UnalignedBasic:     "UB",
	Evading:            "E",
	UnalignedDeviating: "UD",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// IsDeviating reports whether edges of this class leave their significant
// endpoint outside their natural sector.
func (c Class) IsDeviating() bool {
	return c == AlignedDeviating || c == Evading || c == UnalignedDeviating
}

type Vertex struct {
	Point geometry.Point
	// Outgoing half-edges, sorted clockwise by angle.
	Edges        []EdgeIndex
	Significance Significance
	retired      bool
}

type HalfEdge struct {
	Tail              VertexIndex
	Twin              EdgeIndex
	Next              EdgeIndex
	Prev              EdgeIndex
	Face              FaceIndex
	Class             Class
	AssignedDirection int
	retired           bool
}

type Face struct {
	// One half-edge of the outer boundary. NoEdge for the unbounded face.
	Edge EdgeIndex
	// One half-edge per inner component (holes and islands).
	InnerEdges []EdgeIndex
	// The face this face is a hole of, if any.
	OuterRing      FaceIndex
	FeatureIndices []int
	retired        bool
}

// IsBounded reports whether the face has an outer boundary.
func (f Face) IsBounded() bool {
	return f.Edge != NoEdge
}
