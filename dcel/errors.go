package dcel

import "fmt"

// MaxVertices bounds the total number of ring vertices accepted as input.
const MaxVertices = 5000

// InvalidInputError is returned when the input cannot be turned into a
// subdivision at all. No subdivision is built.
type InvalidInputError struct {
	Reason string
}

func (e InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// TopologyError is returned by a mutation that would break the subdivision.
// The subdivision is left untouched.
type TopologyError struct {
	Op     string
	Reason string
}

func (e TopologyError) Error() string {
	return fmt.Sprintf("topology error in %s: %s", e.Op, e.Reason)
}
