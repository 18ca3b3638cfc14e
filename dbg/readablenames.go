package dbg

import (
	"fmt"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
)

// Arena indices are hard to tell apart in a wall of log output. Name turns a
// kind and an index into a random readable name, so that "edge 212" and
// "edge 221" read as two different words. Names are generated lazily and
// memoized for the life of the process.

type nameKey struct {
	kind  string
	index int
}

var memo map[nameKey]string

func init() {
	memo = make(map[nameKey]string)
	// Names are handed out in order of demand, so the same name does not refer
	// to the same element between runs. Randomizing makes that obvious.
	petname.NonDeterministicMode()
}

// Name returns the readable name of the element of the given kind ("v", "e",
// "f") at index. Negative indices are the arena's "none" value.
func Name(kind string, index int) string {
	if index < 0 {
		return "Ø"
	}

	key := nameKey{kind, index}
	if r, ok := memo[key]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[key] = r
	return r
}
