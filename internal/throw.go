package internal

import "github.com/pkg/errors"

// Threading errors through every stage of the schematization pipeline (and the
// loops inside them) would bury the geometry under error plumbing. Invariant
// violations deep inside a stage panic instead, and the public API recovers
// to convert them to an error.

type SchematizeError struct {
	error
}

func (e SchematizeError) Unwrap() error {
	return e.error
}

// Fatalf panics with a SchematizeError.
func Fatalf(format string, args ...interface{}) {
	panic(SchematizeError{errors.Errorf(format, args...)})
}

// Fatal panics with err wrapped in a SchematizeError, unless err is nil.
func Fatal(err error, message string) {
	if err != nil {
		panic(SchematizeError{errors.Wrap(err, message)})
	}
}

// HandlePanicRecover converts a recovered SchematizeError into an error. Any
// other panic is re-raised.
func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if schematizeError, ok := r.(SchematizeError); ok {
			return schematizeError.error
		}
		panic(r)
	}
	return nil
}
