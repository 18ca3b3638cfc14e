package internal

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestHandlePanicRecover(t *testing.T) {
	testFn := func(shouldThrow bool, shouldPanic bool) (err error) {
		defer func() {
			recoveredErr := HandlePanicRecover(recover())
			if recoveredErr != nil {
				err = recoveredErr
			}
		}()

		if shouldThrow {
			Fatalf("kaboom at %d", 3)
		}

		if shouldPanic {
			panic("true panic")
		}

		Fatal(nil, "never raised")
		return nil
	}

	t.Run("with throw", func(t *testing.T) {
		err := testFn(true, false)
		assert.EqualError(t, err, "kaboom at 3")
	})

	t.Run("with real panic", func(t *testing.T) {
		assert.Panics(t, func() {
			testFn(false, true)
		})
	})

	t.Run("no error", func(t *testing.T) {
		err := testFn(false, false)
		assert.NoError(t, err)
	})

	t.Run("wrapped error keeps its cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := func() (err error) {
			defer func() {
				err = HandlePanicRecover(recover())
			}()
			Fatal(cause, "stage failed")
			return nil
		}()
		assert.EqualError(t, err, "stage failed: root cause")
		assert.Equal(t, cause, errors.Cause(err))
	})
}
