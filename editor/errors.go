package editor

import (
	"errors"
	"fmt"
)

// ErrInstrumentBuild marks edits that failed before any valuation could run.
var ErrInstrumentBuild = errors.New("instrument build failed")

// BuildError is returned by a setter when the instrument could not be
// built. It is not isolated per field: the edit as a whole failed.
type BuildError struct {
	BondID string
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s: %v", e.BondID, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

func (e *BuildError) Is(target error) bool { return target == ErrInstrumentBuild }
